// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry builds the command index used by the dispatcher.
// Modules publish static registration tables; Scan merges them into a
// Registry keyed by lowercased command name.
//
// Within a module every key must be unique. Across modules the module scanned
// later shadows the earlier one, like a search path, unless strict module
// uniqueness is requested. At most one command in the finished registry may
// be marked as the default.
package commandregistry
