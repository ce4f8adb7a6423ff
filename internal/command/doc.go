// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package command holds the declarative metadata that describes a command:
// its externally visible name, description and default status, plus the
// parameters it accepts and the handler that runs it.
//
// Nothing in this package inspects live objects. A command-bearing module
// builds a slice of Spec values at registration time and hands it to the
// commandregistry package.
package command
