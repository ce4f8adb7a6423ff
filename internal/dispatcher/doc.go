// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatcher turns a raw argument list into a single command invocation.
//
// A Dispatcher indexes the registration tables of its modules once, matches the
// first token against the index, binds the remaining tokens to the command's
// parameters and invokes the handler. Misuse of the command line is reported
// as a one-line diagnostic followed by help text; handler failures are returned
// to the caller unchanged.
package dispatcher
