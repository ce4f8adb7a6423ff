// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries an slog.Logger on a context.Context.
//
// The default logger writes human-readable lines to stderr so that log output
// never mixes with command output on stdout. Its level comes from the
// <EXECUTABLE>_LOG_LEVEL environment variable (e.g. UCLIP_LOG_LEVEL) and may
// be changed at runtime through LevelVar.
package ctxlog
