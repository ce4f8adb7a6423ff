// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decorates text with ANSI escape codes.
// Output is coloured only when NO_COLOR is unset and either FORCE_COLOR is set
// or the destination is a terminal.
package color
