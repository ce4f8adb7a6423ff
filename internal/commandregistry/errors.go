// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"fmt"
	"strings"

	"github.com/4dv/uclip/internal/command"
)

var (
	// ErrEmptyCommandKey is returned when a spec has neither a name nor an identifier.
	ErrEmptyCommandKey = command.NewLineError("command has no name")
	// ErrNilHandler is returned when a spec has no handler to invoke.
	ErrNilHandler = command.NewLineError("command has no handler")
)

// DuplicateCommandError is returned when two commands resolve to the same key.
// OtherModule is set only when strict module uniqueness rejected a cross-module duplicate.
type DuplicateCommandError struct {
	Module      string
	Key         string
	OtherModule string
}

// Error implements the error interface for DuplicateCommandError.
func (e *DuplicateCommandError) Error() string {
	if e.OtherModule != "" {
		return fmt.Sprintf("command %q is declared by both module %q and module %q", e.Key, e.OtherModule, e.Module)
	}

	return fmt.Sprintf("more than one command in module %q resolves to %q", e.Module, e.Key)
}

// Is reports command-line configuration errors as command.ErrCommandLine.
func (e *DuplicateCommandError) Is(target error) bool {
	return target == command.ErrCommandLine
}

// DuplicateDefaultCommandError is returned when more than one command is marked as default.
type DuplicateDefaultCommandError struct {
	Keys []string
}

// Error implements the error interface for DuplicateDefaultCommandError.
func (e *DuplicateDefaultCommandError) Error() string {
	return "only one command can be marked as default, found: " + strings.Join(e.Keys, ", ")
}

// Is reports command-line configuration errors as command.ErrCommandLine.
func (e *DuplicateDefaultCommandError) Is(target error) bool {
	return target == command.ErrCommandLine
}
