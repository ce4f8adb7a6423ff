// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"strings"
)

// Handler runs a command with its bound arguments.
// Any receiver the command needs is captured by the closure.
type Handler func(ctx context.Context, args Args) error

// Spec is one row of a module's registration table.
type Spec struct {
	// Ident is the declared identifier of the operation, used as the
	// command name when Metadata.Name is empty.
	Ident string
	Metadata
	Params  []Param
	Handler Handler
}

// ResolvedName returns the explicit name if one was given, otherwise the identifier.
func (s Spec) ResolvedName() string {
	if s.Name != "" {
		return s.Name
	}

	return s.Ident
}

// Key returns the case-normalised lookup key for the command.
func (s Spec) Key() string {
	return NormalizeKey(s.ResolvedName())
}

// NormalizeKey lowercases a command name for lookup. Whitespace is significant.
func NormalizeKey(name string) string {
	return strings.ToLower(name)
}

// Usage renders "<key> <param> [param=default] ..." for help output.
func (s Spec) Usage() string {
	sb := strings.Builder{}
	sb.WriteString(s.Key())

	for _, p := range s.Params {
		sb.WriteString(" ")

		if !p.HasDefault {
			sb.WriteString("<" + p.Name + ">")
			continue
		}

		sb.WriteString("[" + p.Name + "=" + p.DefaultText() + "]")
	}

	return sb.String()
}
