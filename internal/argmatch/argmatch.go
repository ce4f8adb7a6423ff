// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package argmatch selects the command a token sequence refers to.
// Matching is exact after case normalisation; there is no prefix or fuzzy matching.
package argmatch

import (
	"fmt"
	"strings"

	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/commandregistry"
)

// ErrNoCommandSpecified is returned when no tokens are given and no default command exists.
var ErrNoCommandSpecified = command.NewLineError("no command specified")

// Index is the read side of a command registry.
type Index interface {
	Lookup(name string) []*commandregistry.Entry
	Default() (*commandregistry.Entry, bool)
}

// Suggester is implemented by indexes that can propose near matches for diagnostics.
type Suggester interface {
	Suggest(name string) []string
}

// Request is the outcome of matching: the selected command and the tokens left for binding.
type Request struct {
	// CommandToken is the token that named the command, nil when the default was used.
	CommandToken  *string
	RemainingArgs []string
	Entry         *commandregistry.Entry
}

// UnknownCommandError is returned when the command token matches no registered key.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

// Error implements the error interface for UnknownCommandError.
func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("command %s is not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

// Is reports command-line errors as command.ErrCommandLine.
func (e *UnknownCommandError) Is(target error) bool {
	return target == command.ErrCommandLine
}

// AmbiguousCommandError is returned when more than one command matches the token.
// A registry built by commandregistry.Scan never produces this.
type AmbiguousCommandError struct {
	Name    string
	Modules []string
}

// Error implements the error interface for AmbiguousCommandError.
func (e *AmbiguousCommandError) Error() string {
	return fmt.Sprintf("more than one command matches %s (modules: %s)", e.Name, strings.Join(e.Modules, ", "))
}

// Is reports command-line errors as command.ErrCommandLine.
func (e *AmbiguousCommandError) Is(target error) bool {
	return target == command.ErrCommandLine
}

// Match selects the command for tokens. With no tokens the default command
// is selected; otherwise the first token names the command and the rest are
// returned unchanged for binding.
func Match(idx Index, tokens []string) (*Request, error) {
	if idx == nil {
		return nil, ErrNoCommandSpecified
	}

	if len(tokens) == 0 {
		def, ok := idx.Default()
		if !ok {
			return nil, ErrNoCommandSpecified
		}

		return &Request{Entry: def, RemainingArgs: []string{}}, nil
	}

	name := tokens[0]
	found := idx.Lookup(name)

	switch len(found) {
	case 0:
		unknown := &UnknownCommandError{Name: name}
		if s, ok := idx.(Suggester); ok {
			unknown.Suggestions = s.Suggest(name)
		}

		return nil, unknown
	case 1:
	default:
		modules := make([]string, 0, len(found))
		for _, e := range found {
			modules = append(modules, e.Module)
		}

		return nil, &AmbiguousCommandError{Name: name, Modules: modules}
	}

	rest := make([]string, len(tokens)-1)
	copy(rest, tokens[1:])

	return &Request{
		CommandToken:  &name,
		RemainingArgs: rest,
		Entry:         found[0],
	}, nil
}
