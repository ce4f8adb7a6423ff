// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package argbind binds positional tokens to command parameters.
//
// Tokens are bound as raw text in declaration order. When tokens run out,
// declared defaults fill the remaining parameters. Extra tokens are ignored
// unless strict binding is requested.
package argbind

import (
	"fmt"

	"github.com/4dv/uclip/internal/command"
)

// MissingArgumentError is returned when a required parameter has no token.
type MissingArgumentError struct {
	Param string
}

// Error implements the error interface for MissingArgumentError.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %s", e.Param)
}

// Is reports command-line errors as command.ErrCommandLine.
func (e *MissingArgumentError) Is(target error) bool {
	return target == command.ErrCommandLine
}

// TooManyArgumentsError is returned by strict binding when tokens outnumber parameters.
type TooManyArgumentsError struct {
	Max int
	Got int
}

// Error implements the error interface for TooManyArgumentsError.
func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments: expected at most %d, got %d", e.Max, e.Got)
}

// Is reports command-line errors as command.ErrCommandLine.
func (e *TooManyArgumentsError) Is(target error) bool {
	return target == command.ErrCommandLine
}

type options struct {
	strict bool
}

// Option configures Bind.
type Option func(o *options)

// Strict rejects tokens beyond the declared parameter count.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithStrict sets strict binding from a configuration value.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Bind maps tokens onto params positionally.
func Bind(params []command.Param, tokens []string, opts ...Option) (command.Args, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.strict && len(tokens) > len(params) {
		return command.Args{}, &TooManyArgumentsError{Max: len(params), Got: len(tokens)}
	}

	values := make([]*string, len(params))

	for i, p := range params {
		switch {
		case i < len(tokens):
			v := tokens[i]
			values[i] = &v
		case p.HasDefault:
			if p.Default != nil {
				v := *p.Default
				values[i] = &v
			}
		default:
			return command.Args{}, &MissingArgumentError{Param: p.Name}
		}
	}

	return command.NewArgs(params, values), nil
}
