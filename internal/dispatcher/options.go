// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"io"

	"github.com/4dv/uclip/internal/commandregistry"
)

// Option configures a Dispatcher.
type Option func(d *Dispatcher)

// WithModules sets the exact list of modules to index, in order.
// Neither the host nor the built-in module is added implicitly.
func WithModules(modules ...commandregistry.Module) Option {
	return func(d *Dispatcher) {
		d.modules = modules
		d.explicitModules = true
	}
}

// WithWriter sets where diagnostics, help and built-in command output are written.
func WithWriter(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.writer = w
	}
}

// WithStrictArgumentCount rejects invocations with more tokens than parameters.
func WithStrictArgumentCount(strict bool) Option {
	return func(d *Dispatcher) {
		d.strictArgumentCount = strict
	}
}

// WithStrictModuleUniqueness rejects a command key declared by more than one module.
func WithStrictModuleUniqueness(strict bool) Option {
	return func(d *Dispatcher) {
		d.strictModuleUniqueness = strict
	}
}

// WithStrictExit makes Dispatch return command-line errors, wrapped with ErrUsage,
// after printing them.
func WithStrictExit(strict bool) Option {
	return func(d *Dispatcher) {
		d.strictExit = strict
	}
}

// WithProgramName sets the name shown in usage lines.
func WithProgramName(name string) Option {
	return func(d *Dispatcher) {
		d.programName = name
	}
}

// WithVersion sets the text printed by the version command.
func WithVersion(version string) Option {
	return func(d *Dispatcher) {
		d.version = version
	}
}
