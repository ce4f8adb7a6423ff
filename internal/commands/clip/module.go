// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package clip

import (
	"context"
	"io"
	"os"

	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/commandregistry"
)

// ModuleName is the name of the clip command module.
const ModuleName = "clip"

const defaultProtocolName = "uclip"

var _ commandregistry.Module = (*Module)(nil)

// Clipboard holds data by format name.
type Clipboard interface {
	Formats() ([]string, error)
	Get(format string) (string, bool, error)
	Set(format, data string) error
	Clear() error
	Retain(keep func(format string) bool) error
}

// Fetcher reads the content of a source address.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// Registrar installs and removes the URL scheme handler.
type Registrar interface {
	Register(exe string) (string, error)
	Unregister() (bool, error)
}

// Module exposes the clipboard commands.
type Module struct {
	clipboard  Clipboard
	fetcher    Fetcher
	registrar  Registrar
	protocol   string
	executable func() (string, error)
	out        io.Writer
}

// Option configures a Module.
type Option func(m *Module)

// WithProtocolName sets the URL scheme stripped by setFromUri.
func WithProtocolName(name string) Option {
	return func(m *Module) {
		m.protocol = name
	}
}

// WithWriter sets where command output is written.
func WithWriter(w io.Writer) Option {
	return func(m *Module) {
		m.out = w
	}
}

// WithExecutable sets how register finds the path of the running program.
func WithExecutable(fn func() (string, error)) Option {
	return func(m *Module) {
		m.executable = fn
	}
}

// New creates the clip module.
func New(cb Clipboard, fetcher Fetcher, registrar Registrar, opts ...Option) *Module {
	m := &Module{
		clipboard:  cb,
		fetcher:    fetcher,
		registrar:  registrar,
		protocol:   defaultProtocolName,
		executable: os.Executable,
		out:        os.Stdout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name implements commandregistry.Module.
func (m *Module) Name() string {
	return ModuleName
}

// Commands implements commandregistry.Module.
func (m *Module) Commands() []command.Spec {
	return []command.Spec{
		{
			Ident:    "List",
			Metadata: command.Metadata{Description: "Print formats of data in clipboard"},
			Handler:  m.list,
		},
		{
			Ident:    "Set",
			Metadata: command.Metadata{Description: "Add data to clipboard"},
			Params: []command.Param{
				command.Required(paramText),
				command.Optional(paramFormat, defaultFormat),
			},
			Handler: m.set,
		},
		{
			Ident:    "Clear",
			Metadata: command.Metadata{Description: "Clear all or some data in clipboard"},
			Params: []command.Param{
				command.Nullable(paramOnly, command.WithOption("--only|-o",
					"Comma separated list of formats, delete only specified formats")),
				command.Nullable(paramExcept, command.WithOption("--except|-e",
					"Comma separated list of formats, delete all formats except specified")),
			},
			Handler: m.clear,
		},
		{
			Ident:    "SetFromUri",
			Metadata: command.Metadata{Description: "Add data to clipboard from url text"},
			Params: []command.Param{
				command.Required(paramText),
				command.Optional(paramFormat, defaultFormat),
			},
			Handler: m.setFromURI,
		},
		{
			Ident:    "Load",
			Metadata: command.Metadata{Description: "Add the content of a file to clipboard, using go-getter source syntax"},
			Params: []command.Param{
				command.Required(paramSource),
				command.Optional(paramFormat, defaultFormat),
			},
			Handler: m.load,
		},
		{
			Ident:    "Register",
			Metadata: command.Metadata{Description: "Register uclip as the handler of its URL scheme"},
			Handler:  m.register,
		},
		{
			Ident:    "UnRegister",
			Metadata: command.Metadata{Description: "Unregister uclip as the handler of its URL scheme"},
			Handler:  m.unregister,
		},
		{
			Ident: "Get",
			Metadata: command.Metadata{
				Default:     true,
				Description: "Print clipboard content in specified format. If no format specified print text",
			},
			Params:  []command.Param{command.Nullable(paramFormat)},
			Handler: m.get,
		},
	}
}
