// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import "github.com/4dv/uclip/internal/command"

// Module is a named source of commands.
type Module interface {
	// Name identifies the module in diagnostics and duplicate detection.
	Name() string
	// Commands returns the module's registration table.
	Commands() []command.Spec
}

// RegisterFunc returns a module's registration table.
type RegisterFunc func() []command.Spec

type funcModule struct {
	name     string
	register RegisterFunc
}

// NewModule adapts a registration function into a Module.
func NewModule(name string, register RegisterFunc) Module {
	return &funcModule{name: name, register: register}
}

func (m *funcModule) Name() string {
	return m.name
}

func (m *funcModule) Commands() []command.Spec {
	if m.register == nil {
		return nil
	}

	return m.register()
}
