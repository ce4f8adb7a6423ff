// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import "strings"

const optionAliasSeparator = "|"

// Metadata describes how a command is exposed on the command line.
type Metadata struct {
	// Name overrides Spec.Ident. Empty means use the identifier.
	Name string
	// Description is shown in help output.
	Description string
	// Default marks the command that runs when no command name is given.
	Default bool
}

// Option carries help-only information about a parameter.
// It never affects binding.
type Option struct {
	Aliases     []string
	Description string
}

// Param is a single positional parameter of a command.
type Param struct {
	Name string
	// HasDefault reports whether the parameter may be omitted.
	HasDefault bool
	// Default is the value bound when the parameter is omitted.
	// A nil Default with HasDefault set is a null default.
	Default *string
	Option  *Option
}

// ParamOption configures a Param.
type ParamOption func(p *Param)

// Required declares a parameter that must be supplied.
func Required(name string, opts ...ParamOption) Param {
	return newParam(name, false, nil, opts)
}

// Optional declares a parameter that falls back to def when omitted.
func Optional(name, def string, opts ...ParamOption) Param {
	return newParam(name, true, &def, opts)
}

// Nullable declares a parameter that is absent when omitted.
func Nullable(name string, opts ...ParamOption) Param {
	return newParam(name, true, nil, opts)
}

func newParam(name string, hasDefault bool, def *string, opts []ParamOption) Param {
	p := Param{
		Name:       name,
		HasDefault: hasDefault,
		Default:    def,
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithOption attaches help aliases and a description to a parameter.
// Aliases are given as a single string separated by "|", e.g. "--only|-o".
func WithOption(aliases, description string) ParamOption {
	return func(p *Param) {
		p.Option = &Option{
			Aliases:     splitAliases(aliases),
			Description: description,
		}
	}
}

func splitAliases(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, optionAliasSeparator)
	aliases := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			aliases = append(aliases, p)
		}
	}

	return aliases
}

// DefaultText renders the default value for help output.
func (p Param) DefaultText() string {
	switch {
	case !p.HasDefault:
		return ""
	case p.Default == nil:
		return "null"
	default:
		return *p.Default
	}
}
