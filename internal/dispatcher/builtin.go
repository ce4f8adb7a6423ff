// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/4dv/uclip/internal/argmatch"
	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/commandregistry"
)

// BuiltinModuleName is the name of the module providing help and version.
const BuiltinModuleName = "builtin"

const (
	paramCommand = "command"
	paramFormat  = "format"

	// allCommands selects every command when help is asked for a structured format.
	allCommands = "*"
)

func (d *Dispatcher) builtinModule() commandregistry.Module {
	return commandregistry.NewModule(BuiltinModuleName, d.builtinCommands)
}

func (d *Dispatcher) builtinCommands() []command.Spec {
	return []command.Spec{
		{
			Ident: "Help",
			Metadata: command.Metadata{
				Description: "Print the list of commands, or the parameters of one command",
			},
			Params: []command.Param{
				command.Nullable(paramCommand,
					command.WithOption("", "Command to describe, * for all commands")),
				command.Optional(paramFormat, formatText,
					command.WithOption("", "Output format: text, yaml or json")),
			},
			Handler: d.helpCommand,
		},
		{
			Ident: "Version",
			Metadata: command.Metadata{
				Description: "Print the program version",
			},
			Handler: d.versionCommand,
		},
	}
}

func (d *Dispatcher) helpCommand(ctx context.Context, args command.Args) error {
	reg, err := d.EnsurePopulated(ctx)
	if err != nil {
		return d.reportUsage(ctx, nil, err)
	}

	entries := reg.Entries()
	single := false

	if name, ok := args.Lookup(paramCommand); ok && name != allCommands {
		found := reg.Lookup(name)
		if len(found) == 0 {
			return d.reportUsage(ctx, reg, &argmatch.UnknownCommandError{Name: name, Suggestions: reg.Suggest(name)})
		}

		entries = found
		single = true
	}

	switch format := strings.ToLower(args.String(paramFormat)); format {
	case formatText:
		if !single {
			return d.writeHelp(d.writer, reg)
		}

		return d.writeCommandHelp(d.writer, entries[0])
	case formatYAML:
		return writeYAMLHelp(d.writer, entries)
	case formatJSON:
		return writeJSONHelp(d.writer, entries)
	default:
		return d.reportUsage(ctx, reg, fmt.Errorf("%w %q, expected %s, %s or %s",
			ErrUnknownHelpFormat, format, formatText, formatYAML, formatJSON))
	}
}

func (d *Dispatcher) versionCommand(_ context.Context, _ command.Args) error {
	_, err := fmt.Fprintf(d.writer, "%s %s\n", d.programName, d.version)
	return err
}
