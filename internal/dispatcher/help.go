// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/4dv/uclip/internal/color"
	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/commandregistry"
	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/goccy/go-yaml"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"

	jsonIndent = 2
)

// ErrUnknownHelpFormat is returned when help is asked for an unsupported format.
var ErrUnknownHelpFormat = command.NewLineError("unknown help format")

// WriteHelp writes the command list, one `<key>: [Default. ]<description>` line per
// command in registry order. If the registry cannot be built, the commands each
// module declares are listed as declared.
func (d *Dispatcher) WriteHelp(ctx context.Context, w io.Writer) error {
	reg, err := d.EnsurePopulated(ctx)
	if err != nil {
		ctxlog.Debug(ctx, "listing declared commands", "error", err.Error())
	}

	return d.writeHelp(w, reg)
}

// writeHelp lists the entries of reg, or the declared commands when reg is nil.
func (d *Dispatcher) writeHelp(w io.Writer, reg *commandregistry.Registry) error {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Usage: %s [command] [arguments...]\n", d.programName)
	sb.WriteString("Commands:\n")

	if reg != nil {
		for _, e := range reg.Entries() {
			sb.WriteString(summaryLine(e.Key, e.Spec.Metadata))
		}
	} else {
		for _, m := range d.Modules() {
			if m == nil {
				continue
			}

			for _, s := range m.Commands() {
				if key := s.Key(); key != "" {
					sb.WriteString(summaryLine(key, s.Metadata))
				}
			}
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func summaryLine(key string, md command.Metadata) string {
	line := key + ": "
	if md.Default {
		line += "Default. "
	}

	return line + md.Description + "\n"
}

// writeCommandHelp writes the usage line and parameters of a single command.
func (d *Dispatcher) writeCommandHelp(w io.Writer, e *commandregistry.Entry) error {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Usage: %s %s\n", d.programName, e.Spec.Usage())

	if e.Spec.Description != "" {
		sb.WriteString(e.Spec.Description + "\n")
	}

	if len(e.Spec.Params) > 0 {
		sb.WriteString("Parameters:\n")
	}

	for _, p := range e.Spec.Params {
		sb.WriteString("  " + p.Name)

		if p.Option != nil && len(p.Option.Aliases) > 0 {
			sb.WriteString(" (" + strings.Join(p.Option.Aliases, ", ") + ")")
		}

		if p.Option != nil && p.Option.Description != "" {
			sb.WriteString(": " + p.Option.Description)
		}

		if p.HasDefault {
			sb.WriteString(" [default: " + p.DefaultText() + "]")
		} else {
			sb.WriteString(" [required]")
		}

		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

type commandDoc struct {
	Name        string     `json:"name" yaml:"name"`
	Module      string     `json:"module" yaml:"module"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Default     bool       `json:"default,omitempty" yaml:"default,omitempty"`
	Usage       string     `json:"usage" yaml:"usage"`
	Params      []paramDoc `json:"params,omitempty" yaml:"params,omitempty"`
}

type paramDoc struct {
	Name        string   `json:"name" yaml:"name"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Default     string   `json:"default,omitempty" yaml:"default,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func newCommandDocs(entries []*commandregistry.Entry) []commandDoc {
	docs := make([]commandDoc, 0, len(entries))

	for _, e := range entries {
		doc := commandDoc{
			Name:        e.Key,
			Module:      e.Module,
			Description: e.Spec.Description,
			Default:     e.Spec.Default,
			Usage:       e.Spec.Usage(),
		}

		for _, p := range e.Spec.Params {
			pd := paramDoc{
				Name:     p.Name,
				Required: !p.HasDefault,
				Default:  p.DefaultText(),
			}

			if p.Option != nil {
				pd.Aliases = p.Option.Aliases
				pd.Description = p.Option.Description
			}

			doc.Params = append(doc.Params, pd)
		}

		docs = append(docs, doc)
	}

	return docs
}

func writeYAMLHelp(w io.Writer, entries []*commandregistry.Entry) error {
	b, err := yaml.Marshal(newCommandDocs(entries))
	if err != nil {
		return fmt.Errorf("failed to render help as YAML: %w", err)
	}

	_, err = w.Write(b)

	return err
}

func writeJSONHelp(w io.Writer, entries []*commandregistry.Entry) error {
	raw, err := json.Marshal(newCommandDocs(entries))
	if err != nil {
		return fmt.Errorf("failed to render help as JSON: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to render help as JSON: %w", err)
	}

	b, err := color.NewJSONFormatter(color.EnabledFor(w), jsonIndent).Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render help as JSON: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", b)

	return err
}
