// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package clip

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/4dv/uclip/internal/clipboard"
	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/ctxlog"
)

const (
	paramText   = "text"
	paramFormat = "format"
	paramOnly   = "only"
	paramExcept = "except"
	paramSource = "source"

	defaultFormat   = clipboard.FormatText
	formatSeparator = ","
)

// ErrExecutablePath is returned when register cannot find the running program.
var ErrExecutablePath = errors.New("cannot determine executable path")

func (m *Module) list(_ context.Context, _ command.Args) error {
	formats, err := m.clipboard.Formats()
	if err != nil {
		return err
	}

	for _, f := range formats {
		if _, err := fmt.Fprintln(m.out, f); err != nil {
			return err
		}
	}

	return nil
}

func (m *Module) set(_ context.Context, args command.Args) error {
	return m.clipboard.Set(args.String(paramFormat), args.String(paramText))
}

func (m *Module) clear(ctx context.Context, args command.Args) error {
	only, hasOnly := args.Lookup(paramOnly)
	except, hasExcept := args.Lookup(paramExcept)

	if !hasOnly && !hasExcept {
		return m.clipboard.Clear()
	}

	onlyFormats := splitFormats(only)
	exceptFormats := splitFormats(except)

	remove := func(format string) bool {
		if hasOnly && !slices.Contains(onlyFormats, format) {
			return false
		}

		return !hasExcept || !slices.Contains(exceptFormats, format)
	}

	ctxlog.Debug(ctx, "clearing formats", "only", onlyFormats, "except", exceptFormats)

	return m.clipboard.Retain(func(format string) bool {
		return !remove(format)
	})
}

func splitFormats(s string) []string {
	var formats []string

	for _, f := range strings.Split(s, formatSeparator) {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}

	return formats
}

func (m *Module) setFromURI(ctx context.Context, args command.Args) error {
	text := trimScheme(args.String(paramText), m.protocol)

	unescaped, err := url.PathUnescape(text)
	if err != nil {
		ctxlog.Debug(ctx, "keeping malformed escape sequences", "text", text, "error", err.Error())
	} else {
		text = unescaped
	}

	return m.clipboard.Set(args.String(paramFormat), text)
}

// trimScheme removes a leading `<scheme>:` and an optional `//`, matching the scheme case-insensitively.
func trimScheme(text, scheme string) string {
	prefix := scheme + ":"
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return text
	}

	return strings.TrimPrefix(text[len(prefix):], "//")
}

func (m *Module) load(ctx context.Context, args command.Args) error {
	source := args.String(paramSource)

	ctxlog.Debug(ctx, "loading source", "source", source)

	b, err := m.fetcher.Fetch(ctx, source)
	if err != nil {
		return err
	}

	return m.clipboard.Set(args.String(paramFormat), string(b))
}

func (m *Module) register(ctx context.Context, _ command.Args) error {
	exe, err := m.executable()
	if err != nil {
		return errors.Join(ErrExecutablePath, err)
	}

	path, err := m.registrar.Register(exe)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "handler entry written", "path", path)

	_, err = fmt.Fprintf(m.out, "%s was registered as %s handler\n", exe, m.protocol)

	return err
}

func (m *Module) unregister(_ context.Context, _ command.Args) error {
	removed, err := m.registrar.Unregister()
	if err != nil {
		return err
	}

	if !removed {
		_, err = fmt.Fprintf(m.out, "no %s handler was registered\n", m.protocol)
		return err
	}

	_, err = fmt.Fprintf(m.out, "%s handler was unregistered\n", m.protocol)

	return err
}

func (m *Module) get(_ context.Context, args command.Args) error {
	format, ok := args.Lookup(paramFormat)
	if !ok {
		format = clipboard.FormatText
	}

	data, _, err := m.clipboard.Get(format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(m.out, data)

	return err
}
