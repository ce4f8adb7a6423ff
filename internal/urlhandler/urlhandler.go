// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package urlhandler registers the program as the handler of a URL scheme
// by writing a freedesktop.org desktop entry with an x-scheme-handler MIME type.
package urlhandler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	xdgDataHomeEnvName = "XDG_DATA_HOME"
	entryFileMode      = 0o644
	entryDirMode       = 0o755
)

var (
	// ErrRegister is returned when the handler entry cannot be written.
	ErrRegister = errors.New("failed to register URL handler")
	// ErrUnregister is returned when the handler entry cannot be removed.
	ErrUnregister = errors.New("failed to unregister URL handler")
	// ErrInvalidProtocol is returned for an empty or malformed scheme name.
	ErrInvalidProtocol = errors.New("invalid protocol name")
)

// Registrar writes and removes the desktop entry for one scheme.
type Registrar struct {
	fs       afero.Fs
	dir      string
	protocol string
}

// New returns a Registrar for protocol that keeps its entry in dir.
func New(fs afero.Fs, dir, protocol string) *Registrar {
	return &Registrar{
		fs:       fs,
		dir:      dir,
		protocol: protocol,
	}
}

// DefaultDir returns $XDG_DATA_HOME/applications, falling back to ~/.local/share/applications.
func DefaultDir() string {
	if dir := os.Getenv(xdgDataHomeEnvName); dir != "" {
		return filepath.Join(dir, "applications")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "applications"
	}

	return filepath.Join(home, ".local", "share", "applications")
}

// Path returns the location of the desktop entry.
func (r *Registrar) Path() string {
	return filepath.Join(r.dir, r.protocol+"-url-handler.desktop")
}

// Register writes an entry that runs `<exe> setFromUri <url>` for URLs of the scheme.
func (r *Registrar) Register(exe string) (string, error) {
	if err := validateProtocol(r.protocol); err != nil {
		return "", errors.Join(ErrRegister, err)
	}

	if err := r.fs.MkdirAll(r.dir, entryDirMode); err != nil {
		return "", errors.Join(ErrRegister, err)
	}

	if err := afero.WriteFile(r.fs, r.Path(), []byte(desktopEntry(r.protocol, exe)), entryFileMode); err != nil {
		return "", errors.Join(ErrRegister, err)
	}

	return r.Path(), nil
}

// Unregister removes the entry. It reports false if there was none.
func (r *Registrar) Unregister() (bool, error) {
	if err := validateProtocol(r.protocol); err != nil {
		return false, errors.Join(ErrUnregister, err)
	}

	exists, err := afero.Exists(r.fs, r.Path())
	if err != nil {
		return false, errors.Join(ErrUnregister, err)
	}

	if !exists {
		return false, nil
	}

	if err := r.fs.Remove(r.Path()); err != nil {
		return false, errors.Join(ErrUnregister, err)
	}

	return true, nil
}

// Registered reports whether the entry exists.
func (r *Registrar) Registered() (bool, error) {
	return afero.Exists(r.fs, r.Path())
}

func validateProtocol(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidProtocol)
	}

	for i, c := range p {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return fmt.Errorf("%w: %q", ErrInvalidProtocol, p)
		}
	}

	return nil
}

func desktopEntry(protocol, exe string) string {
	sb := strings.Builder{}
	sb.WriteString("[Desktop Entry]\n")
	sb.WriteString("Type=Application\n")
	sb.WriteString("Name=" + protocol + "\n")
	sb.WriteString("Comment=" + protocol + ":copy to clipboard\n")
	sb.WriteString("Exec=" + quoteExecArg(exe) + " setFromUri %u\n")
	sb.WriteString("NoDisplay=true\n")
	sb.WriteString("MimeType=x-scheme-handler/" + protocol + ";\n")

	return sb.String()
}

// quoteExecArg quotes an Exec argument as the desktop entry specification requires.
func quoteExecArg(s string) string {
	if !strings.ContainsAny(s, " \t\n\"'\\><~|&;$*?#()`") {
		return s
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)

	return `"` + r.Replace(s) + `"`
}
