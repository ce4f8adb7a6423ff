// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/4dv/uclip/internal/dispatcher"
	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	root := newRootCmd(&app{})

	tests := []struct {
		name   string
		args   []string
		flags  []string
		tokens []string
	}{
		{name: "no arguments", args: []string{}, flags: []string{}, tokens: []string{}},
		{name: "command only", args: []string{"set", "x"}, flags: []string{}, tokens: []string{"set", "x"}},
		{name: "bool flag", args: []string{"--strict-exit", "get"}, flags: []string{"--strict-exit"}, tokens: []string{"get"}},
		{name: "value flag consumes next", args: []string{"-c", "/cfg", "list"}, flags: []string{"-c", "/cfg"}, tokens: []string{"list"}},
		{name: "value flag with equals", args: []string{"--config=/cfg", "list"}, flags: []string{"--config=/cfg"}, tokens: []string{"list"}},
		{name: "double dash", args: []string{"--strict-args", "--", "set", "-v"}, flags: []string{"--strict-args"}, tokens: []string{"set", "-v"}},
		{name: "dash is a token", args: []string{"-", "x"}, flags: []string{}, tokens: []string{"-", "x"}},
		{name: "empty token is kept", args: []string{"set", "", "Html"}, flags: []string{}, tokens: []string{"set", "", "Html"}},
		{name: "flags only", args: []string{"--version"}, flags: []string{"--version"}, tokens: []string{}},
		{name: "later dashes are tokens", args: []string{"set", "--strict-exit"}, flags: []string{}, tokens: []string{"set", "--strict-exit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, tokens := splitArgs(root, tt.args)
			assert.Equal(t, tt.flags, flags)
			assert.Equal(t, tt.tokens, tokens)
		})
	}
}

func TestReport(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/data/clip.yaml", Err: os.ErrPermission}

	tests := []struct {
		name   string
		err    error
		code   int
		output string
	}{
		{name: "success", err: nil, code: exitSuccess, output: ""},
		{name: "dispatcher usage", err: fmt.Errorf("%w: bad", dispatcher.ErrUsage), code: exitUsage, output: ""},
		{name: "flag usage", err: fmt.Errorf("%w: unknown flag", errFlagUsage), code: exitUsage, output: "Invalid command line: invalid global flags: unknown flag\n"},
		{
			name:   "permission",
			err:    fmt.Errorf("write store: %w", pathErr),
			code:   exitFailure,
			output: "You don't have enough permissions, try to run as admin: open /data/clip.yaml: permission denied\n",
		},
		{name: "other", err: errors.New("boom"), code: exitFailure, output: "Exception in program: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder

			assert.Equal(t, tt.code, report(&out, tt.err))
			assert.Equal(t, tt.output, out.String())
		})
	}
}
