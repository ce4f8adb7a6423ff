// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/4dv/uclip/internal/clipboard"
	"github.com/4dv/uclip/internal/config"
	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	dataHome  = "/data"
	configDir = "/cfg"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	fs     afero.Fs
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		fs:     afero.NewMemMapFs(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	t.Setenv("XDG_DATA_HOME", dataHome)

	stubs := gostub.Stub(&config.FsFactory, func() afero.Fs { return h.fs })
	stubs.Stub(&fsFactory, func() afero.Fs { return h.fs })
	t.Cleanup(stubs.Reset)

	return h
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()

	ctx := ctxlog.New(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	osArgs := append([]string{"uclip", "--config", configDir}, args...)

	return run(ctx, osArgs, h.stdout, h.stderr)
}

func TestRunSetAndGet(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, exitSuccess, h.run("set", "hello world"))
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, h.stderr.String())

	require.Equal(t, exitSuccess, h.run())
	assert.Equal(t, "hello world\n", h.stdout.String(), "get is the default command")

	require.Equal(t, exitSuccess, h.run("GET", "Text"))
	assert.Equal(t, "hello world\n", h.stdout.String())
}

func TestRunKeepsArgumentsVerbatim(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, exitSuccess, h.run("set", "  padded  ", "Html"))
	require.Equal(t, exitSuccess, h.run("get", "Html"))
	assert.Equal(t, "  padded  \n", h.stdout.String())

	require.Equal(t, exitSuccess, h.run("set", "\t tab\r\nnext\n"))
	require.Equal(t, exitSuccess, h.run("get"))
	assert.Equal(t, "\t tab\r\nnext\n\n", h.stdout.String())

	require.Equal(t, exitSuccess, h.run("set", "", "Rtf"))
	require.Equal(t, exitSuccess, h.run("list"))
	assert.Equal(t, "Rtf\n", h.stdout.String())
}

func TestRunDashArguments(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, exitSuccess, h.run("--", "set", "-x"))
	require.Equal(t, exitSuccess, h.run("get"))
	assert.Equal(t, "-x\n", h.stdout.String())
}

func TestRunUnknownCommand(t *testing.T) {
	t.Run("lenient exit", func(t *testing.T) {
		h := newHarness(t)

		assert.Equal(t, exitSuccess, h.run("lisst"))
		assert.Contains(t, h.stdout.String(), "Invalid command line: command lisst is not found (did you mean list?)")
		assert.Contains(t, h.stdout.String(), "Usage: uclip [command] [arguments...]")
	})

	t.Run("strict exit flag", func(t *testing.T) {
		h := newHarness(t)

		assert.Equal(t, exitUsage, h.run("--strict-exit", "lisst"))
		assert.Contains(t, h.stdout.String(), "Invalid command line:")
	})
}

func TestRunConfigFile(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, afero.WriteFile(h.fs, filepath.Join(configDir, "main"+config.FileExt), []byte(`
store_path            = "/elsewhere/clip.yaml"
strict_argument_count = true
strict_exit           = true
`), 0o644))

	require.Equal(t, exitSuccess, h.run("set", "x"))

	data, ok, err := clipboard.NewStore(h.fs, "/elsewhere/clip.yaml").Get(clipboard.FormatText)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", data)

	assert.Equal(t, exitUsage, h.run("list", "extra"))
	assert.Contains(t, h.stdout.String(), "list: too many arguments: expected at most 0, got 1")

	t.Run("flags override the file", func(t *testing.T) {
		assert.Equal(t, exitSuccess, h.run("--strict-args=false", "--strict-exit=false", "list", "extra"))
		assert.Equal(t, "Text\n", h.stdout.String())
	})
}

func TestRunBrokenConfig(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, afero.WriteFile(h.fs, filepath.Join(configDir, "bad"+config.FileExt), []byte(`store_path = `), 0o644))

	assert.Equal(t, exitFailure, h.run("list"))
	assert.Contains(t, h.stderr.String(), "Exception in program:")
	assert.Contains(t, h.stderr.String(), config.ErrParseConfigFile.Error())
}

func TestRunGlobalFlagErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, exitUsage, h.run("--log-level", "loud", "list"))
	assert.Contains(t, h.stderr.String(), "Invalid command line:")

	assert.Equal(t, exitUsage, h.run("--no-such-flag", "list"))
	assert.Contains(t, h.stderr.String(), "Invalid command line:")
}

func TestRunPermissionDenied(t *testing.T) {
	h := newHarness(t)
	h.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())

	assert.Equal(t, exitFailure, h.run("set", "x"))
	assert.Contains(t, h.stderr.String(), "You don't have enough permissions, try to run as admin:")
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, exitSuccess, h.run("version"))
	assert.Equal(t, "uclip dev (commit: unknown)\n", h.stdout.String())
}
