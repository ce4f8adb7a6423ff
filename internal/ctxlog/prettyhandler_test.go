// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: level}, WithDestinationWriter(buf)))
}

func TestPrettyHandlerFormat(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelDebug).Info("dispatching", "command", "get", "args", 0)

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "["), "line should start with a timestamp: %q", line)
	assert.Contains(t, line, "INFO: dispatching")
	assert.Contains(t, line, `"command": "get"`)
	assert.Contains(t, line, `"args": 0`)
	assert.NotContains(t, line, `"msg"`, "builtin attributes are rendered once")
	assert.NotContains(t, line, "\033[", "no colour unless requested")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestPrettyHandlerNoAttrs(t *testing.T) {
	var buf bytes.Buffer

	newTestLogger(&buf, slog.LevelDebug).Warn("plain")

	assert.True(t, strings.HasSuffix(buf.String(), "WARN: plain\n"), buf.String())
}

func TestPrettyHandlerColour(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf), WithColour()))
	logger.Error("boom")

	assert.Contains(t, buf.String(), "\033[31mERROR:\033[0m")
}

func TestPrettyHandlerAutoColourOnBuffer(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")

	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf), WithAutoColour())
	assert.False(t, h.colour)
}

func TestPrettyHandlerEnabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}

func TestPrettyHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	logger := newTestLogger(&buf, slog.LevelDebug).
		With("module", "builtin").
		WithGroup("request").
		With("token", "help")

	logger.Debug("matched")

	out := buf.String()
	assert.Contains(t, out, `"module": "builtin"`)
	assert.Contains(t, out, `"request": {`)
	assert.Contains(t, out, `"token": "help"`)
}

func TestPrettyHandlerWriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	err := h.Handle(context.Background(), slog.NewRecord(testTime(), slog.LevelError, "lost", 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestPrettyHandlerConcurrentUse(t *testing.T) {
	var (
		buf bytes.Buffer
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&lockedWriter{w: &buf, mu: &mu})))

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Warn("concurrent", "i", i)
		}()
	}

	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "\n"))
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
