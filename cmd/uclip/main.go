// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the uclip command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/4dv/uclip/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	code := run(ctx, os.Args, os.Stdout, os.Stderr)

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())

		code = exitFailure
	}

	signalbroker.Stop(sigCh)
	cancel()
	os.Exit(code)
}
