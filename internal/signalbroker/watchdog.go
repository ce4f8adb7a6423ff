// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/4dv/uclip/internal/ctxlog"
)

// Watch reads sigCh until the second signal of a kind arrives, then calls cancel.
// It also returns when sigCh is closed or ctx is done.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, again := seen[sig]; again {
				ctxlog.Warn(ctx, "second signal received, cancelling command", "signal", sig.String())
				Stop(sigCh)
				cancel()

				return
			}

			ctxlog.Warn(ctx, "signal received, send again to cancel", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
