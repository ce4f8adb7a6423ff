// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/4dv/uclip/internal/dispatcher"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

// report prints err the way the user should see it and returns the exit status.
// Usage errors from the dispatcher have already been printed with help.
func report(w io.Writer, err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, dispatcher.ErrUsage):
		return exitUsage
	case errors.Is(err, errFlagUsage):
		fmt.Fprintf(w, "Invalid command line: %s\n", err) //nolint:errcheck
		return exitUsage
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(w, "You don't have enough permissions, try to run as admin: %s\n", permissionMessage(err)) //nolint:errcheck
		return exitFailure
	default:
		fmt.Fprintf(w, "Exception in program: %s\n", err) //nolint:errcheck
		return exitFailure
	}
}

// permissionMessage returns the message of the operation that was denied.
func permissionMessage(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Error()
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Error()
	}

	return err.Error()
}
