// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import "errors"

// ErrCommandLine marks errors caused by command-line misuse or command
// configuration, as opposed to failures raised by a handler.
// The dispatcher reports these as usage errors instead of propagating them.
var ErrCommandLine = errors.New("invalid command line")

// lineError is a fixed-message error that matches ErrCommandLine.
type lineError string

func (e lineError) Error() string {
	return string(e)
}

func (e lineError) Is(target error) bool {
	return target == ErrCommandLine
}

// NewLineError returns an error with the given message that matches ErrCommandLine.
func NewLineError(msg string) error {
	return lineError(msg)
}
