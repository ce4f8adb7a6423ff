// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs(t *testing.T) {
	hello := "hello"
	params := []Param{Required("text"), Nullable("format")}
	args := NewArgs(params, []*string{&hello, nil})

	assert.Equal(t, 2, args.Len())

	v, ok := args.Value(0)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = args.Value(1)
	assert.False(t, ok, "null default should report absent")

	_, ok = args.Value(5)
	assert.False(t, ok, "out of range should report absent")

	v, ok = args.Lookup("text")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	assert.Equal(t, "", args.String("format"))
	assert.Equal(t, "", args.String("missing"))
	assert.Len(t, args.Raw(), 2)
}

func TestArgsZeroValue(t *testing.T) {
	var args Args

	assert.Equal(t, 0, args.Len())

	_, ok := args.Lookup("anything")
	assert.False(t, ok)
}
