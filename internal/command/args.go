// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

// Args is the positional argument vector produced by binding.
// Values are raw text; a nil value is a null default.
type Args struct {
	params []Param
	values []*string
}

// NewArgs pairs bound values with the parameters they were bound to.
// values must be the same length as params.
func NewArgs(params []Param, values []*string) Args {
	return Args{params: params, values: values}
}

// Len returns the number of bound parameters.
func (a Args) Len() int {
	return len(a.values)
}

// Value returns the value at position i and whether it is non-null.
func (a Args) Value(i int) (string, bool) {
	if i < 0 || i >= len(a.values) || a.values[i] == nil {
		return "", false
	}

	return *a.values[i], true
}

// Lookup returns the value bound to the named parameter and whether it is non-null.
func (a Args) Lookup(name string) (string, bool) {
	for i, p := range a.params {
		if p.Name == name {
			return a.Value(i)
		}
	}

	return "", false
}

// String returns the value bound to the named parameter, or "" when null or unknown.
func (a Args) String(name string) string {
	v, _ := a.Lookup(name)
	return v
}

// Raw returns the underlying values in parameter order.
func (a Args) Raw() []*string {
	return a.values
}
