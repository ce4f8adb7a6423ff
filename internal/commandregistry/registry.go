// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/4dv/uclip/internal/command"
	"github.com/agnivade/levenshtein"
	"github.com/hashicorp/go-multierror"
)

const (
	// maxSuggestDistance is the largest edit distance offered as a suggestion.
	maxSuggestDistance = 2
)

// Entry is a registered command.
type Entry struct {
	Key    string
	Module string
	Spec   command.Spec
}

// Shadow records a command replaced by a later module.
type Shadow struct {
	Key            string
	Module         string
	ShadowedModule string
}

// Registry maps lookup keys to commands, preserving the order in which keys
// were first registered.
type Registry struct {
	keys     []string
	entries  map[string]*Entry
	shadowed []Shadow
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

type scanOptions struct {
	strictModuleUniqueness bool
}

// ScanOption configures Scan.
type ScanOption func(o *scanOptions)

// WithStrictModuleUniqueness rejects duplicate keys across modules instead of shadowing.
func WithStrictModuleUniqueness() ScanOption {
	return func(o *scanOptions) {
		o.strictModuleUniqueness = true
	}
}

// Scan builds a registry from the registration tables of the given modules,
// in order. Every configuration error found is returned together.
func Scan(modules []Module, opts ...ScanOption) (*Registry, error) {
	o := &scanOptions{}
	for _, opt := range opts {
		opt(o)
	}

	r := New()

	var result *multierror.Error

	for _, m := range modules {
		if m == nil {
			continue
		}

		modName := m.Name()
		seen := make(map[string]struct{})

		for i, spec := range m.Commands() {
			key := spec.Key()
			if key == "" {
				result = multierror.Append(result, fmt.Errorf("%w: module %q, entry %d", ErrEmptyCommandKey, modName, i))
				continue
			}

			if spec.Handler == nil {
				result = multierror.Append(result, fmt.Errorf("%w: module %q, command %q", ErrNilHandler, modName, key))
				continue
			}

			if _, dup := seen[key]; dup {
				result = multierror.Append(result, &DuplicateCommandError{Module: modName, Key: key})
				continue
			}

			seen[key] = struct{}{}

			if err := r.add(&Entry{Key: key, Module: modName, Spec: spec}, o.strictModuleUniqueness); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	if defaults := r.defaultKeys(); len(defaults) > 1 {
		result = multierror.Append(result, &DuplicateDefaultCommandError{Keys: defaults})
	}

	if result != nil {
		result.ErrorFormat = singleLineFormat
		return nil, result
	}

	return r, nil
}

// add inserts an entry, shadowing an entry of the same key in place.
func (r *Registry) add(e *Entry, strict bool) error {
	prev, exists := r.entries[e.Key]
	if !exists {
		r.keys = append(r.keys, e.Key)
		r.entries[e.Key] = e

		return nil
	}

	if strict {
		return &DuplicateCommandError{Module: e.Module, Key: e.Key, OtherModule: prev.Module}
	}

	r.shadowed = append(r.shadowed, Shadow{Key: e.Key, Module: e.Module, ShadowedModule: prev.Module})
	r.entries[e.Key] = e

	return nil
}

func (r *Registry) defaultKeys() []string {
	var keys []string

	for _, k := range r.keys {
		if r.entries[k].Spec.Default {
			keys = append(keys, k)
		}
	}

	return keys
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Lookup returns every entry registered under name, compared case-insensitively.
func (r *Registry) Lookup(name string) []*Entry {
	if e, ok := r.entries[command.NormalizeKey(name)]; ok {
		return []*Entry{e}
	}

	return nil
}

// Default returns the command marked as default, if any.
func (r *Registry) Default() (*Entry, bool) {
	for _, k := range r.keys {
		if e := r.entries[k]; e.Spec.Default {
			return e, true
		}
	}

	return nil, false
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.keys)
}

// Entries returns the registered commands in registration order.
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.keys))
	for _, k := range r.keys {
		entries = append(entries, r.entries[k])
	}

	return entries
}

// Iter iterates over the registry in registration order.
func (r *Registry) Iter() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, k := range r.keys {
			if !yield(k, r.entries[k]) {
				return
			}
		}
	}
}

// Shadowed returns the cross-module replacements made while scanning.
func (r *Registry) Shadowed() []Shadow {
	return slices.Clone(r.shadowed)
}

// Suggest returns registered keys close to name, nearest first.
// It is only used to enrich diagnostics, never to select a command.
func (r *Registry) Suggest(name string) []string {
	name = command.NormalizeKey(name)
	if name == "" {
		return nil
	}

	type candidate struct {
		key  string
		dist int
	}

	var candidates []candidate

	for _, k := range r.keys {
		if d := levenshtein.ComputeDistance(name, k); d <= maxSuggestDistance {
			candidates = append(candidates, candidate{key: k, dist: d})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.dist - b.dist
	})

	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, c.key)
	}

	return keys
}

func singleLineFormat(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "; ")
}
