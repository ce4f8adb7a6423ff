// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clipboard keeps clipboard contents in a YAML file.
//
// The clipboard holds one piece of data per format name, e.g. "Text" or "Html".
// Setting data replaces the whole clipboard, as a system clipboard does.
// Every change is written to a temporary file and renamed over the store.
// Values are written as double-quoted scalars so they read back byte for byte;
// data that is not valid UTF-8 is kept base64-encoded under `binary`.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// FormatText is the format used for plain text.
const FormatText = "Text"

const (
	storeDirMode  = 0o700
	storeFileMode = 0o600
)

var (
	// ErrReadStore is returned when the store file cannot be read.
	ErrReadStore = errors.New("failed to read clipboard store")
	// ErrDecodeStore is returned when the store file is not a valid clipboard document.
	ErrDecodeStore = errors.New("failed to decode clipboard store")
	// ErrWriteStore is returned when the store file cannot be written.
	ErrWriteStore = errors.New("failed to write clipboard store")
)

type document struct {
	Formats map[string]string `yaml:"formats"`
	Binary  map[string]string `yaml:"binary,omitempty"`
}

// Store is a file-backed clipboard.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewStore returns a Store persisted at path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:   fs,
		path: path,
	}
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// Formats returns the formats currently held, sorted by name.
func (s *Store) Formats() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	formats := make([]string, 0, len(doc.Formats))
	for f := range doc.Formats {
		formats = append(formats, f)
	}

	slices.Sort(formats)

	return formats, nil
}

// Get returns the data held in format.
func (s *Store) Get(format string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}

	data, ok := doc.Formats[format]

	return data, ok, nil
}

// Set replaces the clipboard contents with data in format.
func (s *Store) Set(format, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(&document{Formats: map[string]string{format: data}})
}

// Clear empties the clipboard.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(&document{Formats: map[string]string{}})
}

// Retain keeps only the formats for which keep returns true.
func (s *Store) Retain(keep func(format string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	for f := range doc.Formats {
		if !keep(f) {
			delete(doc.Formats, f)
		}
	}

	return s.save(doc)
}

func (s *Store) load() (*document, error) {
	b, err := afero.ReadFile(s.fs, s.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return &document{Formats: map[string]string{}}, nil
	case err != nil:
		return nil, errors.Join(ErrReadStore, err)
	}

	doc := &document{}
	if err := yaml.Unmarshal(b, doc); err != nil {
		return nil, errors.Join(ErrDecodeStore, err)
	}

	if doc.Formats == nil {
		doc.Formats = map[string]string{}
	}

	for f, enc := range doc.Binary {
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, errors.Join(ErrDecodeStore, fmt.Errorf("binary format %s: %w", f, err))
		}

		doc.Formats[f] = string(data)
	}

	doc.Binary = nil

	return doc, nil
}

// encode moves data that is not valid UTF-8 to the binary section.
func (doc *document) encode() *document {
	out := &document{Formats: make(map[string]string, len(doc.Formats))}

	for f, data := range doc.Formats {
		if utf8.ValidString(data) {
			out.Formats[f] = data
			continue
		}

		if out.Binary == nil {
			out.Binary = map[string]string{}
		}

		out.Binary[f] = base64.StdEncoding.EncodeToString([]byte(data))
	}

	return out
}

func (s *Store) save(doc *document) error {
	b, err := yaml.MarshalWithOptions(doc.encode(), yaml.JSON())
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, storeDirMode); err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	tmpName := tmp.Name()

	_, werr := tmp.Write(b)
	cerr := tmp.Close()

	if err := errors.Join(werr, cerr); err != nil {
		s.fs.Remove(tmpName) //nolint:errcheck
		return errors.Join(ErrWriteStore, err)
	}

	if err := s.fs.Chmod(tmpName, storeFileMode); err != nil {
		s.fs.Remove(tmpName) //nolint:errcheck
		return errors.Join(ErrWriteStore, err)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName) //nolint:errcheck
		return errors.Join(ErrWriteStore, err)
	}

	return nil
}
