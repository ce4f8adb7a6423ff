// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch reads the content of a single file addressed with Hashicorp's
// go-getter syntax, e.g. a local path, an HTTP URL or
// `git::https://example.com/repo.git//dir/file.txt?ref=main`.
// See https://github.com/hashicorp/go-getter.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-getter/v2"
)

// ErrFetch is returned when a source cannot be fetched.
var ErrFetch = errors.New("failed to fetch source")

const defaultRetries = 3

// Fetcher fetches sources, retrying transient failures with exponential backoff.
type Fetcher struct {
	retries    uint64
	newBackOff func() backoff.BackOff
	get        func(ctx context.Context, src string) ([]byte, error)
}

// Option configures a Fetcher.
type Option func(f *Fetcher)

// WithRetries sets how many times a failed fetch is retried. Negative values mean no retries.
func WithRetries(n int) Option {
	return func(f *Fetcher) {
		f.retries = uint64(max(n, 0))
	}
}

// WithBackOff sets the backoff policy between retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(f *Fetcher) {
		f.newBackOff = newBackOff
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		retries: defaultRetries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(time.Minute))
		},
		get: getURL,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch returns the content of the file at src.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	b := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), f.retries), ctx)

	notify := func(err error, next time.Duration) {
		ctxlog.Warn(ctx, "fetch failed, retrying", "source", src, "error", err.Error(), "retry_in", next.String())
	}

	return backoff.RetryNotifyWithData(func() ([]byte, error) {
		return f.get(ctx, src)
	}, b, notify)
}

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// Errors that a retry cannot fix are marked permanent.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, backoff.Permanent(fmt.Errorf("%w: empty source", ErrFetch))
	}

	tmpDir, err := os.MkdirTemp("", "uclip-getter-*")
	if err != nil {
		return nil, backoff.Permanent(errors.Join(ErrFetch, err))
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, backoff.Permanent(errors.Join(ErrFetch, err))
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	local := true

	// A remote source is fetched as a directory and the file is read from it.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, backoff.Permanent(errors.Join(ErrFetch, err))
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, backoff.Permanent(fmt.Errorf("%w: invalid URL format: %s", ErrFetch, url))
		}

		req.Src = newURL
		local = false
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := cli.Get(ctx, req)
	if err != nil {
		err = errors.Join(ErrFetch, err)
		if local {
			err = backoff.Permanent(err)
		}

		return nil, err
	}

	bytes, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, backoff.Permanent(errors.Join(ErrFetch, err))
	}

	return bytes, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself,
// keeping any query string on the new URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
