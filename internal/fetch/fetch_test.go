// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getURL(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantErr   error
		wantBytes []byte
	}{
		{
			name:    "empty url returns error",
			url:     "",
			wantErr: ErrFetch,
		},
		{
			name:    "remote get fails",
			url:     "git::http://notexist//file.yaml",
			wantErr: ErrFetch,
		},
		{
			name:    "url without a file part",
			url:     "git::http://notexist//dir/",
			wantErr: ErrFetch,
		},
		{
			name:    "missing local file",
			url:     "./testdata/missing.txt",
			wantErr: ErrFetch,
		},
		{
			name:      "local file",
			url:       "./testdata/test.txt",
			wantBytes: []byte("this is a test file\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bytes, err := getURL(context.Background(), tc.url)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, bytes)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, bytes)
		})
	}
}

func Test_getURLPermanentErrors(t *testing.T) {
	_, err := getURL(context.Background(), "./testdata/missing.txt")

	var permanent *backoff.PermanentError
	assert.ErrorAs(t, err, &permanent, "local failures are not retried")

	_, err = getURL(context.Background(), "git::http://notexist//file.yaml")
	assert.False(t, errors.As(err, &permanent), "remote failures are retried")
}

func Test_splitFileNameFromGetterURL(t *testing.T) {
	testCases := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo.git//dir/file.txt?ref=main",
			wantURL:  "git::https://github.com/org/repo.git//dir?ref=main",
			wantFile: "file.txt",
		},
		{
			url:      "git::https://github.com/org/repo.git//file.txt",
			wantURL:  "git::https://github.com/org/repo.git",
			wantFile: "file.txt",
		},
		{
			url:      "git::https://github.com/org/repo.git//a/b/file.txt",
			wantURL:  "git::https://github.com/org/repo.git//a/b",
			wantFile: "file.txt",
		},
		{
			url: "https://example.com/file.txt",
		},
		{
			url: "git::https://github.com/org/repo.git//dir/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tc.url)

			assert.Equal(t, tc.wantURL, gotURL)
			assert.Equal(t, tc.wantFile, gotFile)
		})
	}
}

// flakyGetter fails the first failures calls with err.
type flakyGetter struct {
	calls    int
	failures int
	err      error
}

func (g *flakyGetter) get(_ context.Context, _ string) ([]byte, error) {
	g.calls++
	if g.calls <= g.failures {
		return nil, g.err
	}

	return []byte("content"), nil
}

func newTestFetcher(g *flakyGetter, retries int) *Fetcher {
	f := New(WithRetries(retries), WithBackOff(func() backoff.BackOff {
		return &backoff.ZeroBackOff{}
	}))
	f.get = g.get

	return f
}

func TestFetchRetries(t *testing.T) {
	transient := errors.Join(ErrFetch, errors.New("connection reset"))

	t.Run("succeeds after transient failures", func(t *testing.T) {
		g := &flakyGetter{failures: 2, err: transient}

		b, err := newTestFetcher(g, 3).Fetch(context.Background(), "src")

		require.NoError(t, err)
		assert.Equal(t, []byte("content"), b)
		assert.Equal(t, 3, g.calls)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		g := &flakyGetter{failures: 10, err: transient}

		_, err := newTestFetcher(g, 2).Fetch(context.Background(), "src")

		assert.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, 3, g.calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		g := &flakyGetter{failures: 10, err: backoff.Permanent(transient)}

		_, err := newTestFetcher(g, 5).Fetch(context.Background(), "src")

		assert.ErrorIs(t, err, ErrFetch)

		var permanent *backoff.PermanentError
		assert.False(t, errors.As(err, &permanent), "the permanent marker is removed")
		assert.Equal(t, 1, g.calls)
	})

	t.Run("negative retries mean a single attempt", func(t *testing.T) {
		g := &flakyGetter{failures: 10, err: transient}

		_, err := newTestFetcher(g, -1).Fetch(context.Background(), "src")

		assert.Error(t, err)
		assert.Equal(t, 1, g.calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		g := &flakyGetter{failures: 10, err: transient}

		_, err := newTestFetcher(g, 5).Fetch(ctx, "src")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, g.calls)
	})
}

func TestFetchLocalFile(t *testing.T) {
	b, err := New(WithRetries(0)).Fetch(context.Background(), "./testdata/test.txt")

	require.NoError(t, err)
	assert.Equal(t, "this is a test file\n", string(b))
}
