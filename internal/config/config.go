// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads uclip settings from `*.uclip.hcl` files.
//
// Every matching file in the configuration directory is parsed and the files are
// merged into a single body, so an attribute may be set in only one of them.
// Expressions can read the environment through the `env` object, e.g.
//
//	store_path = "${env.HOME}/clipboard.yaml"
//
// Attributes that are not set keep their defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/afero"
)

const (
	// FileExt is the suffix of configuration files.
	FileExt = ".uclip.hcl"

	appDirName           = "uclip"
	defaultStoreFile     = "clipboard.yaml"
	defaultProtocolName  = "uclip"
	defaultFetchRetries  = 3
	xdgConfigHomeEnvName = "XDG_CONFIG_HOME"
	xdgDataHomeEnvName   = "XDG_DATA_HOME"
)

var (
	// ErrParseConfigFile is returned when a configuration file cannot be read or parsed.
	ErrParseConfigFile = errors.New("failed to parse configuration file")
	// ErrDecodeConfig is returned when the merged configuration has invalid attributes.
	ErrDecodeConfig = errors.New("failed to decode configuration")
	// ErrInvalidConfig is returned when a decoded value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the settings of the uclip program.
type Config struct {
	// StrictArgumentCount rejects invocations with more tokens than parameters.
	StrictArgumentCount bool `hcl:"strict_argument_count,optional"`
	// StrictModuleUniqueness rejects a command declared by more than one module.
	StrictModuleUniqueness bool `hcl:"strict_module_uniqueness,optional"`
	// StrictExit makes command-line errors exit with a non-zero status.
	StrictExit bool `hcl:"strict_exit,optional"`
	// StorePath is the file holding the clipboard contents.
	StorePath string `hcl:"store_path,optional"`
	// ProtocolName is the URL scheme handled by setFromUri and register.
	ProtocolName string `hcl:"protocol_name,optional"`
	// FetchRetries is the number of retries for a failed load.
	FetchRetries int `hcl:"fetch_retries,optional"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		StorePath:    defaultStorePath(),
		ProtocolName: defaultProtocolName,
		FetchRetries: defaultFetchRetries,
	}
}

// DefaultDir returns $XDG_CONFIG_HOME/uclip, falling back to ~/.config/uclip.
func DefaultDir() string {
	if dir := os.Getenv(xdgConfigHomeEnvName); dir != "" {
		return filepath.Join(dir, appDirName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}

	return filepath.Join(home, ".config", appDirName)
}

func defaultStorePath() string {
	if dir := os.Getenv(xdgDataHomeEnvName); dir != "" {
		return filepath.Join(dir, appDirName, defaultStoreFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return defaultStoreFile
	}

	return filepath.Join(home, ".local", "share", appDirName, defaultStoreFile)
}

// Load reads every `*.uclip.hcl` file in dir over the defaults.
// A missing directory, or one without configuration files, yields the defaults.
func Load(ctx context.Context, dir string) (*Config, error) {
	cfg := Default()

	files, err := parseFiles(ctx, dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return cfg, nil
	}

	body := hcl.MergeFiles(files)
	if diags := gohcl.DecodeBody(body, newEvalContext(), cfg); diags.HasErrors() {
		return nil, errors.Join(ErrDecodeConfig, diags)
	}

	if cfg.FetchRetries < 0 {
		return nil, fmt.Errorf("%w: fetch_retries must not be negative, got %d", ErrInvalidConfig, cfg.FetchRetries)
	}

	return cfg, nil
}

func parseFiles(ctx context.Context, dir string) ([]*hcl.File, error) {
	fs := FsFactory()

	matches, err := afero.Glob(fs, filepath.Join(dir, "*"+FileExt))
	if err != nil {
		// the only error we expect here is ErrBadPattern, which should never happen as it is a constant.
		panic(err)
	}

	var (
		files  []*hcl.File
		result *multierror.Error
	)

	for _, filename := range matches {
		ctxlog.Debug(ctx, "reading configuration file", "file", filename)

		content, fsErr := afero.ReadFile(fs, filename)
		if fsErr != nil {
			result = multierror.Append(result, fsErr)
			continue
		}

		file, diags := hclsyntax.ParseConfig(content, filename, hcl.InitialPos)
		if diags.HasErrors() {
			result = multierror.Append(result, diags.Errs()...)
			continue
		}

		files = append(files, file)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrParseConfigFile, err)
	}

	return files, nil
}
