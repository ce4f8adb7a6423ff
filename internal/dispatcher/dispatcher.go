// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/4dv/uclip/internal/argbind"
	"github.com/4dv/uclip/internal/argmatch"
	"github.com/4dv/uclip/internal/command"
	"github.com/4dv/uclip/internal/commandregistry"
	"github.com/4dv/uclip/internal/ctxlog"
)

// ErrUsage wraps command-line errors returned by Dispatch when strict exit is enabled.
var ErrUsage = errors.New("usage error")

// Dispatcher routes argument lists to the commands of its modules.
type Dispatcher struct {
	host            commandregistry.Module
	modules         []commandregistry.Module
	explicitModules bool

	writer      io.Writer
	programName string
	version     string

	strictArgumentCount    bool
	strictModuleUniqueness bool
	strictExit             bool

	mu       sync.Mutex
	registry *commandregistry.Registry
}

// New creates a Dispatcher for the host module. Unless WithModules is given,
// the built-in module is indexed first and the host second, so a host command
// shadows a built-in one of the same name.
func New(host commandregistry.Module, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		host:        host,
		writer:      os.Stdout,
		programName: strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe"),
		version:     "dev",
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Modules returns the modules indexed by the dispatcher, in scan order.
func (d *Dispatcher) Modules() []commandregistry.Module {
	if d.explicitModules {
		return d.modules
	}

	candidates := []commandregistry.Module{d.builtinModule(), d.host}
	seen := make(map[string]struct{}, len(candidates))
	modules := make([]commandregistry.Module, 0, len(candidates))

	for _, m := range candidates {
		if m == nil {
			continue
		}

		if _, ok := seen[m.Name()]; ok {
			continue
		}

		seen[m.Name()] = struct{}{}
		modules = append(modules, m)
	}

	return modules
}

// EnsurePopulated builds the registry on first use and returns it.
// A successful build is cached; a failed one is not, so a later call retries.
func (d *Dispatcher) EnsurePopulated(ctx context.Context) (*commandregistry.Registry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.registry != nil {
		return d.registry, nil
	}

	return d.populate(ctx)
}

// Rebuild rescans the modules and replaces the cached registry.
// The previous registry is kept if the scan fails.
func (d *Dispatcher) Rebuild(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.populate(ctx)

	return err
}

func (d *Dispatcher) populate(ctx context.Context) (*commandregistry.Registry, error) {
	var opts []commandregistry.ScanOption
	if d.strictModuleUniqueness {
		opts = append(opts, commandregistry.WithStrictModuleUniqueness())
	}

	reg, err := commandregistry.Scan(d.Modules(), opts...)
	if err != nil {
		ctxlog.Debug(ctx, "command registry build failed", "error", err.Error())
		return nil, err
	}

	for _, s := range reg.Shadowed() {
		ctxlog.Debug(ctx, "command shadowed", "command", s.Key, "module", s.Module, "shadowed_module", s.ShadowedModule)
	}

	ctxlog.Debug(ctx, "command registry built", "commands", reg.Len())

	d.registry = reg

	return reg, nil
}

// Dispatch runs the command selected by args.
// Command-line errors are printed with help and swallowed, or returned wrapped
// with ErrUsage when strict exit is enabled. Handler errors are returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) error {
	reg, err := d.EnsurePopulated(ctx)
	if err != nil {
		return d.reportUsage(ctx, nil, err)
	}

	req, err := argmatch.Match(reg, args)
	if err != nil {
		return d.reportUsage(ctx, reg, err)
	}

	bound, err := argbind.Bind(req.Entry.Spec.Params, req.RemainingArgs, argbind.WithStrict(d.strictArgumentCount))
	if err != nil {
		return d.reportUsage(ctx, reg, fmt.Errorf("%s: %w", req.Entry.Key, err))
	}

	ctxlog.Debug(ctx, "invoking command",
		"command", req.Entry.Key,
		"module", req.Entry.Module,
		"default", req.CommandToken == nil,
		"args", bound.Len(),
	)

	return req.Entry.Spec.Handler(ctx, bound)
}

// reportUsage prints a command-line error followed by help for reg, or the
// declared commands when reg is nil. Errors that are not command-line errors
// are returned untouched.
func (d *Dispatcher) reportUsage(ctx context.Context, reg *commandregistry.Registry, err error) error {
	if !errors.Is(err, command.ErrCommandLine) {
		return err
	}

	ctxlog.Debug(ctx, "invalid command line", "error", err.Error())

	if _, werr := fmt.Fprintf(d.writer, "Invalid command line: %s\n", err); werr != nil {
		return errors.Join(err, werr)
	}

	if werr := d.writeHelp(d.writer, reg); werr != nil {
		return errors.Join(err, werr)
	}

	if d.strictExit {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return nil
}
