// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/4dv/uclip"
	"github.com/4dv/uclip/internal/clipboard"
	"github.com/4dv/uclip/internal/commands/clip"
	"github.com/4dv/uclip/internal/config"
	"github.com/4dv/uclip/internal/ctxlog"
	"github.com/4dv/uclip/internal/dispatcher"
	"github.com/4dv/uclip/internal/fetch"
	"github.com/4dv/uclip/internal/urlhandler"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	programName = "uclip"

	configFlag        = "config"
	strictArgsFlag    = "strict-args"
	strictModulesFlag = "strict-modules"
	strictExitFlag    = "strict-exit"
	logLevelFlag      = "log-level"
)

// errFlagUsage marks errors in the global flags.
var errFlagUsage = errors.New("invalid global flags")

// fsFactory returns the filesystem holding the clipboard store and the handler entry.
var fsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// app carries what the root command needs beyond its flags.
type app struct {
	stdout io.Writer
	stderr io.Writer
	tokens []string
}

func newRootCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  programName,
		Usage: "copy text to and from a file-backed clipboard",
		UsageText: programName + " [global options] [command] [arguments...]\n\n" +
			"Run `" + programName + " help` for the list of commands. " +
			"Put `--` before arguments that start with a dash.",
		Description: `uclip keeps clipboard data by format name and can be registered as the
handler of the uclip: URL scheme, so that opening uclip:%22text%22 copies "text".
Settings are read from *.uclip.hcl files in the configuration directory;
flags override them.`,
		Version:         fmt.Sprintf("%s (commit: %s)", uclip.Version, uclip.Commit),
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Directory holding *.uclip.hcl configuration files",
				Value:     config.DefaultDir(),
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:        strictArgsFlag,
				Usage:       "Reject more arguments than a command declares",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        strictModulesFlag,
				Usage:       "Reject a command declared by more than one module instead of letting the later one win",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        strictExitFlag,
				Usage:       "Exit with status 2 on command-line errors",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:     logLevelFlag,
				Usage:    "Log level: debug, info, warn or error. Overrides " + ctxlog.EnvVarName(),
				OnlyOnce: true,
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return fmt.Errorf("%w: %w", errFlagUsage, err)
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action:         a.action,
	}
}

func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet(logLevelFlag) {
		level, err := ctxlog.ParseLevel(cmd.String(logLevelFlag))
		if err != nil {
			return fmt.Errorf("%w: %w", errFlagUsage, err)
		}

		ctxlog.LevelVar.Set(level)
	}

	cfg, err := config.Load(ctx, cmd.String(configFlag))
	if err != nil {
		return err
	}

	applyFlags(cmd, cfg)

	fs := fsFactory()

	host := clip.New(
		clipboard.NewStore(fs, cfg.StorePath),
		fetch.New(fetch.WithRetries(cfg.FetchRetries)),
		urlhandler.New(fs, urlhandler.DefaultDir(), cfg.ProtocolName),
		clip.WithProtocolName(cfg.ProtocolName),
		clip.WithWriter(a.stdout),
	)

	d := dispatcher.New(host,
		dispatcher.WithWriter(a.stdout),
		dispatcher.WithProgramName(cmd.Name),
		dispatcher.WithVersion(cmd.Version),
		dispatcher.WithStrictArgumentCount(cfg.StrictArgumentCount),
		dispatcher.WithStrictModuleUniqueness(cfg.StrictModuleUniqueness),
		dispatcher.WithStrictExit(cfg.StrictExit),
	)

	ctxlog.Debug(ctx, "dispatching", "args", len(a.tokens), "store", cfg.StorePath)

	return d.Dispatch(ctx, a.tokens)
}

// applyFlags overrides configuration values with the flags given on the command line.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet(strictArgsFlag) {
		cfg.StrictArgumentCount = cmd.Bool(strictArgsFlag)
	}

	if cmd.IsSet(strictModulesFlag) {
		cfg.StrictModuleUniqueness = cmd.Bool(strictModulesFlag)
	}

	if cmd.IsSet(strictExitFlag) {
		cfg.StrictExit = cmd.Bool(strictExitFlag)
	}
}

// splitArgs separates the leading global flags from the command tokens.
// The tokens are returned untouched: urfave/cli trims positional arguments
// and stops at an empty one, which would change clipboard text.
func splitArgs(cmd *cli.Command, args []string) ([]string, []string) {
	valueFlags := make(map[string]struct{})

	for _, f := range cmd.Flags {
		if _, isBool := f.(*cli.BoolFlag); isBool {
			continue
		}

		for _, n := range f.Names() {
			valueFlags[n] = struct{}{}
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			return args[:i], args[i+1:]
		}

		if len(arg) < 2 || arg[0] != '-' {
			return args[:i], args[i:]
		}

		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}

		if _, ok := valueFlags[name]; ok {
			i++
		}
	}

	return args, []string{}
}

// run executes the program and returns its exit status.
func run(ctx context.Context, osArgs []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)

	flags, tokens := splitArgs(root, osArgs[1:])
	a.tokens = tokens

	err := root.Run(ctx, append([]string{osArgs[0]}, flags...))

	return report(stderr, err)
}
