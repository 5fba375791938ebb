// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/clock"
	"github.com/bureau-foundation/warpcast/lib/config"
	"github.com/bureau-foundation/warpcast/lib/render"
	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

// app carries the process-level dependencies every command shares.
// Tests substitute in-memory streams and a fake clock.
type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock
	random io.Reader

	// width bounds rendered lines; zero leaves them unwrapped.
	width int
}

func newApp(ctx context.Context) *app {
	return &app{
		ctx:    ctx,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clock.Real(),
		random: rand.Reader,
		width:  terminalWidth(os.Stdout),
	}
}

func terminalWidth(file *os.File) int {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// commonOptions are the flags every API command accepts.
type commonOptions struct {
	cli.JSONOutput
	ConfigPath string
	LogLevel   string
}

func (o *commonOptions) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.ConfigPath, "config", "",
		"configuration file (default: $"+config.EnvConfig+", else the WARPCAST_* variables)")
	flagSet.StringVar(&o.LogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	o.JSONOutput.AddFlag(flagSet)
}

// load reads and validates the configuration selected by --config or
// the environment, applying flag overrides.
func (o *commonOptions) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.ConfigPath != "" {
		cfg, err = config.LoadFile(o.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connect builds an API client from the configuration. The returned
// release function closes any key material and must always be called.
func (a *app) connect(options *commonOptions) (*warpcast.Client, func(), error) {
	noop := func() {}

	cfg, err := options.load()
	if err != nil {
		return nil, noop, err
	}
	level, _ := cfg.Log.SlogLevel()
	logger := cli.NewCommandLogger(level, cfg.Log.Format)

	clientConfig, err := cfg.ClientConfig(logger)
	if err != nil {
		return nil, noop, err
	}
	release := func() {
		if clientConfig.KeyMaterial != nil {
			clientConfig.KeyMaterial.Close()
		}
	}
	clientConfig.Clock = a.clock

	client, err := warpcast.NewClient(clientConfig)
	if err != nil {
		release()
		return nil, noop, err
	}
	return client, release, nil
}

func (a *app) renderer() *render.Renderer {
	return render.New(a.stdout, render.Options{Width: a.width})
}

// requireArgs checks the positional argument count for commands that
// take exactly want arguments.
func requireArgs(args []string, want int, usage string) error {
	if len(args) < want {
		return fmt.Errorf("missing argument\n\nUsage:\n  %s", usage)
	}
	if len(args) > want {
		return fmt.Errorf("unexpected argument: %s", args[want])
	}
	return nil
}
