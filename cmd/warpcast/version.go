// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/version"
)

func (a *app) versionCommand() *cli.Command {
	var output cli.JSONOutput

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			output.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			build := version.Current()
			if done, err := output.EmitJSON(a.stdout, build); done {
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "warpcast %s\n  Go: %s\n  Platform: %s\n",
				build, build.GoVersion, build.Platform)
			return err
		},
	}
}
