// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
)

func (a *app) rootCommand() *cli.Command {
	return &cli.Command{
		Name: "warpcast",
		Description: `warpcast: command-line client for the Warpcast API.

Reads need no credentials. Posting and channel follows sign each
request with a short-lived app key token, or use a pre-issued API
token. Credentials come from the file named by --config or
$WARPCAST_CONFIG, or from the WARPCAST_FID, WARPCAST_PUBLIC_KEY,
WARPCAST_PRIVATE_KEY and WARPCAST_API_TOKEN variables.`,
		HelpOutput: a.stderr,
		Subcommands: []*cli.Command{
			a.postCommand(),
			a.castsCommand(),
			a.searchCommand(),
			a.trendingCommand(),
			a.channelsCommand(),
			a.channelCommand(),
			a.channelCastsCommand(),
			a.followCommand(),
			a.unfollowCommand(),
			a.tokenCommand(),
			a.keygenCommand(),
			a.versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show trending casts",
				Command:     "warpcast trending --limit 5",
			},
			{
				Description: "Post with an app key configured in a file",
				Command:     `warpcast post --config ~/.config/warpcast.yaml "gm"`,
			},
		},
	}
}
