// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/fuzzy"
	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

type channelsOptions struct {
	commonOptions
	Limit  int
	Filter string
}

func (a *app) channelsCommand() *cli.Command {
	var options channelsOptions

	return &cli.Command{
		Name:    "channels",
		Summary: "List channels",
		Description: fmt.Sprintf(`List channels. With --filter, the first %d channels are ranked by a
fuzzy match of the pattern against each channel's id and name, and
the best --limit matches are shown.`, warpcast.MaxChannelLimit),
		Usage: "warpcast channels [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("channels", pflag.ContinueOnError)
			options.addFlags(flagSet)
			flagSet.IntVar(&options.Limit, "limit", warpcast.DefaultPageLimit,
				fmt.Sprintf("maximum channels (1-%d)", warpcast.MaxChannelLimit))
			flagSet.StringVar(&options.Filter, "filter", "", "fuzzy filter on channel id and name")
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Find developer channels", Command: "warpcast channels --filter dev --limit 5"},
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "warpcast channels [flags]"); err != nil {
				return err
			}

			client, release, err := a.connect(&options.commonOptions)
			defer release()
			if err != nil {
				return err
			}

			heading := "Channels:"
			var channels []warpcast.Channel
			if options.Filter == "" {
				channels, err = client.ListChannels(a.ctx, options.Limit)
			} else {
				heading = fmt.Sprintf("Channels matching %q:", options.Filter)
				channels, err = a.filterChannels(client, options.Filter, options.Limit)
			}
			if err != nil {
				return err
			}

			if done, err := options.EmitJSON(a.stdout, channels); done {
				return err
			}
			_, err = fmt.Fprint(a.stdout, a.renderer().Channels(heading, channels))
			return err
		},
	}
}

// filterChannels ranks the largest channel listing against pattern and
// returns at most limit matches, best first.
func (a *app) filterChannels(client *warpcast.Client, pattern string, limit int) ([]warpcast.Channel, error) {
	if limit < 1 || limit > warpcast.MaxChannelLimit {
		return nil, &warpcast.ValidationError{
			Operation: "listChannels",
			Field:     "limit",
			Reason:    fmt.Sprintf("must be between 1 and %d, got %d", warpcast.MaxChannelLimit, limit),
		}
	}

	all, err := client.ListChannels(a.ctx, warpcast.MaxChannelLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(all))
	for index, channel := range all {
		candidates[index] = channel.ID + " " + channel.Name
	}

	matches := fuzzy.Rank(pattern, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	channels := make([]warpcast.Channel, len(matches))
	for index, match := range matches {
		channels[index] = all[match.Index]
	}
	return channels, nil
}

func (a *app) channelCommand() *cli.Command {
	var options commonOptions
	const usage = "warpcast channel <channel-id> [flags]"

	return &cli.Command{
		Name:    "channel",
		Summary: "Show one channel",
		Usage:   usage,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("channel", pflag.ContinueOnError)
			options.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}

			client, release, err := a.connect(&options)
			defer release()
			if err != nil {
				return err
			}

			channel, err := client.GetChannel(a.ctx, strings.TrimPrefix(args[0], "/"))
			if err != nil {
				return err
			}
			if done, err := options.EmitJSON(a.stdout, channel); done {
				return err
			}
			_, err = fmt.Fprint(a.stdout, a.renderer().Channel(*channel))
			return err
		},
	}
}

// followResult is the --json output of follow and unfollow.
type followResult struct {
	ChannelID string `json:"channel_id"`
	Action    string `json:"action"`
	Success   bool   `json:"success"`
}

func (a *app) followCommand() *cli.Command {
	return a.followingCommand("follow", "Follow a channel", (*warpcast.Client).FollowChannel)
}

func (a *app) unfollowCommand() *cli.Command {
	return a.followingCommand("unfollow", "Unfollow a channel", (*warpcast.Client).UnfollowChannel)
}

// followingCommand builds follow and unfollow. A request the server
// answers with success=false exits with status 1.
func (a *app) followingCommand(name, summary string, change func(*warpcast.Client, context.Context, string) (bool, error)) *cli.Command {
	var options commonOptions
	usage := fmt.Sprintf("warpcast %s <channel-id> [flags]", name)

	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Description: summary + ". Requires an app key or API token.",
		Usage:       usage,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
			options.addFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}
			channelID := strings.TrimPrefix(args[0], "/")

			client, release, err := a.connect(&options)
			defer release()
			if err != nil {
				return err
			}

			success, err := change(client, a.ctx, channelID)
			if err != nil {
				return err
			}

			result := followResult{ChannelID: channelID, Action: name, Success: success}
			if done, err := options.EmitJSON(a.stdout, result); done {
				if err == nil && !success {
					return &cli.ExitError{Code: 1}
				}
				return err
			}
			if !success {
				fmt.Fprintf(a.stderr, "The server did not confirm the %s of /%s.\n", name, channelID)
				return &cli.ExitError{Code: 1}
			}
			_, err = fmt.Fprintf(a.stdout, "%sed /%s.\n", capitalize(name), channelID)
			return err
		},
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
