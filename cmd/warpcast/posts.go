// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

func (a *app) postCommand() *cli.Command {
	var options commonOptions

	return &cli.Command{
		Name:    "post",
		Summary: "Publish a cast",
		Description: fmt.Sprintf(`Publish a cast with the given text. Arguments are joined with single
spaces; "-" reads the text from stdin.

Text longer than %d characters is truncated unless posting.overflow is
"reject" in the configuration. Requires an app key or API token.`, warpcast.MaxPostLength),
		Usage: "warpcast post <text...> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("post", pflag.ContinueOnError)
			options.addFlags(flagSet)
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Post a cast", Command: `warpcast post "gm, farcaster"`},
			{Description: "Post the output of another command", Command: "fortune | warpcast post -"},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("missing cast text\n\nUsage:\n  warpcast post <text...> [flags]")
			}
			text := strings.Join(args, " ")
			if text == "-" {
				var err error
				if text, err = readText(a.stdin); err != nil {
					return err
				}
			}

			client, release, err := a.connect(&options)
			defer release()
			if err != nil {
				return err
			}

			post, err := client.CreatePost(a.ctx, text)
			if err != nil {
				return err
			}
			if done, err := options.EmitJSON(a.stdout, post); done {
				return err
			}
			_, err = fmt.Fprint(a.stdout, a.renderer().PostCreated(*post))
			return err
		},
	}
}

func readText(reader io.Reader) (string, error) {
	data, err := io.ReadAll(bufio.NewReader(reader))
	if err != nil {
		return "", fmt.Errorf("reading cast text from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// listingOptions are the flags shared by content listings.
type listingOptions struct {
	commonOptions
	Limit  int
	Cursor string
	Pages  int
}

func (o *listingOptions) flags(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	o.commonOptions.addFlags(flagSet)
	flagSet.IntVar(&o.Limit, "limit", warpcast.DefaultPageLimit,
		fmt.Sprintf("casts per page (1-%d)", warpcast.MaxContentPageLimit))
	flagSet.StringVar(&o.Cursor, "cursor", "", "resume from the cursor printed by an earlier listing")
	flagSet.IntVar(&o.Pages, "pages", 1, "pages to fetch; 0 fetches until the listing ends")
	return flagSet
}

// listPosts fetches up to options.Pages pages from the iterator built
// by open and prints them under heading, followed by the cursor to
// resume from when more pages remain.
func (a *app) listPosts(options *listingOptions, heading string, open func(*warpcast.Client) *warpcast.PostIterator) error {
	if options.Pages < 0 {
		return fmt.Errorf("--pages must not be negative (got %d)", options.Pages)
	}

	client, release, err := a.connect(&options.commonOptions)
	defer release()
	if err != nil {
		return err
	}

	iterator := open(client).StartAt(options.Cursor)
	posts := []warpcast.Post{}
	for page := 0; options.Pages == 0 || page < options.Pages; page++ {
		items, err := iterator.Next(a.ctx)
		if err != nil {
			return err
		}
		if items == nil {
			break
		}
		posts = append(posts, items...)
		if iterator.Cursor() == "" {
			break
		}
	}

	result := warpcast.Page[warpcast.Post]{Items: posts, NextCursor: iterator.Cursor()}
	if done, err := options.EmitJSON(a.stdout, result); done {
		return err
	}
	if _, err := fmt.Fprint(a.stdout, a.renderer().Posts(heading, posts)); err != nil {
		return err
	}
	if result.NextCursor != "" {
		_, err = fmt.Fprintf(a.stdout, "\nMore casts available: --cursor %s\n", result.NextCursor)
	}
	return err
}

func (a *app) castsCommand() *cli.Command {
	var options listingOptions
	const usage = "warpcast casts <username> [flags]"

	return &cli.Command{
		Name:    "casts",
		Summary: "List a user's recent casts",
		Usage:   usage,
		Flags:   func() *pflag.FlagSet { return options.flags("casts") },
		Examples: []cli.Example{
			{Description: "Latest casts from a user", Command: "warpcast casts dwr --limit 5"},
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}
			username := strings.TrimPrefix(args[0], "@")
			return a.listPosts(&options, fmt.Sprintf("Latest casts from @%s:", username),
				func(client *warpcast.Client) *warpcast.PostIterator {
					return client.UserPosts(username, options.Limit)
				})
		},
	}
}

func (a *app) searchCommand() *cli.Command {
	var options listingOptions

	return &cli.Command{
		Name:    "search",
		Summary: "Search casts by text",
		Usage:   "warpcast search <query...> [flags]",
		Flags:   func() *pflag.FlagSet { return options.flags("search") },
		Examples: []cli.Example{
			{Description: "Search two pages of results", Command: `warpcast search "open source" --pages 2`},
		},
		Run: func(args []string) error {
			query := strings.Join(args, " ")
			return a.listPosts(&options, fmt.Sprintf("Search results for %q:", query),
				func(client *warpcast.Client) *warpcast.PostIterator {
					return client.Search(query, options.Limit)
				})
		},
	}
}

func (a *app) trendingCommand() *cli.Command {
	var options listingOptions

	return &cli.Command{
		Name:    "trending",
		Summary: "List trending casts",
		Usage:   "warpcast trending [flags]",
		Flags:   func() *pflag.FlagSet { return options.flags("trending") },
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "warpcast trending [flags]"); err != nil {
				return err
			}
			return a.listPosts(&options, "Trending casts on Warpcast:",
				func(client *warpcast.Client) *warpcast.PostIterator {
					return client.Trending(options.Limit)
				})
		},
	}
}

func (a *app) channelCastsCommand() *cli.Command {
	var options listingOptions
	const usage = "warpcast channel-casts <channel-id> [flags]"

	return &cli.Command{
		Name:    "channel-casts",
		Summary: "List recent casts in a channel",
		Usage:   usage,
		Flags:   func() *pflag.FlagSet { return options.flags("channel-casts") },
		Run: func(args []string) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}
			channelID := strings.TrimPrefix(args[0], "/")
			return a.listPosts(&options, fmt.Sprintf("Latest casts in /%s:", channelID),
				func(client *warpcast.Client) *warpcast.PostIterator {
					return client.ChannelPosts(channelID, options.Limit)
				})
		},
	}
}
