// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command warpcast is a command-line client for the Warpcast API:
// publishing casts, reading user, search, trending and channel
// listings, following channels, and minting app key tokens.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// Commands that print their own output (like token --verify)
		// return an ExitError with the desired exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newApp(ctx).rootCommand().Execute(args)
}
