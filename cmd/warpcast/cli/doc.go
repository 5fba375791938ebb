// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the warpcast binary: a
// tree of [Command] values dispatched by name, pflag-based flag
// parsing with typo suggestions, structured help output, --json
// output support, and [ExitError] for handled non-zero exits.
package cli
