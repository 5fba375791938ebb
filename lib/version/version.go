// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of the warpcast client is
// running. The linker fills in the commit and timestamp:
//
//	go build -ldflags "-X github.com/bureau-foundation/warpcast/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Development builds and test runs see "unknown" and "0.1.0-dev".
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags -X.
var (
	GitCommit = "unknown"
	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`
}

// Current returns the Build for this process.
func Current() Build {
	return Build{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: UserAgent(),
	}
}

// String formats b as "0.1.0 (abc1234-dirty, 2026-03-01T12:00:00Z)".
func (b Build) String() string {
	commit := b.Commit
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", b.Version, commit, b.BuildTime)
}

// UserAgent is the User-Agent header value sent on every API request.
func UserAgent() string {
	return "warpcast-go/" + Version
}
