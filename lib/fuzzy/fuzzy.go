// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy ranks candidate strings against a pattern with fzf's
// matching algorithm, so `warpcast channels --filter` behaves the way
// fzf users expect.
package fuzzy

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initOnce sync.Once

// Match is one candidate that matched the pattern.
type Match struct {
	// Index is the candidate's position in the input slice.
	Index int

	// Score is fzf's match score; higher is better.
	Score int

	// Positions are the matched rune offsets within the candidate.
	Positions []int
}

// Rank returns the candidates matching pattern, best first. Ties keep
// input order. Matching is case-insensitive unless pattern contains an
// uppercase letter (fzf's smart case). An empty pattern matches every
// candidate with score zero.
func Rank(pattern string, candidates []string) []Match {
	initOnce.Do(func() { algo.Init("default") })

	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		matches := make([]Match, len(candidates))
		for index := range candidates {
			matches[index] = Match{Index: index}
		}
		return matches
	}

	caseSensitive := strings.ToLower(pattern) != pattern
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
	}
	runes := []rune(pattern)
	slab := util.MakeSlab(16*1024, 2048)

	var matches []Match
	for index, candidate := range candidates {
		chars := util.ToChars([]byte(candidate))
		result, positions := algo.FuzzyMatchV2(caseSensitive, true, true, &chars, runes, true, slab)
		if result.Start < 0 {
			continue
		}
		match := Match{Index: index, Score: result.Score}
		if positions != nil {
			match.Positions = append([]int(nil), (*positions)...)
			sort.Ints(match.Positions)
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
