// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render formats posts and channels as terminal text.
//
// The layout of a post is:
//
//	@username (Display Name) - 2026-03-01 12:00 UTC
//	body text, word-wrapped to the configured width
//
//	12 likes · 3 reposts · 4 replies
//	Cast ID: 0x...
//	---
//
// Colors follow the writer's capabilities: when the output is not a
// terminal, or NO_COLOR is set, the text is plain ASCII with no escape
// sequences.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

// Separator ends every rendered post and channel.
const Separator = "---"

// Theme is the palette used for styled output, in ANSI 256-color codes.
type Theme struct {
	Username    lipgloss.Color
	DisplayName lipgloss.Color
	Faint       lipgloss.Color
	Metric      lipgloss.Color
	Heading     lipgloss.Color
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	Username:    lipgloss.Color("141"),
	DisplayName: lipgloss.Color("252"),
	Faint:       lipgloss.Color("243"),
	Metric:      lipgloss.Color("114"),
	Heading:     lipgloss.Color("75"),
}

// Options configures a Renderer. The zero value renders unbounded
// lines in local time with DefaultTheme and a detected color profile.
type Options struct {
	// Width wraps bodies and truncates header lines to this many
	// cells. Zero disables wrapping.
	Width int

	// Location is the time zone for timestamps. Defaults to
	// time.Local.
	Location *time.Location

	// Theme overrides DefaultTheme.
	Theme *Theme

	// Profile forces a color profile instead of detecting one from
	// the writer.
	Profile *termenv.Profile
}

// Renderer formats domain values for one output stream.
type Renderer struct {
	width    int
	location *time.Location

	username    lipgloss.Style
	displayName lipgloss.Style
	faint       lipgloss.Style
	metric      lipgloss.Style
	heading     lipgloss.Style
}

// DetectProfile returns the color profile for w: Ascii when NO_COLOR is
// set or w is not a terminal, otherwise what the environment supports.
func DetectProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// New returns a Renderer whose styles match the capabilities of w.
func New(w io.Writer, options Options) *Renderer {
	profile := DetectProfile(w)
	if options.Profile != nil {
		profile = *options.Profile
	}
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	location := options.Location
	if location == nil {
		location = time.Local
	}

	// SetColorProfile is required: lipgloss re-detects from the
	// environment unless the profile is set explicitly.
	lip := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)

	return &Renderer{
		width:       options.Width,
		location:    location,
		username:    lip.NewStyle().Foreground(theme.Username).Bold(true),
		displayName: lip.NewStyle().Foreground(theme.DisplayName),
		faint:       lip.NewStyle().Foreground(theme.Faint),
		metric:      lip.NewStyle().Foreground(theme.Metric),
		heading:     lip.NewStyle().Foreground(theme.Heading).Bold(true),
	}
}

// Post renders a single post, ending with the separator line.
func (r *Renderer) Post(post warpcast.Post) string {
	var builder strings.Builder

	header := fmt.Sprintf("%s %s %s",
		r.username.Render("@"+post.Author.Username),
		r.displayName.Render("("+post.Author.DisplayName+")"),
		r.faint.Render("- "+r.timestamp(post.CreatedAt)),
	)
	builder.WriteString(r.truncate(header))
	builder.WriteByte('\n')
	builder.WriteString(r.wrap(post.Body))
	builder.WriteString("\n\n")

	metrics := fmt.Sprintf("%s · %s · %s",
		plural(post.Metrics.Likes, "like"),
		plural(post.Metrics.Reposts, "repost"),
		plural(post.Metrics.Replies, "reply"),
	)
	builder.WriteString(r.metric.Render(r.wrap(metrics)))
	builder.WriteByte('\n')
	builder.WriteString(r.faint.Render("Cast ID: " + post.ID))
	builder.WriteByte('\n')
	builder.WriteString(Separator)
	builder.WriteByte('\n')
	return builder.String()
}

// Posts renders a heading followed by each post. An empty list renders
// the heading and a "no casts" line.
func (r *Renderer) Posts(heading string, posts []warpcast.Post) string {
	var builder strings.Builder
	builder.WriteString(r.heading.Render(heading))
	builder.WriteString("\n\n")
	if len(posts) == 0 {
		builder.WriteString(r.faint.Render("No casts found."))
		builder.WriteByte('\n')
		return builder.String()
	}
	for index, post := range posts {
		if index > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(r.Post(post))
	}
	return builder.String()
}

// PostCreated renders the confirmation shown after publishing.
func (r *Renderer) PostCreated(post warpcast.Post) string {
	return r.heading.Render("Cast posted successfully!") + "\n\n" + r.Post(post)
}

// Channel renders a single channel, ending with the separator line.
func (r *Renderer) Channel(channel warpcast.Channel) string {
	var builder strings.Builder

	header := fmt.Sprintf("%s %s",
		r.username.Render(channel.Name),
		r.faint.Render("("+channel.ID+")"),
	)
	builder.WriteString(r.truncate(header))
	builder.WriteByte('\n')
	builder.WriteString(r.metric.Render(fmt.Sprintf("%s · %s",
		plural(channel.FollowerCount, "follower"),
		plural(channel.MemberCount, "member"),
	)))
	builder.WriteByte('\n')
	if channel.Description != "" {
		builder.WriteString(r.wrap(channel.Description))
		builder.WriteByte('\n')
	}
	if channel.URL != "" {
		builder.WriteString(r.faint.Render(channel.URL))
		builder.WriteByte('\n')
	}
	if channel.PinnedPostID != "" {
		builder.WriteString(r.faint.Render("Pinned: " + channel.PinnedPostID))
		builder.WriteByte('\n')
	}
	builder.WriteString(Separator)
	builder.WriteByte('\n')
	return builder.String()
}

// Channels renders a heading followed by each channel.
func (r *Renderer) Channels(heading string, channels []warpcast.Channel) string {
	var builder strings.Builder
	builder.WriteString(r.heading.Render(heading))
	builder.WriteString("\n\n")
	if len(channels) == 0 {
		builder.WriteString(r.faint.Render("No channels found."))
		builder.WriteByte('\n')
		return builder.String()
	}
	for index, channel := range channels {
		if index > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(r.Channel(channel))
	}
	return builder.String()
}

func (r *Renderer) timestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return t.In(r.location).Format("2006-01-02 15:04 MST")
}

func (r *Renderer) wrap(text string) string {
	if r.width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, r.width, "")
}

func (r *Renderer) truncate(line string) string {
	if r.width <= 0 || ansi.StringWidth(line) <= r.width {
		return line
	}
	return ansi.Truncate(line, r.width, "…")
}

// plural formats a count with its noun, adding "s" (or "ies" for
// nouns ending in "y") unless count is exactly one.
func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", count, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
