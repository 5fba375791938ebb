// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"encoding/json"
	"time"
)

// MaxPostLength is the longest post body the service accepts, in
// Unicode code points.
const MaxPostLength = 320

// Page size bounds for listing operations.
const (
	MaxContentPageLimit = 20
	MaxChannelLimit     = 50

	// DefaultPageLimit is the page size used by the CLI when none is
	// given.
	DefaultPageLimit = 10
)

// TextOverflow selects what CreatePost does with text longer than
// MaxPostLength.
type TextOverflow int

const (
	// OverflowTruncate keeps the first MaxPostLength code points.
	OverflowTruncate TextOverflow = iota

	// OverflowReject returns a *ValidationError.
	OverflowReject
)

func (o TextOverflow) String() string {
	switch o {
	case OverflowTruncate:
		return "truncate"
	case OverflowReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Post is a cast.
type Post struct {
	// ID is the cast hash.
	ID string `json:"id"`

	// ThreadID is the hash of the thread root, if known.
	ThreadID string `json:"thread_id,omitempty"`

	// ParentID is the hash of the cast this one replies to, if any.
	ParentID string `json:"parent_id,omitempty"`

	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Metrics   Metrics   `json:"metrics"`

	// Embeds are passed through undecoded.
	Embeds []json.RawMessage `json:"embeds,omitempty"`
}

// Author identifies a post's author.
type Author struct {
	AccountID   uint64 `json:"account_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// Metrics are a post's engagement counts. All values are non-negative.
type Metrics struct {
	Likes   int `json:"likes"`
	Reposts int `json:"reposts"`
	Replies int `json:"replies"`
}

// Channel is a topic channel.
type Channel struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`

	ImageURL       string `json:"image_url,omitempty"`
	HeaderImageURL string `json:"header_image_url,omitempty"`

	LeadAccountID       uint64   `json:"lead_account_id"`
	ModeratorAccountIDs []uint64 `json:"moderator_account_ids"`

	CreatedAt     time.Time `json:"created_at"`
	FollowerCount int       `json:"follower_count"`
	MemberCount   int       `json:"member_count"`

	PublicPostingEnabled bool   `json:"public_posting_enabled"`
	PinnedPostID         string `json:"pinned_post_id,omitempty"`

	ExternalLink *ExternalLink `json:"external_link,omitempty"`
}

// ExternalLink is a channel's promoted outside link.
type ExternalLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageRequest selects one page of a listing. Limit is required. Cursor
// is empty for the first page, otherwise the NextCursor of the previous
// page, unmodified.
type PageRequest struct {
	Cursor string
	Limit  int
}

// Page is one page of a listing. An empty NextCursor marks the last
// page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
