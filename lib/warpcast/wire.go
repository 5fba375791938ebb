// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Wire shapes of the service's JSON. These never leave the package;
// toPost and toChannel normalize them into the exported types.

type wireCast struct {
	Hash       string            `json:"hash"`
	ThreadHash string            `json:"threadHash"`
	ParentHash string            `json:"parentHash"`
	Author     wireAuthor        `json:"author"`
	Text       string            `json:"text"`
	Timestamp  json.RawMessage   `json:"timestamp"`
	Reactions  wireReactions     `json:"reactions"`
	Embeds     []json.RawMessage `json:"embeds"`
}

type wireAuthor struct {
	FID         uint64 `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	PFP         struct {
		URL string `json:"url"`
	} `json:"pfp"`
	Profile struct {
		Bio json.RawMessage `json:"bio"`
	} `json:"profile"`
}

type wireReactions struct {
	Likes   int `json:"likes"`
	Recasts int `json:"recasts"`
	Replies int `json:"replies"`
}

type wireChannel struct {
	ID             string        `json:"id"`
	URL            string        `json:"url"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"imageUrl"`
	HeaderImageURL string        `json:"headerImageUrl"`
	LeadFID        uint64        `json:"leadFid"`
	ModeratorFIDs  []uint64      `json:"moderatorFids"`
	CreatedAt      int64         `json:"createdAt"`
	FollowerCount  int           `json:"followerCount"`
	MemberCount    int           `json:"memberCount"`
	PinnedCastHash string        `json:"pinnedCastHash"`
	PublicCasting  bool          `json:"publicCasting"`
	ExternalLink   *ExternalLink `json:"externalLink"`
}

type wireCursor struct {
	Cursor string `json:"cursor"`
}

// castsEnvelope is the response of every content listing. The cursor
// normally sits in result.next; a top-level next is also accepted.
type castsEnvelope struct {
	Result *struct {
		Casts []wireCast  `json:"casts"`
		Next  *wireCursor `json:"next"`
	} `json:"result"`
	Next *wireCursor `json:"next"`
}

func (e *castsEnvelope) nextCursor() string {
	if e.Result != nil && e.Result.Next != nil && e.Result.Next.Cursor != "" {
		return e.Result.Next.Cursor
	}
	if e.Next != nil {
		return e.Next.Cursor
	}
	return ""
}

type castEnvelope struct {
	Result struct {
		Cast *wireCast `json:"cast"`
	} `json:"result"`
}

type channelEnvelope struct {
	Result struct {
		Channel *wireChannel `json:"channel"`
	} `json:"result"`
}

type channelsEnvelope struct {
	Result *struct {
		Channels []wireChannel `json:"channels"`
	} `json:"result"`
}

type successEnvelope struct {
	Success bool `json:"success"`
}

type wireErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

func toPost(cast *wireCast) Post {
	post := Post{
		ID:       cast.Hash,
		ThreadID: cast.ThreadHash,
		ParentID: cast.ParentHash,
		Author: Author{
			AccountID:   cast.Author.FID,
			Username:    cast.Author.Username,
			DisplayName: cast.Author.DisplayName,
			AvatarURL:   cast.Author.PFP.URL,
			Bio:         parseBio(cast.Author.Profile.Bio),
		},
		Body:      cast.Text,
		CreatedAt: parseTimestamp(cast.Timestamp),
		Metrics: Metrics{
			Likes:   max(cast.Reactions.Likes, 0),
			Reposts: max(cast.Reactions.Recasts, 0),
			Replies: max(cast.Reactions.Replies, 0),
		},
	}
	if len(cast.Embeds) > 0 {
		post.Embeds = cast.Embeds
	}
	return post
}

func toPosts(casts []wireCast) []Post {
	posts := make([]Post, len(casts))
	for index := range casts {
		posts[index] = toPost(&casts[index])
	}
	return posts
}

func toChannel(channel *wireChannel) Channel {
	moderators := channel.ModeratorFIDs
	if moderators == nil {
		moderators = []uint64{}
	}
	var createdAt time.Time
	if channel.CreatedAt > 0 {
		createdAt = time.Unix(channel.CreatedAt, 0).UTC()
	}
	return Channel{
		ID:                   channel.ID,
		URL:                  channel.URL,
		Name:                 channel.Name,
		Description:          channel.Description,
		ImageURL:             channel.ImageURL,
		HeaderImageURL:       channel.HeaderImageURL,
		LeadAccountID:        channel.LeadFID,
		ModeratorAccountIDs:  moderators,
		CreatedAt:            createdAt,
		FollowerCount:        max(channel.FollowerCount, 0),
		MemberCount:          max(channel.MemberCount, 0),
		PublicPostingEnabled: channel.PublicCasting,
		PinnedPostID:         channel.PinnedCastHash,
		ExternalLink:         channel.ExternalLink,
	}
}

// parseTimestamp accepts epoch milliseconds (as a number or a numeric
// string) or an RFC 3339 string. Anything else yields the zero time.
func parseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	var text string
	if raw[0] == '"' {
		if json.Unmarshal(raw, &text) != nil {
			return time.Time{}
		}
		text = strings.TrimSpace(text)
		if parsed, err := time.Parse(time.RFC3339Nano, text); err == nil {
			return parsed.UTC()
		}
	} else {
		text = string(raw)
	}

	milliseconds, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		floating, floatErr := strconv.ParseFloat(text, 64)
		if floatErr != nil {
			return time.Time{}
		}
		milliseconds = int64(floating)
	}
	return time.UnixMilli(milliseconds).UTC()
}

// parseBio accepts either a plain string or an object with a text
// field.
func parseBio(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}
	var object struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(raw, &object) == nil {
		return object.Text
	}
	return ""
}

// errorMessage extracts the service's message from an error body,
// falling back to the trimmed raw body.
func errorMessage(body []byte) string {
	var wire wireErrorBody
	if json.Unmarshal(body, &wire) == nil {
		for _, entry := range wire.Errors {
			if entry.Message != "" {
				return entry.Message
			}
		}
		if wire.Message != "" {
			return wire.Message
		}
	}
	return strings.TrimSpace(string(body))
}
