// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"
)

// Operation names carried in errors.
const (
	opCreatePost        = "createPost"
	opListUserPosts     = "listUserPosts"
	opSearchPosts       = "searchPosts"
	opListTrendingPosts = "listTrendingPosts"
	opListChannels      = "listChannels"
	opGetChannel        = "getChannel"
	opListChannelPosts  = "listChannelPosts"
	opFollowChannel     = "followChannel"
	opUnfollowChannel   = "unfollowChannel"
)

// CreatePost publishes a cast. Text longer than MaxPostLength code
// points is truncated, or rejected when the client is configured with
// OverflowReject. Requires authentication.
func (client *Client) CreatePost(ctx context.Context, text string) (*Post, error) {
	if utf8.RuneCountInString(text) > MaxPostLength {
		if client.textOverflow == OverflowReject {
			return nil, &ValidationError{
				Operation: opCreatePost,
				Field:     "text",
				Reason:    fmt.Sprintf("exceeds %d characters", MaxPostLength),
			}
		}
		text = truncateRunes(text, MaxPostLength)
	}

	var envelope castEnvelope
	err := client.authenticatedSend(ctx, opCreatePost, http.MethodPost, "/v2/casts",
		map[string]string{"text": text}, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.Result.Cast == nil {
		return nil, &APIError{
			Operation:  opCreatePost,
			StatusCode: http.StatusOK,
			Message:    "response is missing result.cast",
		}
	}
	post := toPost(envelope.Result.Cast)
	return &post, nil
}

// ListUserPosts returns a page of a user's most recent casts. Returns a
// *NotFoundError if the username does not exist.
func (client *Client) ListUserPosts(ctx context.Context, username string, page PageRequest) (*Page[Post], error) {
	if err := validateRequired(opListUserPosts, "username", username); err != nil {
		return nil, err
	}
	if err := validateLimit(opListUserPosts, page.Limit, MaxContentPageLimit); err != nil {
		return nil, err
	}

	query := pageQuery(page)
	query.Set("username", username)
	return client.listPosts(ctx, opListUserPosts, "/v2/user-casts", query, "user", username)
}

// SearchPosts returns a page of casts matching query.
func (client *Client) SearchPosts(ctx context.Context, query string, page PageRequest) (*Page[Post], error) {
	if err := validateRequired(opSearchPosts, "query", query); err != nil {
		return nil, err
	}
	if err := validateLimit(opSearchPosts, page.Limit, MaxContentPageLimit); err != nil {
		return nil, err
	}

	values := pageQuery(page)
	values.Set("q", query)
	return client.listPosts(ctx, opSearchPosts, "/v2/search", values, "", "")
}

// ListTrendingPosts returns a page of currently trending casts.
func (client *Client) ListTrendingPosts(ctx context.Context, page PageRequest) (*Page[Post], error) {
	if err := validateLimit(opListTrendingPosts, page.Limit, MaxContentPageLimit); err != nil {
		return nil, err
	}
	return client.listPosts(ctx, opListTrendingPosts, "/v2/trending-casts", pageQuery(page), "", "")
}

// ListChannelPosts returns a page of a channel's casts. Returns a
// *NotFoundError if the channel does not exist.
func (client *Client) ListChannelPosts(ctx context.Context, channelID string, page PageRequest) (*Page[Post], error) {
	if err := validateRequired(opListChannelPosts, "channel id", channelID); err != nil {
		return nil, err
	}
	if err := validateLimit(opListChannelPosts, page.Limit, MaxContentPageLimit); err != nil {
		return nil, err
	}

	query := pageQuery(page)
	query.Set("channelId", channelID)
	return client.listPosts(ctx, opListChannelPosts, "/v2/channel-casts", query, "channel", channelID)
}

// listPosts fetches one content page. When resource is non-empty, a 404
// or a result without a casts array becomes a *NotFoundError for that
// resource.
func (client *Client) listPosts(ctx context.Context, operation, path string, query url.Values, resource, identifier string) (*Page[Post], error) {
	var envelope castsEnvelope
	if err := client.get(ctx, operation, path, query, &envelope); err != nil {
		if resource != "" {
			return nil, notFound(err, resource, identifier)
		}
		return nil, err
	}

	if envelope.Result == nil {
		return nil, &APIError{
			Operation:  operation,
			StatusCode: http.StatusOK,
			Message:    "response is missing result",
		}
	}
	if envelope.Result.Casts == nil && resource != "" {
		return nil, &NotFoundError{
			Resource:   resource,
			Identifier: identifier,
			API: &APIError{
				Operation:  operation,
				StatusCode: http.StatusOK,
				Message:    "response has no casts",
			},
		}
	}

	return &Page[Post]{
		Items:      toPosts(envelope.Result.Casts),
		NextCursor: envelope.nextCursor(),
	}, nil
}

// truncateRunes returns the first limit code points of text.
func truncateRunes(text string, limit int) string {
	count := 0
	for index := range text {
		if count == limit {
			return text[:index]
		}
		count++
	}
	return text
}
