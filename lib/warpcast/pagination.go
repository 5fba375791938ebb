// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"context"
)

// PostIterator lazily fetches successive pages of a content listing,
// threading each page's cursor into the next request. Returns nil, nil
// from Next when the listing is exhausted.
//
// The iterator is not safe for concurrent use.
type PostIterator struct {
	fetch  func(ctx context.Context, page PageRequest) (*Page[Post], error)
	limit  int
	cursor string
	done   bool

	// seen holds every cursor already sent, so a server that cycles
	// through cursors cannot loop the iterator.
	seen map[string]struct{}
}

// UserPosts iterates over a user's casts, limit per page.
func (client *Client) UserPosts(username string, limit int) *PostIterator {
	return newPostIterator(limit, func(ctx context.Context, page PageRequest) (*Page[Post], error) {
		return client.ListUserPosts(ctx, username, page)
	})
}

// Search iterates over casts matching query, limit per page.
func (client *Client) Search(query string, limit int) *PostIterator {
	return newPostIterator(limit, func(ctx context.Context, page PageRequest) (*Page[Post], error) {
		return client.SearchPosts(ctx, query, page)
	})
}

// Trending iterates over trending casts, limit per page.
func (client *Client) Trending(limit int) *PostIterator {
	return newPostIterator(limit, client.ListTrendingPosts)
}

// ChannelPosts iterates over a channel's casts, limit per page.
func (client *Client) ChannelPosts(channelID string, limit int) *PostIterator {
	return newPostIterator(limit, func(ctx context.Context, page PageRequest) (*Page[Post], error) {
		return client.ListChannelPosts(ctx, channelID, page)
	})
}

func newPostIterator(limit int, fetch func(context.Context, PageRequest) (*Page[Post], error)) *PostIterator {
	return &PostIterator{fetch: fetch, limit: limit, seen: make(map[string]struct{})}
}

// StartAt makes the next fetch resume from cursor, a NextCursor from an
// earlier page. Returns the iterator for chaining.
func (iterator *PostIterator) StartAt(cursor string) *PostIterator {
	iterator.cursor = cursor
	return iterator
}

// Cursor returns the cursor the next fetch will send; empty before the
// first page and after the last.
func (iterator *PostIterator) Cursor() string {
	return iterator.cursor
}

// Next fetches the next page and returns its items. Returns nil, nil
// once the listing is exhausted. A NextCursor that was already sent
// earlier in the iteration ends it rather than looping.
func (iterator *PostIterator) Next(ctx context.Context) ([]Post, error) {
	if iterator.done {
		return nil, nil
	}

	page, err := iterator.fetch(ctx, PageRequest{Cursor: iterator.cursor, Limit: iterator.limit})
	if err != nil {
		return nil, err
	}

	iterator.seen[iterator.cursor] = struct{}{}
	if _, repeated := iterator.seen[page.NextCursor]; page.NextCursor == "" || repeated {
		iterator.done = true
		iterator.cursor = ""
	} else {
		iterator.cursor = page.NextCursor
	}

	items := page.Items
	if items == nil {
		items = []Post{}
	}
	return items, nil
}

// Collect fetches pages until the listing is exhausted or maximum items
// have been gathered, and returns at most maximum items. A maximum of
// zero or less collects everything. If any page fails, Collect returns
// the error and no items.
func (iterator *PostIterator) Collect(ctx context.Context, maximum int) ([]Post, error) {
	var all []Post
	for maximum <= 0 || len(all) < maximum {
		items, err := iterator.Next(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			break
		}
		all = append(all, items...)
	}
	if maximum > 0 && len(all) > maximum {
		all = all[:maximum]
	}
	return all, nil
}
