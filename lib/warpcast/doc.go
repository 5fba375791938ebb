// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package warpcast is a typed client for the Warpcast REST API: posting
// casts, reading user, channel, search and trending feeds, and
// following or unfollowing channels.
//
// [NewClient] validates a [Config] once. A client is configured with at
// most one authentication mode:
//
//   - KeyMaterial: every authenticated call mints a fresh app-key
//     token via [appkey.Issuer]. Tokens are never cached.
//   - Token: a static bearer token supplied by the caller.
//
// With neither, the client is read-only and authenticated operations
// fail with an [*appkey.ConfigError] before any request is sent.
//
// Every failure is typed. Transport failures, non-2xx statuses and
// undecodable bodies are [*APIError]. Absent users and channels are
// [*NotFoundError], which unwraps to the underlying *APIError. Inputs
// rejected before any request is sent are [*ValidationError].
//
// Content listings return a [Page] whose NextCursor is passed back
// verbatim in the next [PageRequest]. [PostIterator] does this
// threading for callers that want several pages.
//
// The client holds only immutable state and is safe for concurrent
// use. It imposes no timeout of its own; callers bound each call
// through its context.
package warpcast
