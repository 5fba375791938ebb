// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package appkey mints the short-lived bearer tokens that authenticate
// write operations against the Warpcast API.
//
// An app key is an Ed25519 key pair registered to a Farcaster account
// (identified by its numeric fid). [ParseKeyMaterial] validates the
// pair once: the public key must decode to a point on the curve, and
// the public key derived from the private seed must match the one
// supplied. The seed lives in a [secret.Buffer] for its entire
// lifetime.
//
// A token is three base64url segments without padding:
//
//	base64url(header) "." base64url(payload) "." base64url(signature)
//
// The header is {"fid":N,"type":"app_key","key":"<hex public key>"},
// the payload is {"exp":<unix seconds>}, and the signature is Ed25519
// over "<header segment>.<payload segment>". [Issuer] mints one token
// per call with a lifetime of [TokenLifetime] measured from its
// injected clock; nothing is cached.
//
// [Decode] and [VerifyAt] parse a token back for inspection and
// testing. The service performs its own verification; clients never
// need to verify their own tokens.
package appkey
