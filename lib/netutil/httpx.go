// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O utilities shared by the Warpcast
// client and the CLI.
//
// ReadResponse bounds successful body reads at MaxResponseSize and
// ErrorBody bounds error bodies far tighter, so a misbehaving server
// cannot exhaust memory. CompressedTransport wraps a RoundTripper with
// transparent gzip negotiation.
package netutil

import (
	"io"
	"strings"
)

// MaxResponseSize bounds JSON API response reads: 64 MB. Channel
// directory listings are the largest legitimate responses and sit well
// under a megabyte.
const MaxResponseSize int64 = 64 << 20

// maxErrorBody bounds how much of an error response is kept for
// diagnostics.
const maxErrorBody = 4 << 10

// ReadResponse reads a response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads an error response body and returns it trimmed, for
// diagnostic messages. Read errors are ignored; a partial body is
// still useful.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	return strings.TrimSpace(string(data))
}
