// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressedTransport wraps base so requests advertise gzip support and
// compressed responses are decoded before the caller reads them. A nil
// base uses http.DefaultTransport.
func CompressedTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return gzhttp.Transport(base)
}
