// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/bureau-foundation/warpcast/lib/appkey"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "status and message",
			err:  &APIError{Operation: "searchPosts", StatusCode: 500, Message: "boom"},
			want: "warpcast: searchPosts: HTTP 500: boom",
		},
		{
			name: "status without message",
			err:  &APIError{Operation: "getChannel", StatusCode: 404},
			want: "warpcast: getChannel: HTTP 404: Not Found",
		},
		{
			name: "transport failure",
			err:  &APIError{Operation: "createPost", Message: "request failed", Err: io.ErrUnexpectedEOF},
			want: "warpcast: createPost: request failed: unexpected EOF",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.want {
				t.Errorf("Error() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestNotFoundError_Unwrap(t *testing.T) {
	apiError := &APIError{Operation: "getChannel", StatusCode: 404}
	err := fmt.Errorf("wrapped: %w", &NotFoundError{Resource: "channel", Identifier: "x", API: apiError})

	if !IsNotFound(err) {
		t.Error("IsNotFound = false")
	}
	var unwrapped *APIError
	if !errors.As(err, &unwrapped) || unwrapped != apiError {
		t.Error("errors.As did not reach the underlying *APIError")
	}
	if got := err.Error(); got != `wrapped: warpcast: getChannel: channel "x" not found` {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	validation := &ValidationError{Operation: "listChannels", Field: "limit", Reason: "must be between 1 and 50, got 0"}
	if !IsValidation(validation) || IsNotFound(validation) || IsAuthConfiguration(validation) {
		t.Error("ValidationError misclassified")
	}
	if got := validation.Error(); got != "warpcast: listChannels: invalid limit: must be between 1 and 50, got 0" {
		t.Errorf("Error() = %q", got)
	}

	config := fmt.Errorf("context: %w", &appkey.ConfigError{Field: "private key", Reason: "missing"})
	if !IsAuthConfiguration(config) || IsValidation(config) {
		t.Error("ConfigError misclassified")
	}

	if notFound(io.EOF, "user", "x") != io.EOF {
		t.Error("notFound rewrote a non-API error")
	}
	if IsNotFound(notFound(&APIError{StatusCode: 500}, "user", "x")) {
		t.Error("notFound converted a 500")
	}
}
