// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/warpcast/lib/appkey"
)

// APIError is any failure talking to the service: a transport error,
// a non-2xx response, or a response body that could not be decoded.
// StatusCode is zero when no response was received.
type APIError struct {
	// Operation is the client operation that failed, e.g. "getChannel".
	Operation string

	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Message is the service's error message when one was present,
	// otherwise a description of the failure.
	Message string

	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *APIError) Error() string {
	message := e.Message
	if message == "" && e.StatusCode != 0 {
		message = http.StatusText(e.StatusCode)
	}
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("warpcast: %s: HTTP %d: %s: %v", e.Operation, e.StatusCode, message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("warpcast: %s: HTTP %d: %s", e.Operation, e.StatusCode, message)
	case e.Err != nil:
		return fmt.Sprintf("warpcast: %s: %s: %v", e.Operation, message, e.Err)
	default:
		return fmt.Sprintf("warpcast: %s: %s", e.Operation, message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that a user or channel does not exist, either
// through an HTTP 404 or a success response missing the entity.
type NotFoundError struct {
	// Resource is the kind of entity, "user" or "channel".
	Resource string

	// Identifier is the username or channel id that was requested.
	Identifier string

	// API is the response that indicated absence.
	API *APIError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("warpcast: %s: %s %q not found", e.API.Operation, e.Resource, e.Identifier)
}

// Unwrap returns the underlying *APIError, so errors.As matches both
// types.
func (e *NotFoundError) Unwrap() error {
	return e.API
}

// ValidationError reports an input rejected before any request was
// sent.
type ValidationError struct {
	Operation string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("warpcast: %s: invalid %s: %s", e.Operation, e.Field, e.Reason)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}

// IsAuthConfiguration reports whether err is or wraps an
// *appkey.ConfigError: key material required for the operation is
// missing or unusable.
func IsAuthConfiguration(err error) bool {
	return appkey.IsConfigError(err)
}

// notFound converts a 404 *APIError into a *NotFoundError and returns
// any other error unchanged.
func notFound(err error, resource, identifier string) error {
	var apiError *APIError
	if errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: resource, Identifier: identifier, API: apiError}
	}
	return err
}
