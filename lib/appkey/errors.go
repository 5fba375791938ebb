// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package appkey

import (
	"errors"
	"fmt"
)

// ConfigError reports unusable key material: a missing or malformed
// field, a key that is not on the curve, or a public key that does not
// belong to the private seed. Field names the offending input.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("appkey: invalid %s: %s", e.Field, e.Reason)
}

// SigningError reports a failure while producing a token from valid
// key material.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("appkey: signing token: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var configError *ConfigError
	return errors.As(err, &configError)
}

// Errors returned by Decode and VerifyAt.
var (
	ErrMalformedToken   = errors.New("appkey: malformed token")
	ErrWrongTokenType   = errors.New("appkey: token type is not app_key")
	ErrKeyMismatch      = errors.New("appkey: token key does not match public key")
	ErrInvalidSignature = errors.New("appkey: invalid Ed25519 signature")
	ErrTokenExpired     = errors.New("appkey: token has expired")
)
