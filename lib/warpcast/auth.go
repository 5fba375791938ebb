// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"github.com/bureau-foundation/warpcast/lib/appkey"
	"github.com/bureau-foundation/warpcast/lib/clock"
)

// authenticator produces the Authorization header for one request.
// Implementations are called once per authenticated request.
type authenticator interface {
	authorizationHeader() (string, error)

	// identity is a loggable description of the credential, never the
	// credential itself.
	identity() string
}

// appKeyAuth mints a fresh signed token for every request.
type appKeyAuth struct {
	keys   *appkey.KeyMaterial
	issuer *appkey.Issuer
}

func newAppKeyAuth(keys *appkey.KeyMaterial, c clock.Clock) *appKeyAuth {
	return &appKeyAuth{keys: keys, issuer: appkey.NewIssuer(c)}
}

func (auth *appKeyAuth) authorizationHeader() (string, error) {
	token, err := auth.issuer.Issue(auth.keys)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

func (auth *appKeyAuth) identity() string {
	return "app_key:" + auth.keys.Fingerprint()
}

// staticTokenAuth sends a caller-supplied bearer token.
type staticTokenAuth struct {
	token string
}

func (auth *staticTokenAuth) authorizationHeader() (string, error) {
	return "Bearer " + auth.token, nil
}

func (auth *staticTokenAuth) identity() string {
	return "static_token"
}

// readOnlyAuth rejects every authenticated request.
type readOnlyAuth struct{}

func (readOnlyAuth) authorizationHeader() (string, error) {
	return "", &appkey.ConfigError{
		Field:  "key material",
		Reason: "not configured; set an app key or API token to use write operations",
	}
}

func (readOnlyAuth) identity() string {
	return "none"
}
