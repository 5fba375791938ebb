// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/warpcast/lib/appkey"
	"github.com/bureau-foundation/warpcast/lib/netutil"
	"github.com/bureau-foundation/warpcast/lib/secret"
	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

// ClientConfig validates c and builds the matching warpcast.Config.
// When app key auth is configured, the returned KeyMaterial is owned by
// the caller, who closes it once the client is no longer used.
func (c *Config) ClientConfig(logger *slog.Logger) (warpcast.Config, error) {
	if err := c.Validate(); err != nil {
		return warpcast.Config{}, err
	}

	overflow, _ := c.Posting.TextOverflow()
	timeout, _ := c.API.timeout()

	var transport http.RoundTripper = http.DefaultTransport
	if c.API.Compression {
		transport = netutil.CompressedTransport(transport)
	}

	clientConfig := warpcast.Config{
		BaseURL:      c.API.BaseURL,
		Token:        c.Auth.Token,
		TextOverflow: overflow,
		HTTPClient:   &http.Client{Transport: transport, Timeout: timeout},
		Logger:       logger,
	}

	if c.Auth.hasAppKey() {
		keys, err := c.Auth.KeyMaterial()
		if err != nil {
			return warpcast.Config{}, err
		}
		clientConfig.KeyMaterial = keys
	}
	return clientConfig, nil
}

// KeyMaterial parses the configured app key. The private seed is read
// from PrivateKeyFile when set, otherwise decoded from PrivateKey.
func (a AuthConfig) KeyMaterial() (*appkey.KeyMaterial, error) {
	if a.PrivateKeyFile == "" {
		return appkey.ParseKeyMaterial(a.AccountID, a.PublicKey, a.PrivateKey)
	}

	publicKey, err := appkey.ParsePublicKey(a.PublicKey)
	if err != nil {
		return nil, err
	}

	encoded, err := secret.ReadFromPath(a.PrivateKeyFile)
	if err != nil {
		return nil, &appkey.ConfigError{
			Field:  "private key",
			Reason: fmt.Sprintf("reading %s: %v", a.PrivateKeyFile, err),
		}
	}
	defer encoded.Close()

	seed, err := encoded.DecodeHex()
	if err != nil {
		return nil, &appkey.ConfigError{Field: "private key", Reason: "not valid hex"}
	}
	return appkey.NewKeyMaterial(a.AccountID, publicKey, seed)
}
