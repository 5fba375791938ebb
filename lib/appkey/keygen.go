// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package appkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/bureau-foundation/warpcast/lib/secret"
)

// GeneratedKey is a freshly generated key pair in the hex form accepted
// by ParseKeyMaterial. Registering the public key with an account
// happens out of band.
type GeneratedKey struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// Generate creates a new Ed25519 key pair from a 32-byte seed read
// from random. A nil random reader uses crypto/rand.
func Generate(random io.Reader) (*GeneratedKey, error) {
	if random == nil {
		random = rand.Reader
	}
	seed := make([]byte, ed25519.SeedSize)
	defer secret.Zero(seed)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, fmt.Errorf("appkey: generating key pair: %w", err)
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	defer secret.Zero(privateKey)
	return &GeneratedKey{
		PublicKey:  "0x" + hex.EncodeToString(privateKey.Public().(ed25519.PublicKey)),
		PrivateKey: "0x" + hex.EncodeToString(seed),
	}, nil
}
