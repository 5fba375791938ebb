// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package appkey

import (
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/warpcast/lib/secret"
)

// KeyMaterial is a validated app key: the account it is registered to,
// its public key, and the private seed in protected memory. It is
// immutable after ParseKeyMaterial returns and safe for concurrent use
// until Close.
type KeyMaterial struct {
	accountID uint64
	publicKey ed25519.PublicKey
	seed      *secret.Buffer
}

// ParseKeyMaterial validates and assembles key material from hex
// strings. Either key may carry a "0x" prefix. The returned value owns
// a secret.Buffer; call Close when done.
func ParseKeyMaterial(accountID uint64, publicHex, privateHex string) (*KeyMaterial, error) {
	if accountID == 0 {
		return nil, &ConfigError{Field: "account id", Reason: "must be a positive integer"}
	}
	publicKey, err := ParsePublicKey(publicHex)
	if err != nil {
		return nil, err
	}

	privateHex = strings.TrimSpace(privateHex)
	if privateHex == "" {
		return nil, &ConfigError{Field: "private key", Reason: "missing"}
	}
	seed, err := secret.DecodeHex(privateHex)
	if err != nil {
		return nil, &ConfigError{Field: "private key", Reason: "not valid hex"}
	}
	return newKeyMaterial(accountID, publicKey, seed)
}

// NewKeyMaterial assembles key material from an already-decoded public
// key and a seed buffer. On success the KeyMaterial takes ownership of
// seed; on failure seed is closed.
func NewKeyMaterial(accountID uint64, publicKey ed25519.PublicKey, seed *secret.Buffer) (*KeyMaterial, error) {
	if seed == nil {
		return nil, &ConfigError{Field: "private key", Reason: "missing"}
	}
	if accountID == 0 {
		seed.Close()
		return nil, &ConfigError{Field: "account id", Reason: "must be a positive integer"}
	}
	if err := validatePoint(publicKey); err != nil {
		seed.Close()
		return nil, err
	}
	return newKeyMaterial(accountID, append(ed25519.PublicKey(nil), publicKey...), seed)
}

func newKeyMaterial(accountID uint64, publicKey ed25519.PublicKey, seed *secret.Buffer) (*KeyMaterial, error) {
	if seed.Len() != ed25519.SeedSize {
		seed.Close()
		return nil, &ConfigError{
			Field:  "private key",
			Reason: fmt.Sprintf("must be %d bytes, got %d", ed25519.SeedSize, seed.Len()),
		}
	}

	derived := ed25519.NewKeyFromSeed(seed.Bytes())
	matches := subtle.ConstantTimeCompare(derived[ed25519.SeedSize:], publicKey) == 1
	secret.Zero(derived)
	if !matches {
		seed.Close()
		return nil, &ConfigError{Field: "public key", Reason: "does not match the private key"}
	}

	return &KeyMaterial{accountID: accountID, publicKey: publicKey, seed: seed}, nil
}

// ParsePublicKey decodes a hex public key (optional "0x" prefix) and
// checks that it is a valid Ed25519 point.
func ParsePublicKey(publicHex string) (ed25519.PublicKey, error) {
	publicHex = strings.TrimSpace(publicHex)
	publicHex = strings.TrimPrefix(strings.TrimPrefix(publicHex, "0x"), "0X")
	if publicHex == "" {
		return nil, &ConfigError{Field: "public key", Reason: "missing"}
	}
	decoded, err := hex.DecodeString(publicHex)
	if err != nil {
		return nil, &ConfigError{Field: "public key", Reason: "not valid hex"}
	}
	if err := validatePoint(decoded); err != nil {
		return nil, err
	}
	return ed25519.PublicKey(decoded), nil
}

func validatePoint(publicKey []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return &ConfigError{
			Field:  "public key",
			Reason: fmt.Sprintf("must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey)),
		}
	}
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return &ConfigError{Field: "public key", Reason: "not a valid Ed25519 point"}
	}
	return nil
}

// AccountID returns the Farcaster account id (fid) the key belongs to.
func (k *KeyMaterial) AccountID() uint64 {
	return k.accountID
}

// PublicKey returns a copy of the public key.
func (k *KeyMaterial) PublicKey() ed25519.PublicKey {
	return append(ed25519.PublicKey(nil), k.publicKey...)
}

// PublicKeyHex returns the public key as lowercase hex with no prefix,
// the form carried in token headers.
func (k *KeyMaterial) PublicKeyHex() string {
	return hex.EncodeToString(k.publicKey)
}

// Fingerprint returns a short BLAKE3 digest of the public key, safe to
// log and display.
func (k *KeyMaterial) Fingerprint() string {
	return Fingerprint(k.publicKey)
}

// Fingerprint returns the first 8 bytes of the BLAKE3-256 digest of
// publicKey, hex-encoded.
func Fingerprint(publicKey ed25519.PublicKey) string {
	digest := blake3.Sum256(publicKey)
	return hex.EncodeToString(digest[:8])
}

// Closed reports whether Close has been called.
func (k *KeyMaterial) Closed() bool {
	return k.seed == nil || k.seed.Closed()
}

// Close zeroes and releases the private seed. Close is idempotent.
func (k *KeyMaterial) Close() error {
	if k.seed == nil {
		return nil
	}
	return k.seed.Close()
}

// sign expands the seed into a transient private key, signs message,
// and zeroes the expanded key.
func (k *KeyMaterial) sign(message []byte) []byte {
	privateKey := ed25519.NewKeyFromSeed(k.seed.Bytes())
	defer secret.Zero(privateKey)
	return ed25519.Sign(privateKey, message)
}
