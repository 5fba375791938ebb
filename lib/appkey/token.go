// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package appkey

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bureau-foundation/warpcast/lib/clock"
)

// TokenLifetime is how long a minted token remains valid.
const TokenLifetime = 300 * time.Second

// TokenType is the header type value for app key tokens.
const TokenType = "app_key"

// Header is the first segment of a token.
type Header struct {
	AccountID uint64 `json:"fid"`
	Type      string `json:"type"`
	Key       string `json:"key"`
}

// Payload is the second segment of a token.
type Payload struct {
	// ExpiresAt is a Unix timestamp (seconds) at and after which the
	// token is rejected.
	ExpiresAt int64 `json:"exp"`
}

// Expiry returns ExpiresAt as a time.
func (p *Payload) Expiry() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

// Issuer mints tokens. It holds no key state, so one Issuer serves any
// number of KeyMaterial values concurrently.
type Issuer struct {
	clock clock.Clock
}

// NewIssuer returns an Issuer reading time from c. A nil clock uses
// clock.Real().
func NewIssuer(c clock.Clock) *Issuer {
	if c == nil {
		c = clock.Real()
	}
	return &Issuer{clock: c}
}

// Issue mints a token for keys expiring TokenLifetime after the
// issuer's current time. With a fixed clock the output is
// deterministic, since Ed25519 signatures are.
func (i *Issuer) Issue(keys *KeyMaterial) (string, error) {
	if keys == nil {
		return "", &ConfigError{Field: "key material", Reason: "not configured"}
	}
	if keys.accountID == 0 {
		return "", &ConfigError{Field: "account id", Reason: "must be a positive integer"}
	}
	if len(keys.publicKey) != ed25519.PublicKeySize {
		return "", &ConfigError{Field: "public key", Reason: "wrong length"}
	}
	if keys.Closed() {
		return "", &ConfigError{Field: "private key", Reason: "key material has been closed"}
	}

	header, err := json.Marshal(Header{
		AccountID: keys.accountID,
		Type:      TokenType,
		Key:       keys.PublicKeyHex(),
	})
	if err != nil {
		return "", &SigningError{Err: fmt.Errorf("encoding header: %w", err)}
	}
	payload, err := json.Marshal(Payload{
		ExpiresAt: i.clock.Now().Add(TokenLifetime).Unix(),
	})
	if err != nil {
		return "", &SigningError{Err: fmt.Errorf("encoding payload: %w", err)}
	}

	signingInput := encodeSegment(header) + "." + encodeSegment(payload)
	signature := keys.sign([]byte(signingInput))
	if !ed25519.Verify(keys.publicKey, []byte(signingInput), signature) {
		return "", &SigningError{Err: errors.New("signature does not verify against the public key")}
	}

	return signingInput + "." + encodeSegment(signature), nil
}

// Decode splits and decodes a token without checking its signature
// or expiry.
func Decode(token string) (*Header, *Payload, error) {
	header, payload, _, _, err := split(token)
	return header, payload, err
}

// Verify is VerifyAt with the current wall-clock time.
func Verify(publicKey ed25519.PublicKey, token string) (*Header, *Payload, error) {
	return VerifyAt(publicKey, token, time.Now())
}

// VerifyAt checks the token type, that the header key is publicKey,
// the signature, and expiry at now.
func VerifyAt(publicKey ed25519.PublicKey, token string, now time.Time) (*Header, *Payload, error) {
	header, payload, signingInput, signature, err := split(token)
	if err != nil {
		return nil, nil, err
	}
	if header.Type != TokenType {
		return nil, nil, fmt.Errorf("%w: got %q", ErrWrongTokenType, header.Type)
	}
	if header.Key != hex.EncodeToString(publicKey) {
		return nil, nil, ErrKeyMismatch
	}
	if len(publicKey) != ed25519.PublicKeySize || !ed25519.Verify(publicKey, []byte(signingInput), signature) {
		return nil, nil, ErrInvalidSignature
	}
	if now.Unix() >= payload.ExpiresAt {
		return nil, nil, ErrTokenExpired
	}
	return header, payload, nil
}

func split(token string) (header *Header, payload *Payload, signingInput string, signature []byte, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, nil, "", nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	header = &Header{}
	if err := decodeJSONSegment(parts[0], header); err != nil {
		return nil, nil, "", nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}
	payload = &Payload{}
	if err := decodeJSONSegment(parts[1], payload); err != nil {
		return nil, nil, "", nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	signature, err = base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, nil, "", nil, fmt.Errorf("%w: signature: %v", ErrMalformedToken, err)
	}
	return header, payload, parts[0] + "." + parts[1], signature, nil
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeJSONSegment(segment string, v any) error {
	data, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
