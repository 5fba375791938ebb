// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package appkey

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/warpcast/lib/secret"
)

const testAccountID = 977233

// testSeed returns a fixed seed so tests are reproducible.
func testSeed() []byte {
	return bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
}

// testKeyHex returns the hex public key and hex seed for testSeed.
func testKeyHex() (string, string) {
	privateKey := ed25519.NewKeyFromSeed(testSeed())
	return hex.EncodeToString(privateKey.Public().(ed25519.PublicKey)), hex.EncodeToString(testSeed())
}

func testKeyMaterial(t *testing.T) *KeyMaterial {
	t.Helper()
	publicHex, privateHex := testKeyHex()
	keys, err := ParseKeyMaterial(testAccountID, publicHex, privateHex)
	if err != nil {
		t.Fatalf("ParseKeyMaterial: %v", err)
	}
	t.Cleanup(func() { keys.Close() })
	return keys
}

func TestParseKeyMaterial(t *testing.T) {
	publicHex, privateHex := testKeyHex()

	keys, err := ParseKeyMaterial(testAccountID, "0x"+publicHex, "0x"+privateHex)
	if err != nil {
		t.Fatalf("ParseKeyMaterial with 0x prefix: %v", err)
	}
	defer keys.Close()

	if keys.AccountID() != testAccountID {
		t.Errorf("AccountID = %d, want %d", keys.AccountID(), testAccountID)
	}
	if keys.PublicKeyHex() != publicHex {
		t.Errorf("PublicKeyHex = %q, want %q", keys.PublicKeyHex(), publicHex)
	}
	if len(keys.Fingerprint()) != 16 {
		t.Errorf("Fingerprint length = %d, want 16", len(keys.Fingerprint()))
	}
}

func TestParseKeyMaterial_Invalid(t *testing.T) {
	publicHex, privateHex := testKeyHex()
	otherPublic := hex.EncodeToString(ed25519.NewKeyFromSeed(bytes.Repeat([]byte{1}, 32)).Public().(ed25519.PublicKey))

	// A y-coordinate of 2 has no corresponding x on the curve.
	offCurve := "02" + strings.Repeat("00", 31)

	tests := []struct {
		name       string
		accountID  uint64
		publicHex  string
		privateHex string
		field      string
	}{
		{name: "zero account", accountID: 0, publicHex: publicHex, privateHex: privateHex, field: "account id"},
		{name: "missing public key", accountID: testAccountID, publicHex: "", privateHex: privateHex, field: "public key"},
		{name: "public key not hex", accountID: testAccountID, publicHex: "zz", privateHex: privateHex, field: "public key"},
		{name: "public key short", accountID: testAccountID, publicHex: "abcd", privateHex: privateHex, field: "public key"},
		{name: "public key off curve", accountID: testAccountID, publicHex: offCurve, privateHex: privateHex, field: "public key"},
		{name: "missing private key", accountID: testAccountID, publicHex: publicHex, privateHex: "", field: "private key"},
		{name: "private key not hex", accountID: testAccountID, publicHex: publicHex, privateHex: "nothex", field: "private key"},
		{name: "private key short", accountID: testAccountID, publicHex: publicHex, privateHex: "abcd", field: "private key"},
		{name: "mismatched pair", accountID: testAccountID, publicHex: otherPublic, privateHex: privateHex, field: "public key"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			keys, err := ParseKeyMaterial(test.accountID, test.publicHex, test.privateHex)
			if err == nil {
				keys.Close()
				t.Fatal("expected error")
			}
			var configError *ConfigError
			if !errors.As(err, &configError) {
				t.Fatalf("expected *ConfigError, got %T: %v", err, err)
			}
			if configError.Field != test.field {
				t.Errorf("Field = %q, want %q", configError.Field, test.field)
			}
		})
	}
}

func TestNewKeyMaterial(t *testing.T) {
	privateKey := ed25519.NewKeyFromSeed(testSeed())
	seed, err := secret.NewFromBytes(testSeed())
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}

	keys, err := NewKeyMaterial(testAccountID, privateKey.Public().(ed25519.PublicKey), seed)
	if err != nil {
		t.Fatalf("NewKeyMaterial: %v", err)
	}
	defer keys.Close()

	if !bytes.Equal(keys.PublicKey(), privateKey.Public().(ed25519.PublicKey)) {
		t.Error("PublicKey does not match")
	}
}

func TestNewKeyMaterial_NilSeed(t *testing.T) {
	privateKey := ed25519.NewKeyFromSeed(testSeed())
	if _, err := NewKeyMaterial(testAccountID, privateKey.Public().(ed25519.PublicKey), nil); !IsConfigError(err) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestKeyMaterial_PublicKeyIsCopy(t *testing.T) {
	keys := testKeyMaterial(t)
	publicKey := keys.PublicKey()
	publicKey[0] ^= 0xff
	if bytes.Equal(keys.PublicKey(), publicKey) {
		t.Error("mutating the returned public key changed the key material")
	}
}

func TestKeyMaterial_Close(t *testing.T) {
	publicHex, privateHex := testKeyHex()
	keys, err := ParseKeyMaterial(testAccountID, publicHex, privateHex)
	if err != nil {
		t.Fatalf("ParseKeyMaterial: %v", err)
	}
	if keys.Closed() {
		t.Fatal("Closed() = true before Close")
	}
	if err := keys.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := keys.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if !keys.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestGenerate(t *testing.T) {
	generated, err := Generate(bytes.NewReader(testSeed()))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(generated.PublicKey, "0x") || !strings.HasPrefix(generated.PrivateKey, "0x") {
		t.Errorf("expected 0x-prefixed keys, got %q / %q", generated.PublicKey, generated.PrivateKey)
	}

	keys, err := ParseKeyMaterial(testAccountID, generated.PublicKey, generated.PrivateKey)
	if err != nil {
		t.Fatalf("generated pair does not parse: %v", err)
	}
	defer keys.Close()

	wantPublic, _ := testKeyHex()
	if keys.PublicKeyHex() != wantPublic {
		t.Errorf("generated public key = %q, want %q", keys.PublicKeyHex(), wantPublic)
	}
}

func TestGenerate_ShortEntropy(t *testing.T) {
	if _, err := Generate(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("Generate with 3 bytes of entropy succeeded, want error")
	}
}
