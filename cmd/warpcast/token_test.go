// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/warpcast/lib/appkey"
)

// offlineConfig is a configuration whose API is never contacted.
func offlineConfig(t *testing.T, signed bool) string {
	return writeConfig(t, "http://127.0.0.1:1", signed)
}

func TestTokenCommand_Mint(t *testing.T) {
	_, _, publicKey := testKeyHex()

	app := newTestApp(t)
	if err := app.execute("token", "--config", offlineConfig(t, true)); err != nil {
		t.Fatalf("token: %v", err)
	}

	token := strings.TrimSpace(app.stdout.String())
	header, payload, err := appkey.VerifyAt(publicKey, token, testEpoch)
	if err != nil {
		t.Fatalf("VerifyAt(minted token): %v", err)
	}
	if header.AccountID != testAccountID {
		t.Errorf("fid = %d, want %d", header.AccountID, testAccountID)
	}
	if want := testEpoch.Unix() + 300; payload.ExpiresAt != want {
		t.Errorf("exp = %d, want %d", payload.ExpiresAt, want)
	}
}

func TestTokenCommand_MintJSON(t *testing.T) {
	_, _, publicKey := testKeyHex()

	app := newTestApp(t)
	if err := app.execute("token", "--json", "--config", offlineConfig(t, true)); err != nil {
		t.Fatalf("token --json: %v", err)
	}

	var info tokenInfo
	if err := json.Unmarshal(app.stdout.Bytes(), &info); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	if info.Fingerprint != appkey.Fingerprint(publicKey) {
		t.Errorf("fingerprint = %q, want %q", info.Fingerprint, appkey.Fingerprint(publicKey))
	}
	if !info.ExpiresAt.Equal(testEpoch.Add(appkey.TokenLifetime)) {
		t.Errorf("expires_at = %v, want %v", info.ExpiresAt, testEpoch.Add(appkey.TokenLifetime))
	}
	if info.Valid != nil {
		t.Errorf("valid = %v, want omitted when minting", *info.Valid)
	}
	if strings.Count(info.Token, ".") != 2 {
		t.Errorf("token = %q, want three segments", info.Token)
	}
}

func TestTokenCommand_WithoutKeys(t *testing.T) {
	app := newTestApp(t)
	err := app.execute("token", "--config", offlineConfig(t, false))
	if !appkey.IsConfigError(err) {
		t.Fatalf("error = %v, want appkey config error", err)
	}
}

func TestTokenCommand_Verify(t *testing.T) {
	config := offlineConfig(t, true)

	minter := newTestApp(t)
	if err := minter.execute("token", "--config", config); err != nil {
		t.Fatalf("token: %v", err)
	}
	token := strings.TrimSpace(minter.stdout.String())

	tests := []struct {
		name     string
		advance  bool
		token    string
		wantCode int
		want     string
	}{
		{name: "valid", token: token, want: "Status:      valid"},
		{name: "expired", token: token, advance: true, wantCode: 1, want: "token has expired"},
		{name: "tampered", token: token[:len(token)-2] + "AA", wantCode: 1, want: "invalid"},
		{name: "malformed", token: "not-a-token", wantCode: 1, want: "malformed token"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app := newTestApp(t)
			if test.advance {
				app.clock.Advance(appkey.TokenLifetime)
			}
			err := app.execute("token", "--verify", test.token, "--config", config)
			if test.wantCode == 0 && err != nil {
				t.Fatalf("token --verify: %v", err)
			}
			if test.wantCode != 0 && exitCode(err) != test.wantCode {
				t.Fatalf("exit code = %d (err %v), want %d", exitCode(err), err, test.wantCode)
			}
			if !strings.Contains(app.stdout.String(), test.want) {
				t.Errorf("output = %q, want %q", app.stdout.String(), test.want)
			}
		})
	}
}

func TestTokenCommand_VerifyJSONFromStdin(t *testing.T) {
	config := offlineConfig(t, true)

	minter := newTestApp(t)
	if err := minter.execute("token", "--config", config); err != nil {
		t.Fatalf("token: %v", err)
	}

	app := newTestApp(t)
	app.stdin = strings.NewReader(minter.stdout.String())
	if err := app.execute("token", "--verify", "-", "--json", "--config", config); err != nil {
		t.Fatalf("token --verify -: %v", err)
	}
	var info tokenInfo
	if err := json.Unmarshal(app.stdout.Bytes(), &info); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	if info.Valid == nil || !*info.Valid {
		t.Errorf("valid = %v, want true (error %q)", info.Valid, info.Error)
	}
	if info.AccountID != testAccountID {
		t.Errorf("account_id = %d, want %d", info.AccountID, testAccountID)
	}
}

func TestKeygenCommand(t *testing.T) {
	seed := bytes.Repeat([]byte{0x01}, ed25519.SeedSize)
	wantPublic := "0x" + hex.EncodeToString(ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey))

	app := newTestApp(t)
	if err := app.execute("keygen", "--json"); err != nil {
		t.Fatalf("keygen --json: %v", err)
	}
	var generated appkey.GeneratedKey
	if err := json.Unmarshal(app.stdout.Bytes(), &generated); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	if generated.PublicKey != wantPublic {
		t.Errorf("public_key = %q, want %q", generated.PublicKey, wantPublic)
	}
	if generated.PrivateKey != "0x"+hex.EncodeToString(seed) {
		t.Errorf("private_key = %q, want the seed read from the entropy source", generated.PrivateKey)
	}

	keys, err := appkey.ParseKeyMaterial(1, generated.PublicKey, generated.PrivateKey)
	if err != nil {
		t.Fatalf("generated pair does not parse: %v", err)
	}
	keys.Close()
}

func TestKeygenCommand_Text(t *testing.T) {
	app := newTestApp(t)
	if err := app.execute("keygen"); err != nil {
		t.Fatalf("keygen: %v", err)
	}
	output := app.stdout.String()
	for _, want := range []string{"Public key:  0x", "Private key: 0x", "Fingerprint: "} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}
