// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/clock"
	"github.com/bureau-foundation/warpcast/lib/version"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const testAccountID = 8152

// testApp is an app wired to in-memory streams and a fake clock.
type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	clock  *clock.FakeClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	fake := clock.Fake(testEpoch)
	return &testApp{
		app: &app{
			ctx:    context.Background(),
			stdin:  strings.NewReader(""),
			stdout: stdout,
			stderr: stderr,
			clock:  fake,
			random: bytes.NewReader(bytes.Repeat([]byte{0x01}, ed25519.SeedSize)),
		},
		stdout: stdout,
		stderr: stderr,
		clock:  fake,
	}
}

func (a *testApp) execute(args ...string) error {
	return a.rootCommand().Execute(args)
}

func testKeyHex() (publicHex, seedHex string, publicKey ed25519.PublicKey) {
	seed := bytes.Repeat([]byte{0x2c}, ed25519.SeedSize)
	publicKey = ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	return hex.EncodeToString(publicKey), hex.EncodeToString(seed), publicKey
}

// writeConfig writes a YAML configuration pointing at baseURL, with the
// test app key when signed is true.
func writeConfig(t *testing.T, baseURL string, signed bool) string {
	t.Helper()
	content := fmt.Sprintf("api:\n  base_url: %s\n", baseURL)
	if signed {
		publicHex, seedHex, _ := testKeyHex()
		content += fmt.Sprintf("auth:\n  account_id: %d\n  public_key: \"0x%s\"\n  private_key: \"%s\"\n",
			testAccountID, publicHex, seedHex)
	}
	path := filepath.Join(t.TempDir(), "warpcast.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// stubServer wraps an httptest.Server and counts requests.
type stubServer struct {
	*httptest.Server
	hits atomic.Int64
}

func newStubServer(t *testing.T, handler http.HandlerFunc) *stubServer {
	t.Helper()
	stub := &stubServer{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(stub.Close)
	return stub
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, value any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		t.Errorf("encoding stub response: %v", err)
	}
}

func castFixture(hash, username, text string) map[string]any {
	return map[string]any{
		"hash": hash,
		"author": map[string]any{
			"fid":         1,
			"username":    username,
			"displayName": strings.ToUpper(username),
		},
		"text":      text,
		"timestamp": testEpoch.UnixMilli(),
		"reactions": map[string]any{"likes": 2, "recasts": 1, "replies": 0},
	}
}

func castsResponse(next string, casts ...map[string]any) map[string]any {
	if casts == nil {
		casts = []map[string]any{}
	}
	result := map[string]any{"casts": casts}
	if next != "" {
		result["next"] = map[string]any{"cursor": next}
	}
	return map[string]any{"result": result}
}

// recorded is a value written by a handler goroutine and read by the
// test.
type recorded struct {
	mu    sync.Mutex
	value string
}

func (r *recorded) set(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

func (r *recorded) get() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestRootCommand_UnknownCommandSuggestion(t *testing.T) {
	app := newTestApp(t)
	err := app.execute("trendng")
	if err == nil {
		t.Fatal("execute(trendng) = nil, want error")
	}
	if !strings.Contains(err.Error(), `did you mean "trending"`) {
		t.Errorf("error = %q, want suggestion for trending", err.Error())
	}
}

func TestRootCommand_HelpListsEveryCommand(t *testing.T) {
	app := newTestApp(t)
	if err := app.execute("--help"); err != nil {
		t.Fatalf("execute(--help): %v", err)
	}
	for _, name := range []string{
		"post", "casts", "search", "trending", "channels", "channel",
		"channel-casts", "follow", "unfollow", "token", "keygen", "version",
	} {
		if !strings.Contains(app.stderr.String(), "  "+name+" ") {
			t.Errorf("help output missing command %q:\n%s", name, app.stderr.String())
		}
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	app := newTestApp(t)
	if err := app.execute("version", "--json"); err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var info version.Build
	if err := json.Unmarshal(app.stdout.Bytes(), &info); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	if !strings.HasPrefix(info.UserAgent, "warpcast-go/") {
		t.Errorf("user_agent = %q, want warpcast-go/ prefix", info.UserAgent)
	}
	if info.Version == "" {
		t.Error("version is empty")
	}
}

func TestConnect_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("posting:\n  overflow: shorten\n"), 0600); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t)
	err := app.execute("trending", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "posting.overflow") {
		t.Fatalf("error = %v, want posting.overflow validation error", err)
	}
}
