// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

func channelsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/all-channels" {
			t.Errorf("path = %q, want /v2/all-channels", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"result": map[string]any{"channels": []map[string]any{
				{"id": "art", "name": "Art", "followerCount": 10},
				{"id": "dev", "name": "Developers", "followerCount": 1},
				{"id": "music", "name": "Music"},
				{"id": "devops", "name": "DevOps", "followerCount": 3},
			}},
		})
	}
}

func TestChannelsCommand_Text(t *testing.T) {
	server := newStubServer(t, channelsHandler(t))

	app := newTestApp(t)
	if err := app.execute("channels", "--limit", "2", "--config", writeConfig(t, server.URL, false)); err != nil {
		t.Fatalf("channels: %v", err)
	}
	output := app.stdout.String()
	for _, want := range []string{"Channels:", "Art (art)", "10 followers", "Developers (dev)", "1 follower "} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "music") {
		t.Errorf("output includes channel beyond --limit:\n%s", output)
	}
}

func TestChannelsCommand_Filter(t *testing.T) {
	server := newStubServer(t, channelsHandler(t))

	app := newTestApp(t)
	err := app.execute("channels", "--filter", "dev", "--json", "--config", writeConfig(t, server.URL, false))
	if err != nil {
		t.Fatalf("channels --filter: %v", err)
	}

	var channels []warpcast.Channel
	if err := json.Unmarshal(app.stdout.Bytes(), &channels); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	var ids []string
	for _, channel := range channels {
		ids = append(ids, channel.ID)
	}
	if len(ids) != 2 {
		t.Fatalf("matched %v, want dev and devops", ids)
	}
	for _, id := range ids {
		if id != "dev" && id != "devops" {
			t.Errorf("unexpected match %q", id)
		}
	}
}

func TestChannelsCommand_FilterLimitValidation(t *testing.T) {
	server := newStubServer(t, channelsHandler(t))

	app := newTestApp(t)
	err := app.execute("channels", "--filter", "dev", "--limit", "51", "--config", writeConfig(t, server.URL, false))
	if !warpcast.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if hits := server.hits.Load(); hits != 0 {
		t.Errorf("requests = %d, want 0", hits)
	}
}

func TestChannelCommand_NotFound(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channelId"); got != "missing" {
			t.Errorf("channelId = %q, want missing", got)
		}
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"errors": []map[string]any{{"message": "channel not found"}},
		})
	})

	app := newTestApp(t)
	err := app.execute("channel", "missing", "--config", writeConfig(t, server.URL, false))
	if !warpcast.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "getChannel") {
		t.Errorf("error = %q, want operation name", err.Error())
	}
}

func TestChannelCommand_JSON(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"result": map[string]any{"channel": map[string]any{
				"id": "dev", "name": "Developers", "memberCount": 4, "moderatorFids": []int{7},
			}},
		})
	})

	app := newTestApp(t)
	if err := app.execute("channel", "/dev", "--json", "--config", writeConfig(t, server.URL, false)); err != nil {
		t.Fatalf("channel: %v", err)
	}
	var channel warpcast.Channel
	if err := json.Unmarshal(app.stdout.Bytes(), &channel); err != nil {
		t.Fatalf("decoding output %q: %v", app.stdout.String(), err)
	}
	if channel.ID != "dev" || channel.MemberCount != 4 {
		t.Errorf("channel = %+v", channel)
	}
	if len(channel.ModeratorAccountIDs) != 1 || channel.ModeratorAccountIDs[0] != 7 {
		t.Errorf("moderators = %v, want [7]", channel.ModeratorAccountIDs)
	}
}

func TestFollowCommands(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		wantMethod string
		success    bool
		wantOutput string
		wantCode   int
	}{
		{name: "follow", command: "follow", wantMethod: http.MethodPost, success: true, wantOutput: "Followed /dev."},
		{name: "unfollow", command: "unfollow", wantMethod: http.MethodDelete, success: true, wantOutput: "Unfollowed /dev."},
		{name: "unconfirmed", command: "follow", wantMethod: http.MethodPost, success: false, wantCode: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var body recorded
			server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != test.wantMethod || r.URL.Path != "/fc/channel-follows" {
					t.Errorf("request = %s %s, want %s /fc/channel-follows", r.Method, r.URL.Path, test.wantMethod)
				}
				if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
					t.Error("request is not authenticated")
				}
				data, _ := io.ReadAll(r.Body)
				body.set(string(data))
				writeJSON(t, w, http.StatusOK, map[string]any{"success": test.success})
			})

			app := newTestApp(t)
			err := app.execute(test.command, "dev", "--config", writeConfig(t, server.URL, true))
			if test.wantCode != 0 {
				if code := exitCode(err); code != test.wantCode {
					t.Fatalf("exit code = %d (err %v), want %d", code, err, test.wantCode)
				}
				if !strings.Contains(app.stderr.String(), "did not confirm") {
					t.Errorf("stderr = %q, want unconfirmed notice", app.stderr.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: %v", test.command, err)
			}
			if got := body.get(); !strings.Contains(got, `"channelId":"dev"`) {
				t.Errorf("request body = %q", got)
			}
			if got := strings.TrimSpace(app.stdout.String()); got != test.wantOutput {
				t.Errorf("output = %q, want %q", got, test.wantOutput)
			}
		})
	}
}

func TestFollowCommand_ReadOnlyConfig(t *testing.T) {
	server := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL)
	})

	app := newTestApp(t)
	err := app.execute("follow", "dev", "--config", writeConfig(t, server.URL, false))
	if !warpcast.IsAuthConfiguration(err) {
		t.Fatalf("error = %v, want auth configuration error", err)
	}
	if hits := server.hits.Load(); hits != 0 {
		t.Errorf("requests = %d, want 0", hits)
	}
}
