// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package warpcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/warpcast/lib/appkey"
	"github.com/bureau-foundation/warpcast/lib/clock"
	"github.com/bureau-foundation/warpcast/lib/netutil"
	"github.com/bureau-foundation/warpcast/lib/version"
)

// DefaultBaseURL is the public Warpcast API.
const DefaultBaseURL = "https://api.warpcast.com"

// Config holds configuration for creating a Client.
//
// At most one authentication mode may be set:
//   - KeyMaterial: signed app-key tokens, minted per request
//   - Token: a static bearer token
//
// With neither, the client can only read.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL. Must be an absolute http or https URL.
	BaseURL string

	// KeyMaterial signs authenticated requests. The client does not
	// take ownership; the caller closes it after the client is done.
	KeyMaterial *appkey.KeyMaterial

	// Token is a pre-issued bearer token. Mutually exclusive with
	// KeyMaterial.
	Token string

	// TextOverflow selects how CreatePost handles text longer than
	// MaxPostLength. Defaults to OverflowTruncate.
	TextOverflow TextOverflow

	// HTTPClient is used for all requests. Defaults to a client with a
	// gzip-aware transport and no timeout.
	HTTPClient *http.Client

	// Clock provides the time used for token expiry and request
	// durations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives one Debug record per exchange. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed Warpcast API client.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	auth         authenticator
	textOverflow TextOverflow
	clock        clock.Clock
	logger       *slog.Logger
}

// NewClient creates a client from config. Returns an error if the
// configuration is invalid: malformed base URL, both auth modes set,
// or an unknown overflow policy.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("warpcast: invalid base URL %q: %w", baseURL, err)
	}
	if (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return nil, fmt.Errorf("warpcast: base URL must be an absolute http(s) URL (got %q)", baseURL)
	}

	if config.TextOverflow != OverflowTruncate && config.TextOverflow != OverflowReject {
		return nil, fmt.Errorf("warpcast: unknown text overflow policy %d", config.TextOverflow)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: netutil.CompressedTransport(nil)}
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hasKeys := config.KeyMaterial != nil
	hasToken := config.Token != ""
	if hasKeys && hasToken {
		return nil, fmt.Errorf("warpcast: cannot configure both KeyMaterial and Token")
	}

	var auth authenticator = readOnlyAuth{}
	switch {
	case hasKeys:
		auth = newAppKeyAuth(config.KeyMaterial, clk)
	case hasToken:
		auth = &staticTokenAuth{token: config.Token}
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		auth:         auth,
		textOverflow: config.TextOverflow,
		clock:        clk,
		logger:       logger,
	}, nil
}

// request describes one API exchange.
type request struct {
	operation     string
	method        string
	path          string
	query         url.Values
	body          any
	authenticated bool
}

// do executes an API request and decodes a 2xx response body into
// result (which may be nil). Non-2xx responses, transport failures and
// decode failures are returned as *APIError. Authentication failures
// are returned as-is, before anything is sent.
func (client *Client) do(ctx context.Context, req request, result any) error {
	response, err := client.doRaw(ctx, req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &APIError{
			Operation:  req.operation,
			StatusCode: response.StatusCode,
			Message:    errorMessage([]byte(netutil.ErrorBody(response.Body))),
		}
	}

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return &APIError{
			Operation:  req.operation,
			StatusCode: response.StatusCode,
			Message:    "reading response body",
			Err:        err,
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &APIError{
			Operation:  req.operation,
			StatusCode: response.StatusCode,
			Message:    "malformed response body",
			Err:        err,
		}
	}
	return nil
}

// doRaw builds and sends the request. The caller closes the response
// body.
func (client *Client) doRaw(ctx context.Context, req request) (*http.Response, error) {
	var authHeader string
	if req.authenticated {
		header, err := client.auth.authorizationHeader()
		if err != nil {
			return nil, err
		}
		authHeader = header
	}

	var bodyReader io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, &APIError{Operation: req.operation, Message: "encoding request body", Err: err}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	target := client.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpRequest, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return nil, &APIError{Operation: req.operation, Message: "creating request", Err: err}
	}
	if authHeader != "" {
		httpRequest.Header.Set("Authorization", authHeader)
	}
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", version.UserAgent())
	if req.body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	start := client.clock.Now()
	response, err := client.httpClient.Do(httpRequest)
	duration := clock.Since(client.clock, start)
	if err != nil {
		client.logger.Debug("warpcast request failed",
			"operation", req.operation,
			"method", req.method,
			"path", req.path,
			"duration", duration,
			"error", err,
		)
		return nil, &APIError{Operation: req.operation, Message: "request failed", Err: err}
	}

	attributes := []any{
		"operation", req.operation,
		"method", req.method,
		"path", req.path,
		"status", response.StatusCode,
		"duration", duration,
	}
	if req.authenticated {
		attributes = append(attributes, "credential", client.auth.identity())
	}
	client.logger.Debug("warpcast request", attributes...)

	return response, nil
}

// get is a convenience for unauthenticated GET requests.
func (client *Client) get(ctx context.Context, operation, path string, query url.Values, result any) error {
	return client.do(ctx, request{
		operation: operation,
		method:    http.MethodGet,
		path:      path,
		query:     query,
	}, result)
}

// authenticatedSend is a convenience for authenticated requests with a
// JSON body.
func (client *Client) authenticatedSend(ctx context.Context, operation, method, path string, body, result any) error {
	return client.do(ctx, request{
		operation:     operation,
		method:        method,
		path:          path,
		body:          body,
		authenticated: true,
	}, result)
}

// pageQuery builds the limit and cursor parameters shared by every
// content listing.
func pageQuery(page PageRequest) url.Values {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(page.Limit))
	if page.Cursor != "" {
		query.Set("cursor", page.Cursor)
	}
	return query
}

func validateLimit(operation string, limit, maximum int) error {
	if limit < 1 || limit > maximum {
		return &ValidationError{
			Operation: operation,
			Field:     "limit",
			Reason:    fmt.Sprintf("must be between 1 and %d, got %d", maximum, limit),
		}
	}
	return nil
}

func validateRequired(operation, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Operation: operation, Field: field, Reason: "must not be empty"}
	}
	return nil
}
