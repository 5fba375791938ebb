// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/warpcast/lib/appkey"
	"github.com/bureau-foundation/warpcast/lib/warpcast"
)

// Environment variable names.
const (
	EnvConfig     = "WARPCAST_CONFIG"
	EnvAccountID  = "WARPCAST_FID"
	EnvPublicKey  = "WARPCAST_PUBLIC_KEY"
	EnvPrivateKey = "WARPCAST_PRIVATE_KEY"
	EnvToken      = "WARPCAST_API_TOKEN"
	EnvBaseURL    = "WARPCAST_API_URL"
)

// Config is the complete configuration.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Auth    AuthConfig    `yaml:"auth" json:"auth"`
	Posting PostingConfig `yaml:"posting" json:"posting"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// APIConfig configures the HTTP side of the client.
type APIConfig struct {
	// BaseURL is the API root.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each request, as a Go duration. Empty means no
	// client-imposed timeout.
	Timeout string `yaml:"timeout" json:"timeout"`

	// Compression enables gzip negotiation on responses.
	Compression bool `yaml:"compression" json:"compression"`
}

// AuthConfig selects the credential. Either the app key fields
// (AccountID, PublicKey, and one of PrivateKey or PrivateKeyFile) or
// Token may be set, not both. None makes the client read-only.
type AuthConfig struct {
	AccountID uint64 `yaml:"account_id" json:"account_id"`
	PublicKey string `yaml:"public_key" json:"public_key"`

	// PrivateKey is the hex-encoded 32-byte seed.
	PrivateKey string `yaml:"private_key" json:"private_key"`

	// PrivateKeyFile names a file holding the hex seed, or "-" for
	// stdin. The file is read into protected memory.
	PrivateKeyFile string `yaml:"private_key_file" json:"private_key_file"`

	// Token is a pre-issued bearer token.
	Token string `yaml:"token" json:"token"`
}

// PostingConfig controls CreatePost.
type PostingConfig struct {
	// Overflow is "truncate" or "reject".
	Overflow string `yaml:"overflow" json:"overflow"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level" json:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text or
	// json.
	Format string `yaml:"format" json:"format"`
}

// Default returns the configuration used before a file or the
// environment is applied.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     warpcast.DefaultBaseURL,
			Compression: true,
		},
		Posting: PostingConfig{Overflow: "truncate"},
		Log:     LogConfig{Level: "info", Format: "auto"},
	}
}

// Load loads the file named by WARPCAST_CONFIG, or, when it is unset,
// the defaults overlaid with the WARPCAST_* credential variables.
func Load() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return LoadFile(path)
	}
	return LoadEnvironment()
}

// LoadEnvironment builds a configuration from the defaults and the
// WARPCAST_* environment variables only.
func LoadEnvironment() (*Config, error) {
	cfg := Default()
	if value := os.Getenv(EnvAccountID); value != "" {
		accountID, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s must be a positive integer: %w", EnvAccountID, err)
		}
		cfg.Auth.AccountID = accountID
	}
	if value := os.Getenv(EnvPublicKey); value != "" {
		cfg.Auth.PublicKey = value
	}
	if value := os.Getenv(EnvPrivateKey); value != "" {
		cfg.Auth.PrivateKey = value
	}
	if value := os.Getenv(EnvToken); value != "" {
		cfg.Auth.Token = value
	}
	if value := os.Getenv(EnvBaseURL); value != "" {
		cfg.API.BaseURL = value
	}
	return cfg, nil
}

// LoadFile loads configuration from path over the defaults. The format
// is chosen by extension; unknown extensions are parsed as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in string fields.
func (c *Config) expandVariables() {
	fields := []*string{
		&c.API.BaseURL,
		&c.API.Timeout,
		&c.Auth.PublicKey,
		&c.Auth.PrivateKey,
		&c.Auth.PrivateKeyFile,
		&c.Auth.Token,
		&c.Posting.Overflow,
		&c.Log.Level,
		&c.Log.Format,
	}
	for _, field := range fields {
		*field = expandVars(*field, nil)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together. Problems with app key material are
// *appkey.ConfigError values, so warpcast.IsAuthConfiguration reports
// them.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}
	if _, err := c.API.timeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Posting.TextOverflow(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: auto, text, json (got %q)", c.Log.Format))
	}

	auth := c.Auth
	if auth.PrivateKey != "" && auth.PrivateKeyFile != "" {
		errs = append(errs, &appkey.ConfigError{Field: "auth.private_key", Reason: "mutually exclusive with auth.private_key_file"})
	}
	if auth.hasAppKey() {
		if auth.Token != "" {
			errs = append(errs, &appkey.ConfigError{Field: "auth.token", Reason: "cannot be combined with app key fields"})
		}
		if auth.AccountID == 0 {
			errs = append(errs, &appkey.ConfigError{Field: "auth.account_id", Reason: "required for app key auth"})
		}
		if auth.PublicKey == "" {
			errs = append(errs, &appkey.ConfigError{Field: "auth.public_key", Reason: "required for app key auth"})
		}
		if auth.PrivateKey == "" && auth.PrivateKeyFile == "" {
			errs = append(errs, &appkey.ConfigError{Field: "auth.private_key", Reason: "required for app key auth (or auth.private_key_file)"})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (a AuthConfig) hasAppKey() bool {
	return a.AccountID != 0 || a.PublicKey != "" || a.PrivateKey != "" || a.PrivateKeyFile != ""
}

func (a APIConfig) timeout() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("api.timeout must not be negative (got %s)", a.Timeout)
	}
	return duration, nil
}

// TextOverflow returns the configured overflow policy.
func (p PostingConfig) TextOverflow() (warpcast.TextOverflow, error) {
	switch p.Overflow {
	case "", "truncate":
		return warpcast.OverflowTruncate, nil
	case "reject":
		return warpcast.OverflowReject, nil
	default:
		return 0, fmt.Errorf("posting.overflow must be one of: truncate, reject (got %q)", p.Overflow)
	}
}

// SlogLevel returns the configured log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level must be one of: debug, info, warn, error (got %q)", l.Level)
	}
	return level, nil
}
