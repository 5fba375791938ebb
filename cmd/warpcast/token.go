// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/warpcast/cmd/warpcast/cli"
	"github.com/bureau-foundation/warpcast/lib/appkey"
)

type tokenOptions struct {
	commonOptions
	Verify string
}

// tokenInfo is the --json output of token and token --verify.
type tokenInfo struct {
	Token       string    `json:"token,omitempty"`
	AccountID   uint64    `json:"account_id"`
	Fingerprint string    `json:"fingerprint"`
	ExpiresAt   time.Time `json:"expires_at"`
	Valid       *bool     `json:"valid,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func (a *app) tokenCommand() *cli.Command {
	var options tokenOptions

	return &cli.Command{
		Name:    "token",
		Summary: "Mint or verify an app key token",
		Description: fmt.Sprintf(`Mint a signed app key bearer token from the configured key and print
it. Tokens expire %s after minting.

With --verify, check a token instead: its type, that it names the
configured public key, its signature, and its expiry. An invalid
token exits with status 1. "-" reads the token from stdin.`, appkey.TokenLifetime),
		Usage: "warpcast token [--verify <token>] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
			options.addFlags(flagSet)
			flagSet.StringVar(&options.Verify, "verify", "", "token to verify against the configured public key")
			return flagSet
		},
		Examples: []cli.Example{
			{Description: "Call the API directly with a fresh token", Command: `curl -H "Authorization: Bearer $(warpcast token)" ...`},
			{Description: "Check a token", Command: "warpcast token --verify eyJmaWQiOjk...."},
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "warpcast token [--verify <token>] [flags]"); err != nil {
				return err
			}
			cfg, err := options.load()
			if err != nil {
				return err
			}
			if options.Verify != "" {
				token := options.Verify
				if token == "-" {
					if token, err = readText(a.stdin); err != nil {
						return err
					}
				}
				return a.verifyToken(&options, cfg.Auth.PublicKey, strings.TrimSpace(token))
			}

			keys, err := cfg.Auth.KeyMaterial()
			if err != nil {
				return err
			}
			defer keys.Close()

			token, err := appkey.NewIssuer(a.clock).Issue(keys)
			if err != nil {
				return err
			}
			_, payload, err := appkey.Decode(token)
			if err != nil {
				return err
			}

			info := tokenInfo{
				Token:       token,
				AccountID:   keys.AccountID(),
				Fingerprint: keys.Fingerprint(),
				ExpiresAt:   payload.Expiry(),
			}
			if done, err := options.EmitJSON(a.stdout, info); done {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, token)
			return err
		},
	}
}

func (a *app) verifyToken(options *tokenOptions, publicHex, token string) error {
	publicKey, err := appkey.ParsePublicKey(publicHex)
	if err != nil {
		return fmt.Errorf("verifying requires auth.public_key: %w", err)
	}

	header, payload, decodeErr := appkey.Decode(token)
	_, _, verifyErr := appkey.VerifyAt(publicKey, token, a.clock.Now())
	valid := verifyErr == nil

	info := tokenInfo{Valid: &valid}
	if decodeErr == nil {
		info.AccountID = header.AccountID
		info.ExpiresAt = payload.Expiry()
		info.Fingerprint = keyFingerprint(header.Key)
	}
	if verifyErr != nil {
		info.Error = verifyErr.Error()
	}

	if done, err := options.EmitJSON(a.stdout, info); done {
		if err == nil && !valid {
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	if decodeErr == nil {
		fmt.Fprintf(a.stdout, "Account:     %d\n", info.AccountID)
		fmt.Fprintf(a.stdout, "Key:         %s\n", info.Fingerprint)
		fmt.Fprintf(a.stdout, "Expires:     %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	if !valid {
		fmt.Fprintf(a.stdout, "Status:      invalid (%v)\n", verifyErr)
		return &cli.ExitError{Code: 1}
	}
	_, err = fmt.Fprintln(a.stdout, "Status:      valid")
	return err
}

// keyFingerprint fingerprints the hex key named in a token header, or
// returns the raw value when it is not a valid public key.
func keyFingerprint(keyHex string) string {
	publicKey, err := appkey.ParsePublicKey(keyHex)
	if err != nil {
		return keyHex
	}
	return appkey.Fingerprint(publicKey)
}

func (a *app) keygenCommand() *cli.Command {
	var output cli.JSONOutput

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate a new Ed25519 app key pair",
		Description: `Generate a new Ed25519 key pair and print both halves as hex. The
private key is printed once and not stored anywhere; register the
public key with the account before using it.`,
		Usage: "warpcast keygen [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			output.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if err := requireArgs(args, 0, "warpcast keygen [flags]"); err != nil {
				return err
			}
			generated, err := appkey.Generate(a.random)
			if err != nil {
				return err
			}
			if done, err := output.EmitJSON(a.stdout, generated); done {
				return err
			}
			fmt.Fprintf(a.stdout, "Public key:  %s\n", generated.PublicKey)
			fmt.Fprintf(a.stdout, "Private key: %s\n", generated.PrivateKey)
			_, err = fmt.Fprintf(a.stdout, "Fingerprint: %s\n", keyFingerprint(generated.PublicKey))
			return err
		},
	}
}
