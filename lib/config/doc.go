// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads configuration for the warpcast CLI and for
// programs embedding the client.
//
// There are two sources, and exactly one is used:
//
//   - A single file named by the WARPCAST_CONFIG environment variable
//     (or the CLI's --config flag). YAML (.yaml, .yml) and JSON with
//     comments (.json, .jsonc) are accepted. Environment variables do
//     not override values from the file; the file may reference them
//     with ${VAR} and ${VAR:-default}.
//   - With no file, the defaults overlaid with WARPCAST_FID,
//     WARPCAST_PUBLIC_KEY, WARPCAST_PRIVATE_KEY, WARPCAST_API_TOKEN and
//     WARPCAST_API_URL.
//
// A YAML file looks like:
//
//	api:
//	  base_url: https://api.warpcast.com
//	  timeout: 30s
//	auth:
//	  account_id: 977233
//	  public_key: ${WARPCAST_PUBLIC_KEY}
//	  private_key_file: /run/secrets/warpcast-key
//	posting:
//	  overflow: reject
//	log:
//	  level: debug
//
// [Config.ClientConfig] turns a validated Config into a
// [warpcast.Config], parsing key material exactly once.
package config
