// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds key material in memory that the Go runtime
// never sees.
//
// [Buffer] allocates outside the Go heap via mmap(MAP_ANONYMOUS),
// locks the pages into RAM (mlock) and excludes them from core dumps
// (MADV_DONTDUMP). Close zeroes, unlocks and unmaps the region. The
// garbage collector cannot copy or relocate the bytes, so an Ed25519
// seed loaded here does not linger in freed heap memory.
//
// Constructors:
//
//   - [New] allocates a zero-filled buffer
//   - [NewFromBytes] copies into protected memory and zeroes the source
//   - [DecodeHex] decodes a hex string straight into protected memory
//   - [ReadFromPath] reads a file (or stdin for "-") and trims whitespace
//
// Depends on golang.org/x/sys/unix only.
package secret
