// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// DecodeHex decodes a hex string (with or without a "0x" prefix)
// directly into a new Buffer. Only the caller's string remains on the
// heap.
func DecodeHex(encoded string) (*Buffer, error) {
	encoded = strings.TrimSpace(encoded)
	encoded = strings.TrimPrefix(strings.TrimPrefix(encoded, "0x"), "0X")
	if encoded == "" {
		return nil, fmt.Errorf("secret: empty hex string")
	}
	if len(encoded)%2 != 0 {
		return nil, fmt.Errorf("secret: odd-length hex string")
	}

	return decodeHex([]byte(encoded))
}

// DecodeHex decodes the buffer's contents as hex (with or without a
// "0x" prefix) into a new Buffer. The receiver is left unchanged; the
// caller closes both.
func (b *Buffer) DecodeHex() (*Buffer, error) {
	encoded := bytes.TrimSpace(b.Bytes())
	if len(encoded) >= 2 && encoded[0] == '0' && (encoded[1] == 'x' || encoded[1] == 'X') {
		encoded = encoded[2:]
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("secret: empty hex string")
	}
	if len(encoded)%2 != 0 {
		return nil, fmt.Errorf("secret: odd-length hex string")
	}
	return decodeHex(encoded)
}

func decodeHex(encoded []byte) (*Buffer, error) {
	buffer, err := New(len(encoded) / 2)
	if err != nil {
		return nil, err
	}
	if _, err := hex.Decode(buffer.data, encoded); err != nil {
		buffer.Close()
		return nil, fmt.Errorf("secret: decoding hex: %w", err)
	}
	return buffer, nil
}

// ReadFromPath reads a secret from a file, or from the first line of
// stdin when path is "-". Surrounding whitespace is trimmed. The
// caller must Close the returned buffer.
func ReadFromPath(path string) (*Buffer, error) {
	var data []byte

	if path == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			return nil, fmt.Errorf("stdin is empty")
		}
		data = scanner.Bytes()
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret is empty")
	}

	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
