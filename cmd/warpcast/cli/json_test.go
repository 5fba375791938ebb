// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestJSONOutput_EmitJSON(t *testing.T) {
	var output JSONOutput
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	output.AddFlag(flagSet)

	var buffer bytes.Buffer
	done, err := output.EmitJSON(&buffer, map[string]int{"likes": 3})
	if done || err != nil {
		t.Fatalf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("EmitJSON without --json wrote %q", buffer.String())
	}

	if err := flagSet.Parse([]string{"--json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	done, err = output.EmitJSON(&buffer, map[string]int{"likes": 3})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v), want (true, nil)", done, err)
	}
	want := "{\n  \"likes\": 3\n}\n"
	if buffer.String() != want {
		t.Errorf("output = %q, want %q", buffer.String(), want)
	}
}

func TestJSONOutput_NilSlice(t *testing.T) {
	output := JSONOutput{OutputJSON: true}
	var buffer bytes.Buffer
	var items []string
	if _, err := output.EmitJSON(&buffer, items); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("output = %q, want %q", got, "[]")
	}
}
