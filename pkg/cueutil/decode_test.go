// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	mode?: "fast" | "slow"
	ui?: {
		verbose?: bool
	}
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	t.Run("valid data decodes", func(t *testing.T) {
		t.Parallel()

		got, err := DecodeMap(testSchema, "#Config", []byte(`mode: "fast"
ui: verbose: true
`), "config.cue")
		if err != nil {
			t.Fatalf("DecodeMap() error = %v", err)
		}
		if got["mode"] != "fast" {
			t.Errorf("mode = %v, want fast", got["mode"])
		}
		ui, ok := got["ui"].(map[string]any)
		if !ok || ui["verbose"] != true {
			t.Errorf("ui = %#v, want verbose true", got["ui"])
		}
	})

	t.Run("schema violation names the field", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeMap(testSchema, "#Config", []byte(`mode: "medium"`), "config.cue")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "config.cue") || !strings.Contains(err.Error(), "mode") {
			t.Errorf("error should name file and field, got: %v", err)
		}
	})

	t.Run("syntax error is reported", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeMap(testSchema, "#Config", []byte(`mode: {`), "config.cue"); err == nil {
			t.Fatal("expected syntax error")
		}
	})

	t.Run("missing definition is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeMap(testSchema, "#Missing", []byte(`{}`), "config.cue")
		if err == nil || !strings.Contains(err.Error(), "#Missing") {
			t.Errorf("expected missing definition error, got: %v", err)
		}
	})
}
