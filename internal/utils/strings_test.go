package utils

import (
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "JANE DOE", 20, "JANE DOE"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 3, "abc... (truncated, total: 8 chars)"},
		{"multibyte counted as runes", "ÄÖÜäöü", 2, "ÄÖ... (truncated, total: 6 chars)"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateString_DefaultLength(t *testing.T) {
	long := strings.Repeat("x", DefaultMaxStringLength+10)
	got := TruncateString(long, 0)
	if !strings.HasPrefix(got, strings.Repeat("x", DefaultMaxStringLength)+"...") {
		t.Errorf("TruncateString(long, 0) did not cut at the default length")
	}
	if !strings.HasSuffix(got, "(truncated, total: 510 chars)") {
		t.Errorf("TruncateString(long, 0) = %q", got[len(got)-40:])
	}
}

func TestJSONToString(t *testing.T) {
	rec := map[string]any{"full_name": "JANE DOE", "additional_info": map[string]any{"height": "5-06"}}

	if got, want := JSONToString(rec), `{"additional_info":{"height":"5-06"},"full_name":"JANE DOE"}`; got != want {
		t.Errorf("JSONToString() = %s, want %s", got, want)
	}

	indented := JSONToString(rec, true)
	if !strings.Contains(indented, "\n  \"full_name\": \"JANE DOE\"") {
		t.Errorf("JSONToString(indent) = %s", indented)
	}

	bad := JSONToString(map[string]any{"c": make(chan int)})
	if !strings.HasPrefix(bad, `{"error": "failed to marshal to JSON: `) {
		t.Errorf("JSONToString(unencodable) = %s", bad)
	}
}
