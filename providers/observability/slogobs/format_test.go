package slogobs

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"compact", FormatCompact},
		{"pretty", FormatPretty},
		{"PRETTY", FormatPretty},
		{" json ", FormatJSON},
		{"", FormatCompact},
		{"xml", FormatCompact},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetFormatFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		idx      string
		fallback string
		want     Format
	}{
		{"IDX_LOG_FORMAT wins", "pretty", "json", FormatPretty},
		{"LOG_FORMAT fallback", "", "json", FormatJSON},
		{"neither set", "", "", FormatCompact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envLogFormat, tt.idx)
			t.Setenv(envLogFormatFallback, tt.fallback)

			if got := GetFormatFromEnv(); got != tt.want {
				t.Errorf("GetFormatFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
