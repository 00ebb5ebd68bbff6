package slogobs

import (
	"os"
	"strings"
)

// Format selects how log lines are rendered.
type Format string

const (
	// FormatCompact is one line per record with the attributes as JSON:
	//
	//	2026-10-18 10:40:35  INFO extraction complete → {"extract.tier":"direct"}
	FormatCompact Format = "compact"

	// FormatPretty puts every attribute on its own indented line.
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per record, for log shippers.
	FormatJSON Format = "json"
)

// ParseFormat maps s to a Format. Unknown values give FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads IDX_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	return ParseFormat(firstEnv(envLogFormat, envLogFormatFallback))
}

func (f Format) String() string {
	return string(f)
}

const (
	envLogFormat         = "IDX_LOG_FORMAT"
	envLogFormatFallback = "LOG_FORMAT"
	envLogLevel          = "IDX_LOG_LEVEL"
	envLogLevelFallback  = "LOG_LEVEL"
)

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
