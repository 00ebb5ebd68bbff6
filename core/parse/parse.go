package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/XayHanmonty/id-verification-poc/core/record"
)

var (
	// ErrNotObject is returned when the decoded JSON value is not an object.
	ErrNotObject = errors.New("json value is not an object")

	// ErrTrailingData is returned when a JSON object is followed by more input.
	ErrTrailingData = errors.New("unexpected data after json object")

	// ErrNoCandidate is returned when no brace-delimited substring exists.
	ErrNoCandidate = errors.New("no embedded json object found")
)

// DecodeObject decodes s as a single JSON object. Numbers are kept as
// json.Number so document numbers survive untouched, and anything after the
// object other than whitespace is rejected.
func DecodeObject(s string) (record.Record, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if m == nil {
		return nil, ErrNotObject
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return record.Record(m), nil
}

// StripCodeFences removes markdown ```json and ``` markers and trims the
// result.
func StripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// EmbeddedObject returns the widest brace-delimited substring of content,
// from the first '{' to the last '}'.
func EmbeddedObject(content string) (string, bool) {
	start := strings.Index(content, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(content, "}")
	if end < start {
		return "", false
	}
	return content[start : end+1], true
}

// ParseAIResponse turns a model response that failed direct JSON decoding
// into a record. It tries the markdown-stripped content, then the widest
// embedded object, then falls back to labelled-text extraction. It always
// returns a record; a raw_text record means nothing could be structured.
func ParseAIResponse(content string, hint record.SourceHint) record.Record {
	return defaultInterpreter.Parse(content, hint).Record
}

var defaultInterpreter = NewInterpreter()

// unwrapSchemaValues replaces {"type": ..., "value": v} envelopes with v.
// Models given a JSON schema in the prompt sometimes answer in that shape:
//
//	{"full_name": {"type": "string", "value": "JANE DOE"}}
func unwrapSchemaValues(rec record.Record) (record.Record, bool) {
	changed := false
	out := make(record.Record, len(rec))
	for k, v := range rec {
		u, c := unwrapValue(v)
		out[k] = u
		changed = changed || c
	}
	return out, changed
}

func unwrapValue(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, false
	}
	if _, hasType := m["type"]; hasType {
		if inner, hasValue := m["value"]; hasValue && len(m) == 2 {
			u, _ := unwrapValue(inner)
			return u, true
		}
	}

	changed := false
	out := make(map[string]any, len(m))
	for k, inner := range m {
		u, c := unwrapValue(inner)
		out[k] = u
		changed = changed || c
	}
	return out, changed
}
