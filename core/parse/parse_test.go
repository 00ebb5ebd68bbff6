package parse

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/core/textparse"
)

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    record.Record
		wantErr error
	}{
		{
			name:  "simple object",
			input: `{"full_name": "Jane Doe"}`,
			want:  record.Record{"full_name": "Jane Doe"},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"gender\": \"F\"}  \n",
			want:  record.Record{"gender": "F"},
		},
		{
			name:  "numbers kept as json.Number",
			input: `{"document_number": 1234567}`,
			want:  record.Record{"document_number": json.Number("1234567")},
		},
		{
			name:  "nested additional_info",
			input: `{"additional_info": {"sex": "F"}}`,
			want:  record.Record{"additional_info": map[string]any{"sex": "F"}},
		},
		{
			name:    "null is not an object",
			input:   `null`,
			wantErr: ErrNotObject,
		},
		{
			name:    "trailing data",
			input:   `{"a": "b"} thanks`,
			wantErr: ErrTrailingData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeObject(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DecodeObject() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeObject() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeObject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeObject_RejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[1, 2]`, `"text"`, `42`, ``, `{"a": `} {
		if _, err := DecodeObject(input); err == nil {
			t.Errorf("DecodeObject(%q) expected error", input)
		}
	}
}

func TestEmbeddedObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"object in prose", `Here: {"a": 1} done`, `{"a": 1}`, true},
		{"widest span", "{\"a\": {\"b\": 1}}\ntrailing }", "{\"a\": {\"b\": 1}}\ntrailing }", true},
		{"no braces", "plain text", "", false},
		{"closing before opening", "} then {", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EmbeddedObject(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("EmbeddedObject() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseAIResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		hint    record.SourceHint
		want    record.Record
	}{
		{
			name:    "valid json returned unchanged",
			content: `{"document_type": "Passport", "full_name": "Jane Doe"}`,
			want:    record.Record{"document_type": "Passport", "full_name": "Jane Doe"},
		},
		{
			name:    "markdown fenced json",
			content: "```json\n{\"full_name\": \"Jane Doe\"}\n```",
			want:    record.Record{"full_name": "Jane Doe"},
		},
		{
			name:    "bare fences",
			content: "```\n{\"gender\": \"F\"}\n```",
			want:    record.Record{"gender": "F"},
		},
		{
			name:    "json embedded in prose",
			content: `Here is the data: {"full_name": "Jane Doe"} Thanks`,
			want:    record.Record{"full_name": "Jane Doe"},
		},
		{
			name:    "labelled prose",
			content: "Full Name: Jane Doe\nDate of Birth: 01/02/1990\nGender: F",
			want: record.Record{
				"full_name":     "Jane Doe",
				"date_of_birth": "01/02/1990",
				"gender":        "F",
			},
		},
		{
			name:    "labelled prose with license hint",
			content: "Full Name: Jane Doe\nLicense Number: 11234567\nGender: F",
			hint:    "ca_license.png",
			want: record.Record{
				"full_name":       "Jane Doe",
				"document_number": "I1234567",
				"gender":          "F",
			},
		},
		{
			name:    "unparseable text becomes raw",
			content: "I cannot read this image.",
			want:    record.Record{"raw_text": "I cannot read this image."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAIResponse(tt.content, tt.hint)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAIResponse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAIResponse_FencedMatchesInner(t *testing.T) {
	inner := `{"full_name": "Jane Doe", "additional_info": {"height": "5-06"}}`
	want, err := DecodeObject(inner)
	if err != nil {
		t.Fatalf("DecodeObject() error: %v", err)
	}

	got := ParseAIResponse("```json "+inner+" ```", "")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fenced parse = %v, want %v", got, want)
	}
}

func TestInterpreter_Tiers(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []Tier
	}{
		{"default ladder", nil, []Tier{TierFenced, TierEmbedded, TierUnstructured}},
		{"with repair", []Option{WithRepair()}, []Tier{TierFenced, TierEmbedded, TierRepaired, TierUnstructured}},
		{"custom ladder", []Option{WithStrategies(Embedded())}, []Tier{TierEmbedded}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewInterpreter(tt.opts...).Tiers()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tiers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterpreter_ParseReportsTierAndAttempts(t *testing.T) {
	out := NewInterpreter().Parse(`Result: {"full_name": "Jane Doe"}`, "")

	if out.Tier != TierEmbedded {
		t.Errorf("Tier = %v, want %v", out.Tier, TierEmbedded)
	}
	if !out.OK {
		t.Error("expected OK outcome")
	}
	if len(out.Attempts) != 1 || out.Attempts[0].Tier != TierFenced || out.Attempts[0].Err == nil {
		t.Errorf("Attempts = %+v, want one failed fenced attempt", out.Attempts)
	}
}

func TestInterpreter_Repair(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    record.Record
	}{
		{
			name:    "single quotes and trailing comma",
			content: `{'full_name': 'Jane Doe', 'gender': 'F',}`,
			want:    record.Record{"full_name": "Jane Doe", "gender": "F"},
		},
		{
			name:    "truncated response",
			content: "```json\n{\"full_name\": \"Jane Doe\", \"gender\": \"F\"",
			want:    record.Record{"full_name": "Jane Doe", "gender": "F"},
		},
		{
			name:    "schema envelopes unwrapped",
			content: `{"full_name": {"type": "string", "value": "Jane Doe"},}`,
			want:    record.Record{"full_name": "Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := NewInterpreter().Parse(tt.content, "")
			if plain.Tier == TierRepaired {
				t.Fatal("default ladder must not repair")
			}

			out := NewInterpreter(WithRepair()).Parse(tt.content, "")
			if out.Tier != TierRepaired {
				t.Fatalf("Tier = %v, want %v (record %v)", out.Tier, TierRepaired, out.Record)
			}
			if !reflect.DeepEqual(out.Record, tt.want) {
				t.Errorf("Record = %v, want %v", out.Record, tt.want)
			}
		})
	}
}

func TestInterpreter_TextOptionsForwarded(t *testing.T) {
	content := "Name: Jane Doe\nDOB: 01/02/1990"

	if got := NewInterpreter().Parse(content, "").Record; !got.IsRaw() {
		t.Fatalf("default threshold should give raw_text, got %v", got)
	}

	got := NewInterpreter(WithTextOptions(textparse.WithMinFields(2))).Parse(content, "").Record
	want := record.Record{"full_name": "Jane Doe", "date_of_birth": "01/02/1990"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestInterpreter_AllStrategiesFail(t *testing.T) {
	out := NewInterpreter(WithStrategies(Fenced(), Embedded())).Parse("no json here", "")

	if out.Tier != TierNone {
		t.Errorf("Tier = %v, want %v", out.Tier, TierNone)
	}
	if !reflect.DeepEqual(out.Record, record.Raw("no json here")) {
		t.Errorf("Record = %v, want raw_text record", out.Record)
	}
	if len(out.Attempts) != 2 {
		t.Errorf("len(Attempts) = %d, want 2", len(out.Attempts))
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		tier   Tier
		name   string
		isJSON bool
	}{
		{TierNone, "none", false},
		{TierDirect, "direct", true},
		{TierFenced, "fenced", true},
		{TierEmbedded, "embedded", true},
		{TierRepaired, "repaired", true},
		{TierUnstructured, "unstructured", false},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.name {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.name)
		}
		if got := tt.tier.IsJSON(); got != tt.isJSON {
			t.Errorf("Tier(%d).IsJSON() = %v, want %v", tt.tier, got, tt.isJSON)
		}
	}
}
