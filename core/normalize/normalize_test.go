package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/XayHanmonty/id-verification-poc/core/record"
)

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		in   record.Record
		hint record.SourceHint
		want record.Record
	}{
		{
			name: "seven digit california number gets I prefix",
			in: record.Record{
				"document_type":   "California Driver's License",
				"document_number": "1234567",
			},
			hint: "ca_license.jpg",
			want: record.Record{
				"document_type":   "California Driver's License",
				"document_number": "I1234567",
			},
		},
		{
			name: "sex promoted to gender and empty additional_info dropped",
			in: record.Record{
				"additional_info": map[string]any{"sex": "F"},
			},
			want: record.Record{"gender": "F"},
		},
		{
			name: "cordholder typo fixed and name split",
			in:   record.Record{"full_name": "JOHN CORDHOLDER SMITH"},
			want: record.Record{
				"full_name":  "JOHN CARDHOLDER SMITH",
				"first_name": "JOHN",
				"last_name":  "CARDHOLDER SMITH",
			},
		},
		{
			name: "passport hint forces passport type",
			in:   record.Record{"document_type": "ID Card"},
			hint: "passport_01.png",
			want: record.Record{"document_type": "Passport"},
		},
		{
			name: "passport hint with lowercase passport type untouched",
			in:   record.Record{"document_type": "passport"},
			hint: "passport_01.png",
			want: record.Record{"document_type": "passport"},
		},
		{
			name: "passport hint sets missing type",
			in:   record.Record{"gender": "M"},
			hint: "passport_01.png",
			want: record.Record{"gender": "M", "document_type": "Passport"},
		},
		{
			name: "license hint overrides passport type",
			in:   record.Record{"document_type": "US Passport"},
			hint: "license.png",
			want: record.Record{"document_type": "Driver's License"},
		},
		{
			name: "california license with labelled number",
			in: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "California",
				"document_number": "DL 11234567",
			},
			hint: "license.png",
			want: record.Record{
				"document_type":   "California Driver's License",
				"issuing_country": "California",
				"document_number": "I1234567",
			},
		},
		{
			name: "sacramento zip marks california",
			in: record.Record{
				"document_type": "Driver License",
				"address":       "2570 24TH STREET SACRAMENTO, CA 95818",
			},
			hint: "license.png",
			want: record.Record{
				"document_type": "California Driver's License",
				"address":       "2570 24TH STREET SACRAMENTO, CA 95818",
			},
		},
		{
			name: "california rule needs license hint",
			in: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "California",
			},
			hint: "scan.png",
			want: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "California",
			},
		},
		{
			name: "number untouched outside california",
			in: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "USA",
				"document_number": "1234567",
			},
			hint: "license.png",
			want: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "USA",
				"document_number": "1234567",
			},
		},
		{
			name: "non-string number left alone",
			in: record.Record{
				"document_type":   "California Driver's License",
				"document_number": json.Number("1234567"),
			},
			want: record.Record{
				"document_type":   "California Driver's License",
				"document_number": json.Number("1234567"),
			},
		},
		{
			name: "nested fields promoted unless already top level",
			in: record.Record{
				"address": "1 MAIN ST",
				"additional_info": map[string]any{
					"address":         "2 OTHER ST",
					"date_of_birth":   "01/02/1990",
					"expiration_date": "01/02/2030",
					"height":          "5-06",
				},
			},
			want: record.Record{
				"address":         "1 MAIN ST",
				"date_of_birth":   "01/02/1990",
				"expiration_date": "01/02/2030",
				"additional_info": map[string]any{
					"address": "2 OTHER ST",
					"height":  "5-06",
				},
			},
		},
		{
			name: "gender wins over nested sex",
			in: record.Record{
				"gender":          "F",
				"additional_info": map[string]any{"sex": "M"},
			},
			want: record.Record{
				"gender":          "F",
				"additional_info": map[string]any{"sex": "M"},
			},
		},
		{
			name: "existing first name blocks split",
			in:   record.Record{"full_name": "JANE DOE", "first_name": "JANE"},
			want: record.Record{"full_name": "JANE DOE", "first_name": "JANE"},
		},
		{
			name: "single token name not split",
			in:   record.Record{"full_name": "MADONNA"},
			want: record.Record{"full_name": "MADONNA"},
		},
		{
			name: "empty additional_info dropped",
			in:   record.Record{"gender": "F", "additional_info": map[string]any{}},
			want: record.Record{"gender": "F"},
		},
		{
			name: "nil record",
			in:   nil,
			want: record.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PostProcess(tt.in, tt.hint)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PostProcess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostProcess_DoesNotMutateInput(t *testing.T) {
	in := record.Record{
		"document_type":   "Driver License",
		"issuing_country": "California",
		"document_number": "1234567",
		"full_name":       "JOHN CORDHOLDER SMITH",
		"additional_info": map[string]any{"sex": "M", "height": "6-01"},
	}
	snapshot := in.Clone()

	_ = PostProcess(in, "license.png")

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input mutated: got %v, want %v", in, snapshot)
	}
}

func TestPostProcess_Idempotent(t *testing.T) {
	inputs := []struct {
		rec  record.Record
		hint record.SourceHint
	}{
		{
			rec: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "CA",
				"document_number": "LIC 11234567",
				"full_name":       "JOHN CORDHOLDER SMITH",
				"additional_info": map[string]any{"sex": "M", "eye_color": "BRN"},
			},
			hint: "ca_license.png",
		},
		{
			rec:  record.Record{"document_type": "ID", "full_name": "JANE Q DOE"},
			hint: "passport.jpg",
		},
		{
			rec:  record.Record{"additional_info": map[string]any{"issue_date": "01/01/2020"}},
			hint: "",
		},
	}

	for _, in := range inputs {
		once := PostProcess(in.rec, in.hint)
		twice := PostProcess(once, in.hint)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("PostProcess not idempotent:\n once  = %v\n twice = %v", once, twice)
		}
	}
}

func TestPostProcessWithReport(t *testing.T) {
	tests := []struct {
		name string
		in   record.Record
		hint record.SourceHint
		want []Correction
	}{
		{
			name: "nothing to do",
			in:   record.Record{"document_type": "ID", "first_name": "JANE"},
			want: nil,
		},
		{
			name: "california with number fix",
			in: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "California",
				"document_number": "DL 11234567",
			},
			hint: "license.png",
			want: []Correction{
				{Rule: RuleCalifornia, Field: "document_type", From: "Driver License", To: "California Driver's License"},
				{Rule: RuleDocumentNumber, Field: "document_number", From: "DL 11234567", To: "I1234567"},
			},
		},
		{
			name: "bare ca reported as weak",
			in: record.Record{
				"document_type":   "Driver License",
				"issuing_country": "Canada",
			},
			hint: "license.png",
			want: []Correction{
				{Rule: RuleCaliforniaWeak, Field: "document_type", From: "Driver License", To: "California Driver's License"},
			},
		},
		{
			name: "promotion and cleanup",
			in:   record.Record{"additional_info": map[string]any{"sex": "F"}},
			want: []Correction{
				{Rule: RulePromote, Field: "gender", To: "F"},
				{Rule: RuleDropAdditionalInfo, Field: "additional_info"},
			},
		},
		{
			name: "typo and split",
			in:   record.Record{"full_name": "JOHN CORDHOLDER"},
			want: []Correction{
				{Rule: RuleNameTypo, Field: "full_name", From: "JOHN CORDHOLDER", To: "JOHN CARDHOLDER"},
				{Rule: RuleNameSplit, Field: "first_name", To: "JOHN"},
				{Rule: RuleNameSplit, Field: "last_name", To: "CARDHOLDER"},
			},
		},
		{
			name: "already california is not reported",
			in: record.Record{
				"document_type":   "California Driver's License",
				"issuing_country": "California",
			},
			hint: "license.png",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := PostProcessWithReport(tt.in, tt.hint)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PostProcessWithReport() corrections = %+v, want %+v", got, tt.want)
			}
		})
	}
}
