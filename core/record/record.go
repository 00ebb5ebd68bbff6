package record

import (
	"path/filepath"
	"strings"
)

// Canonical top-level keys of an extraction record.
const (
	KeyDocumentType   = "document_type"
	KeyIssuingCountry = "issuing_country"
	KeyFullName       = "full_name"
	KeyFirstName      = "first_name"
	KeyLastName       = "last_name"
	KeyAddress        = "address"
	KeyDateOfBirth    = "date_of_birth"
	KeyExpirationDate = "expiration_date"
	KeyIssueDate      = "issue_date"
	KeyGender         = "gender"
	KeyDocumentNumber = "document_number"
	KeyAdditionalInfo = "additional_info"

	// KeyRawText marks a record that could not be structured.
	KeyRawText = "raw_text"
)

// Secondary keys, stored inside additional_info.
const (
	KeyHeight    = "height"
	KeyEyeColor  = "eye_color"
	KeyHairColor = "hair_color"
	KeyWeight    = "weight"
	KeyClass     = "class"
	KeySex       = "sex"
)

// Record maps canonical field names to values. Values are strings, except
// additional_info which holds a map[string]any of secondary attributes.
// Records decoded from model JSON may carry other JSON types; accessors
// treat those as empty.
type Record map[string]any

// Raw builds the fallback record returned when text cannot be structured.
func Raw(text string) Record {
	return Record{KeyRawText: text}
}

// IsRaw reports whether r is the unstructured fallback record.
func (r Record) IsRaw() bool {
	_, ok := r[KeyRawText]
	return ok
}

// Has reports whether key is present, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value at key when it is a string, "" otherwise.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// AdditionalInfo returns the nested secondary-attribute map, or nil when it
// is absent or not an object.
func (r Record) AdditionalInfo() map[string]any {
	info, _ := r[KeyAdditionalInfo].(map[string]any)
	return info
}

// Clone returns a deep copy of r. Nested maps and slices are copied so the
// clone can be mutated without touching the original.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Record:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// IsEmptyValue mirrors JSON "falsy" semantics for record values: nil, "",
// empty maps and empty slices are empty.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case Record:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case bool:
		return !t
	default:
		return false
	}
}

// SourceHint is the lowercased base name of the image a response came from.
// It is a weak signal for document-type and number-format heuristics only.
type SourceHint string

// HintFromPath builds a SourceHint from an image path.
func HintFromPath(path string) SourceHint {
	if path == "" {
		return ""
	}
	return SourceHint(strings.ToLower(filepath.Base(path)))
}

// Contains reports whether the hint contains substr, ignoring case.
func (h SourceHint) Contains(substr string) bool {
	if h.IsEmpty() {
		return false
	}
	return strings.Contains(strings.ToLower(string(h)), strings.ToLower(substr))
}

// IsEmpty reports whether no hint was supplied.
func (h SourceHint) IsEmpty() bool {
	return h == ""
}
