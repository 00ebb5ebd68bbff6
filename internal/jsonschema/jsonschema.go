package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema produced from Go structs. It is sent
// to vision models as the response format and compiled by NewValidator.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
}

// GenerateJSONSchema derives a Schema from T.
//
// Struct fields use their json names. A field is required when it is neither
// a pointer nor omitempty, or when its jsonschema tag says "required". The
// jsonschema tag also accepts enum=value (repeatable) and description=text;
// description must come last because it takes the rest of the tag, commas
// included:
//
//	Name string `json:"name" jsonschema:"required,description=Full name, as printed"`
func GenerateJSONSchema[T any]() (*Schema, error) {
	return schemaFor(reflect.TypeFor[T]())
}

func schemaFor(t reflect.Type) (*Schema, error) {
	switch t.Kind() {
	case reflect.Pointer:
		return schemaFor(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Slice, reflect.Array:
		items, err := schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %v is not string", t.Key())
		}
		values, err := schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Interface:
		// Any JSON value.
		return &Schema{}, nil
	case reflect.Struct:
		return structSchema(t)
	default:
		return nil, fmt.Errorf("unsupported type %v", t)
	}
}

func structSchema(t reflect.Type) (*Schema, error) {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fs, err := schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		requiredByTag, err := applyTag(field.Type, field.Tag.Get("jsonschema"), fs)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		s.Properties[name] = fs
		if (field.Type.Kind() != reflect.Pointer && !omitEmpty) || requiredByTag {
			s.Required = append(s.Required, name)
		}
	}
	return s, nil
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applyTag reads a jsonschema struct tag into s and reports whether it marks
// the field required.
func applyTag(fieldType reflect.Type, tag string, s *Schema) (bool, error) {
	required := false
	for tag != "" {
		if rest, ok := strings.CutPrefix(tag, "description="); ok {
			s.Description = rest
			break
		}

		item, rest, _ := strings.Cut(tag, ",")
		tag = rest

		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "enum" && hasValue:
			v, err := enumValue(fieldType, value)
			if err != nil {
				return false, err
			}
			s.Enum = append(s.Enum, v)
		}
	}
	return required, nil
}

func enumValue(t reflect.Type, value string) (any, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("enum value %q: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("enum value %q: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("enum value %q: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum not supported for %v", t)
	}
}

// JSONString encodes the schema, indented when indent is true.
func (s *Schema) JSONString(indent ...bool) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(indent) > 0 && indent[0] {
		b, err = json.MarshalIndent(s, "", "  ")
	} else {
		b, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(b), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
