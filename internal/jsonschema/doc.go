// Package jsonschema generates JSON Schema documents from Go structs and
// validates decoded JSON against them.
//
// [GenerateJSONSchema] builds the schema of the document requested from the
// vision model; [NewValidator] compiles it with
// github.com/santhosh-tekuri/jsonschema/v5 so that model output can be
// checked against the same contract.
package jsonschema
