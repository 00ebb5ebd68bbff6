// Package record defines the extraction record produced for every processed
// ID image, the canonical field keys, the [SourceHint] derived from the
// image filename, and [IDDocument], the schema requested from the vision
// model.
//
// Records are plain maps so that whatever the model returns survives
// decoding untouched; the helpers here treat non-string values as empty
// when a string is expected, which keeps every downstream rule total.
package record
