// Package normalize applies document-specific corrections to an extraction
// record: document type from the filename hint, California license refinement
// and number fixes, promotion of fields the model nested under
// additional_info, and name cleanup.
//
// Rules run in a fixed order on a deep copy of the record. Nothing here logs
// or fails; [PostProcessWithReport] returns the list of corrections so the
// caller can decide what to surface.
package normalize
