// Package extractor turns the raw text of a vision model into a normalized
// ID-document record.
//
// A response that is a bare JSON object is decoded directly. Anything else
// goes down the fallback ladder of core/parse (fenced JSON, embedded JSON,
// optionally repaired JSON, then labelled text). Structured records are then
// corrected by core/normalize:
//
//	ex := extractor.New(extractor.WithObserver(observer))
//	res := ex.Extract(ctx, resp.Content, record.HintFromPath(path))
//	if res.IsRaw() {
//	    // nothing could be structured; res.Record holds raw_text
//	}
//
// With WithLegacyNormalization only direct JSON is corrected.
package extractor
