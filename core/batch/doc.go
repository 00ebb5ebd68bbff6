// Package batch extracts ID-document records from every image in a
// directory.
//
// Images are processed concurrently up to a fixed limit. A failing image is
// logged and skipped; it never aborts the run. Each run gets a UUID so its
// log lines can be correlated, and an overview.Overview that counts tiers,
// corrections and tokens.
package batch
