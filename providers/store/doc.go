// Package store persists batch extraction results.
//
// The jsonfile subpackage writes the extraction_results.json artifact and the
// xlsx subpackage writes a workbook with one row per image.
package store
