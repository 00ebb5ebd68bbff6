// Package jsonfile writes batch results to extraction_results.json.
package jsonfile
