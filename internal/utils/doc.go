// Package utils holds small helpers shared by the vision clients and the
// stores: a JSON POST round-trip with span events, string truncation for
// log previews, and pointer construction.
package utils
