// Package docnumber holds the document-number corrections applied to
// driver's licenses, where vision models routinely read a leading "I" as
// "1" or "IL".
package docnumber

import (
	"strings"
	"unicode/utf8"
)

// californiaPrefixes are label fragments models prepend to California
// license numbers.
var californiaPrefixes = []string{"DL", "LIC"}

// FixLicenseMisread repairs the I/1 confusion at the start of a license
// number: "11…" (7+ chars) becomes "I1…" and "IL…" (8+ chars) becomes "I…".
func FixLicenseMisread(num string) string {
	n := utf8.RuneCountInString(num)
	switch {
	case strings.HasPrefix(num, "11") && n >= 7:
		return "I" + num[1:]
	case strings.HasPrefix(num, "IL") && n >= 8:
		return "I" + num[2:]
	default:
		return num
	}
}

// NormalizeCalifornia normalizes a California driver's license number.
// A leading "DL" or "LIC" label is stripped (case-insensitive), the
// misread fixes of FixLicenseMisread are applied, and a bare 7-character
// number gets the missing "I" prefix.
func NormalizeCalifornia(num string) string {
	num = StripLabelPrefix(num)

	if fixed := FixLicenseMisread(num); fixed != num {
		return fixed
	}
	if !strings.HasPrefix(num, "I") && utf8.RuneCountInString(num) == 7 {
		return "I" + num
	}
	return num
}

// StripLabelPrefix removes a leading "DL" or "LIC" label and the whitespace
// after it.
func StripLabelPrefix(num string) string {
	upper := strings.ToUpper(num)
	for _, p := range californiaPrefixes {
		if strings.HasPrefix(upper, p) {
			return strings.TrimSpace(num[len(p):])
		}
	}
	return num
}
