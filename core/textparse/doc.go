// Package textparse recovers an extraction record from prose. It is the
// last rung of the response ladder: when no JSON can be decoded, labelled
// lines such as "DOB: 01/02/1990" or "**Address**: ..." are matched against
// the field tables of package fields.
//
// Sparse results are not trusted. Anything below [DefaultMinFields]
// populated keys comes back as {"raw_text": ...} so callers can tell a weak
// parse from a real one by shape alone.
package textparse
