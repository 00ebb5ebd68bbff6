package textparse

import (
	"regexp"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/XayHanmonty/id-verification-poc/core/docnumber"
	"github.com/XayHanmonty/id-verification-poc/core/fields"
	"github.com/XayHanmonty/id-verification-poc/core/record"
)

// DefaultMinFields is the number of populated top-level keys a record needs
// before it is trusted over the raw text.
const DefaultMinFields = 3

var htmlTag = regexp.MustCompile(`(?i)<(b|strong|em|i|p|br|div|span|table|tr|td|th|li|ul|ol|h[1-6])\b[^>]*>`)

type options struct {
	minFields int
	html      bool
	unicode   bool
	topLevel  []fields.Field
	secondary []fields.Field
}

// Option configures ExtractStructuredData.
type Option func(*options)

// WithMinFields overrides DefaultMinFields. Values below 1 are ignored.
func WithMinFields(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minFields = n
		}
	}
}

// WithHTMLConversion converts HTML-looking responses to markdown before
// matching, so bold tags become "**Label**" and hit the bold patterns.
func WithHTMLConversion() Option {
	return func(o *options) {
		o.html = true
	}
}

// WithUnicodeNormalization applies NFKC before matching, folding full-width
// letters and colons into their ASCII forms.
func WithUnicodeNormalization() Option {
	return func(o *options) {
		o.unicode = true
	}
}

// WithSchema replaces the field tables used for extraction.
func WithSchema(topLevel, secondary []fields.Field) Option {
	return func(o *options) {
		o.topLevel = topLevel
		o.secondary = secondary
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		minFields: DefaultMinFields,
		topLevel:  fields.TopLevel,
		secondary: fields.Secondary,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ExtractStructuredData builds a record from free text by running the field
// extractor over every known field. Secondary attributes land in
// additional_info. When the hint points at a license, the I/1 misread fix
// is applied to the document number. Records with fewer than the minimum
// number of populated keys are replaced by a raw_text record holding the
// original text.
func ExtractStructuredData(text string, hint record.SourceHint, opts ...Option) record.Record {
	o := applyOptions(opts...)
	source := prepare(text, o)

	rec := record.Record{}
	for _, f := range o.topLevel {
		if v, ok := fields.Extract(source, f); ok {
			rec[f.Name] = v
		}
	}

	info := map[string]any{}
	for _, f := range o.secondary {
		if v, ok := fields.Extract(source, f); ok {
			info[f.Name] = v
		}
	}
	if len(info) > 0 {
		rec[record.KeyAdditionalInfo] = info
	}

	if num := rec.String(record.KeyDocumentNumber); num != "" && hint.Contains("license") {
		rec[record.KeyDocumentNumber] = docnumber.FixLicenseMisread(num)
	}

	if len(rec) < o.minFields {
		return record.Raw(text)
	}
	return rec
}

func prepare(text string, o *options) string {
	source := text
	if o.unicode {
		source = norm.NFKC.String(source)
	}
	if o.html && LooksLikeHTML(source) {
		if md, err := htmltomarkdown.ConvertString(source); err == nil {
			source = md
		}
	}
	return source
}

// LooksLikeHTML reports whether text contains common HTML markup.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}
