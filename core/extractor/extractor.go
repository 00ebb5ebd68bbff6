package extractor

import (
	"context"
	"strings"

	"github.com/XayHanmonty/id-verification-poc/core/normalize"
	"github.com/XayHanmonty/id-verification-poc/core/parse"
	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/internal/jsonschema"
	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/observability"
)

// Extractor turns raw model responses into normalized records.
type Extractor struct {
	interpreter *parse.Interpreter
	legacy      bool
	validator   *jsonschema.Validator
	observer    observability.Provider
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithInterpreter replaces the fallback ladder used when the response is
// not a bare JSON object.
func WithInterpreter(i *parse.Interpreter) Option {
	return func(e *Extractor) {
		e.interpreter = i
	}
}

// WithLegacyNormalization post-processes direct JSON responses only.
// Records recovered by the fallback ladder are returned as parsed.
func WithLegacyNormalization() Option {
	return func(e *Extractor) {
		e.legacy = true
	}
}

// WithSchemaValidation checks every JSON-decoded record against v before
// post-processing. Violations are reported in Result.SchemaErr and logged;
// they never reject the record.
func WithSchemaValidation(v *jsonschema.Validator) Option {
	return func(e *Extractor) {
		e.validator = v
	}
}

// WithObserver sets the observer. Without one the observer in the context
// passed to Extract is used, if any.
func WithObserver(o observability.Provider) Option {
	return func(e *Extractor) {
		e.observer = o
	}
}

// New creates an Extractor with the default ladder and uniform
// normalization.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.interpreter == nil {
		e.interpreter = parse.NewInterpreter()
	}
	return e
}

// Result is the outcome of one extraction.
type Result struct {
	Record record.Record
	// Tier is the rung that produced Record; TierDirect when the whole
	// response decoded as JSON.
	Tier parse.Tier
	// Normalized reports whether the post-processor ran.
	Normalized  bool
	Corrections []normalize.Correction
	// SchemaErr holds the schema violation of a JSON record, if validated.
	SchemaErr error
	// Attempts are the ladder rungs that failed before Tier succeeded.
	Attempts []parse.Outcome
}

// IsRaw reports whether nothing could be structured.
func (r Result) IsRaw() bool {
	return r.Record.IsRaw()
}

// Extract interprets content. It never fails: an unusable response comes
// back as a raw_text record.
func (e *Extractor) Extract(ctx context.Context, content string, hint record.SourceHint) Result {
	observer := e.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanExtract,
			observability.String(observability.AttrExtractSource, string(hint)),
			observability.Int(observability.AttrExtractResponseLength, len(content)),
		)
		defer span.End()
	}

	content = strings.TrimSpace(content)

	var res Result
	if rec, err := parse.DecodeObject(content); err == nil {
		res = Result{Record: rec, Tier: parse.TierDirect}
	} else {
		out := e.interpreter.Parse(content, hint)
		res = Result{Record: out.Record, Tier: out.Tier, Attempts: out.Attempts}
	}

	if e.validator != nil && res.Tier.IsJSON() {
		res.SchemaErr = e.validator.Validate(res.Record)
	}

	if e.shouldNormalize(res) {
		res.Record, res.Corrections = normalize.PostProcessWithReport(res.Record, hint)
		res.Normalized = true
	}

	if observer != nil {
		e.observe(ctx, observer, span, content, hint, res)
	}
	return res
}

func (e *Extractor) shouldNormalize(res Result) bool {
	if res.Record.IsRaw() {
		return false
	}
	if e.legacy {
		return res.Tier == parse.TierDirect
	}
	return true
}

func (e *Extractor) observe(ctx context.Context, observer observability.Provider, span observability.Span, content string, hint record.SourceHint, res Result) {
	tier := observability.String(observability.AttrExtractTier, res.Tier.String())

	for _, attempt := range res.Attempts {
		if attempt.Err == nil {
			continue
		}
		span.AddEvent(observability.EventTierFailed,
			observability.String(observability.AttrExtractTier, attempt.Tier.String()),
			observability.Error(attempt.Err),
		)
	}

	span.SetAttributes(
		tier,
		observability.Int(observability.AttrExtractFields, len(res.Record)),
		observability.Int(observability.AttrExtractAttempts, len(res.Attempts)),
		observability.Bool(observability.AttrExtractRaw, res.IsRaw()),
		observability.Bool(observability.AttrExtractNormalized, res.Normalized),
	)
	observer.Counter(observability.MetricExtractCount).Add(ctx, 1, tier)

	if res.IsRaw() {
		observer.Counter(observability.MetricExtractRawCount).Add(ctx, 1)
		observer.Warn(ctx, "response could not be structured",
			observability.String(observability.AttrExtractSource, string(hint)),
			observability.String(observability.AttrExtractResponse, utils.TruncateString(content, utils.DefaultMaxStringLength)),
		)
	}

	if res.SchemaErr != nil {
		observer.Counter(observability.MetricSchemaViolations).Add(ctx, 1)
		observer.Warn(ctx, "record does not match schema",
			tier,
			observability.String(observability.AttrSchemaViolation, res.SchemaErr.Error()),
		)
	}

	for _, c := range res.Corrections {
		attrs := []observability.Attribute{
			observability.String(observability.AttrCorrectionRule, string(c.Rule)),
			observability.String(observability.AttrCorrectionField, c.Field),
			observability.String(observability.AttrCorrectionFrom, c.From),
			observability.String(observability.AttrCorrectionTo, c.To),
		}
		span.AddEvent(observability.EventCorrection, attrs...)
		observer.Counter(observability.MetricCorrectionCount).Add(ctx, 1,
			observability.String(observability.AttrCorrectionRule, string(c.Rule)))
		observer.Debug(ctx, "field corrected", attrs...)
	}
}
