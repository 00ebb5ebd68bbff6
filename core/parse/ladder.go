package parse

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/core/textparse"
)

// Tier identifies which rung of the ladder produced a record.
type Tier int

const (
	TierNone Tier = iota
	// TierDirect is the raw response decoded as-is.
	TierDirect
	// TierFenced is the response with markdown code fences stripped.
	TierFenced
	// TierEmbedded is the widest {...} substring of the response.
	TierEmbedded
	// TierRepaired is the embedded candidate after JSON repair.
	TierRepaired
	// TierUnstructured is labelled-text extraction, including the raw_text fallback.
	TierUnstructured
)

func (t Tier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierFenced:
		return "fenced"
	case TierEmbedded:
		return "embedded"
	case TierRepaired:
		return "repaired"
	case TierUnstructured:
		return "unstructured"
	default:
		return "none"
	}
}

// IsJSON reports whether the tier decoded a JSON object.
func (t Tier) IsJSON() bool {
	return t >= TierDirect && t <= TierRepaired
}

// Outcome is the result of one parse strategy. Exactly one of Record (with
// OK set) or Err is meaningful.
type Outcome struct {
	Record record.Record
	Tier   Tier
	OK     bool
	Err    error

	// Attempts holds the failed outcomes that preceded this one.
	Attempts []Outcome
}

func succeeded(tier Tier, rec record.Record) Outcome {
	return Outcome{Record: rec, Tier: tier, OK: true}
}

func failed(tier Tier, err error) Outcome {
	return Outcome{Tier: tier, Err: err}
}

// Strategy is one rung of the fallback ladder.
type Strategy interface {
	Tier() Tier
	Parse(content string, hint record.SourceHint) Outcome
}

// Fenced strips markdown code fences and decodes the rest.
func Fenced() Strategy { return fencedStrategy{} }

type fencedStrategy struct{}

func (fencedStrategy) Tier() Tier { return TierFenced }

func (fencedStrategy) Parse(content string, _ record.SourceHint) Outcome {
	rec, err := DecodeObject(StripCodeFences(content))
	if err != nil {
		return failed(TierFenced, err)
	}
	return succeeded(TierFenced, rec)
}

// Embedded decodes the widest {...} substring of the response.
func Embedded() Strategy { return embeddedStrategy{} }

type embeddedStrategy struct{}

func (embeddedStrategy) Tier() Tier { return TierEmbedded }

func (embeddedStrategy) Parse(content string, _ record.SourceHint) Outcome {
	candidate, ok := EmbeddedObject(content)
	if !ok {
		return failed(TierEmbedded, ErrNoCandidate)
	}
	rec, err := DecodeObject(candidate)
	if err != nil {
		return failed(TierEmbedded, err)
	}
	return succeeded(TierEmbedded, rec)
}

// Repaired runs jsonrepair over the embedded candidate, which also covers
// responses truncated before the closing brace, and unwraps schema-style
// {"type", "value"} envelopes.
func Repaired() Strategy { return repairedStrategy{} }

type repairedStrategy struct{}

func (repairedStrategy) Tier() Tier { return TierRepaired }

func (repairedStrategy) Parse(content string, _ record.SourceHint) Outcome {
	stripped := StripCodeFences(content)
	candidate, ok := EmbeddedObject(stripped)
	if !ok {
		start := strings.IndexByte(stripped, '{')
		if start == -1 {
			return failed(TierRepaired, ErrNoCandidate)
		}
		candidate = stripped[start:]
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return failed(TierRepaired, fmt.Errorf("repair json: %w", err))
	}
	rec, err := DecodeObject(repaired)
	if err != nil {
		return failed(TierRepaired, err)
	}
	if unwrapped, changed := unwrapSchemaValues(rec); changed {
		rec = unwrapped
	}
	return succeeded(TierRepaired, rec)
}

// Unstructured extracts labelled fields from prose. It never fails.
func Unstructured(opts ...textparse.Option) Strategy {
	return unstructuredStrategy{opts: opts}
}

type unstructuredStrategy struct {
	opts []textparse.Option
}

func (unstructuredStrategy) Tier() Tier { return TierUnstructured }

func (s unstructuredStrategy) Parse(content string, hint record.SourceHint) Outcome {
	return succeeded(TierUnstructured, textparse.ExtractStructuredData(content, hint, s.opts...))
}
