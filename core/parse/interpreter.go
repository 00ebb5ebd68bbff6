package parse

import (
	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/core/textparse"
)

// Interpreter runs an ordered ladder of strategies and returns the first
// successful outcome.
type Interpreter struct {
	strategies []Strategy
}

type interpreterConfig struct {
	repair      bool
	textOptions []textparse.Option
	strategies  []Strategy
}

// Option configures an Interpreter.
type Option func(*interpreterConfig)

// WithRepair adds the jsonrepair rung between the embedded-object and
// unstructured-text rungs.
func WithRepair() Option {
	return func(c *interpreterConfig) {
		c.repair = true
	}
}

// WithTextOptions forwards options to the unstructured-text rung.
func WithTextOptions(opts ...textparse.Option) Option {
	return func(c *interpreterConfig) {
		c.textOptions = append(c.textOptions, opts...)
	}
}

// WithStrategies replaces the whole ladder. The unstructured rung is not
// appended automatically.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *interpreterConfig) {
		c.strategies = strategies
	}
}

// NewInterpreter builds the default ladder: fenced, embedded, optionally
// repaired, then unstructured text.
func NewInterpreter(opts ...Option) *Interpreter {
	cfg := &interpreterConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.strategies != nil {
		return &Interpreter{strategies: cfg.strategies}
	}

	ladder := []Strategy{Fenced(), Embedded()}
	if cfg.repair {
		ladder = append(ladder, Repaired())
	}
	ladder = append(ladder, Unstructured(cfg.textOptions...))
	return &Interpreter{strategies: ladder}
}

// Tiers returns the tiers of the ladder in order.
func (i *Interpreter) Tiers() []Tier {
	tiers := make([]Tier, 0, len(i.strategies))
	for _, s := range i.strategies {
		tiers = append(tiers, s.Tier())
	}
	return tiers
}

// Parse walks the ladder. If every strategy fails the content comes back
// as a raw_text record under TierNone.
func (i *Interpreter) Parse(content string, hint record.SourceHint) Outcome {
	var attempts []Outcome
	for _, s := range i.strategies {
		out := s.Parse(content, hint)
		if out.OK {
			out.Attempts = attempts
			return out
		}
		attempts = append(attempts, out)
	}
	return Outcome{
		Record:   record.Raw(content),
		Tier:     TierNone,
		OK:       true,
		Attempts: attempts,
	}
}
