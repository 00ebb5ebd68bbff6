package overview

import (
	"context"
	"sync"
	"time"

	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

type contextKey string

const overviewContextKey contextKey = "overview"

// Overview collects the statistics of one run. It is safe for concurrent use.
type Overview struct {
	mu sync.Mutex

	images      int
	failed      int
	raw         int
	corrections int
	tiers       map[string]int
	usage       vision.Usage
	modelCost   *ModelCost
	start, end  time.Time
}

// New returns an empty Overview. A nil cost leaves the summary unpriced.
func New(cost *ModelCost) *Overview {
	return &Overview{tiers: map[string]int{}, modelCost: cost}
}

// FromContext returns the Overview stored in ctx, or nil.
func FromContext(ctx context.Context) *Overview {
	if ctx == nil {
		return nil
	}
	o, _ := ctx.Value(overviewContextKey).(*Overview)
	return o
}

// ToContext stores the Overview in ctx.
func (o *Overview) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, overviewContextKey, o)
}

// StartExecution marks the start of the run.
func (o *Overview) StartExecution() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.start = time.Now()
}

// EndExecution marks the end of the run.
func (o *Overview) EndExecution() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.end = time.Now()
}

// IncludeUsage adds the token usage of one vision response. Nil is ignored.
func (o *Overview) IncludeUsage(usage *vision.Usage) {
	if usage == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.usage.PromptTokens += usage.PromptTokens
	o.usage.CompletionTokens += usage.CompletionTokens
	o.usage.TotalTokens += usage.TotalTokens
}

// AddExtraction records one interpreted image.
func (o *Overview) AddExtraction(tier string, raw bool, corrections int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.images++
	if o.tiers == nil {
		o.tiers = map[string]int{}
	}
	o.tiers[tier]++
	if raw {
		o.raw++
	}
	o.corrections += corrections
}

// AddFailure records one skipped image.
func (o *Overview) AddFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.images++
	o.failed++
}

// Summary is a snapshot of an Overview.
type Summary struct {
	Images      int            `json:"images"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Raw         int            `json:"raw"`
	Corrections int            `json:"corrections"`
	Tiers       map[string]int `json:"tiers,omitempty"`
	Usage       vision.Usage   `json:"usage"`
	Duration    time.Duration  `json:"duration"`

	InputCost  float64 `json:"input_cost,omitempty"`
	OutputCost float64 `json:"output_cost,omitempty"`
	TotalCost  float64 `json:"total_cost,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

// Summary returns the current totals, priced when a ModelCost is set.
func (o *Overview) Summary() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Summary{
		Images:      o.images,
		Succeeded:   o.images - o.failed,
		Failed:      o.failed,
		Raw:         o.raw,
		Corrections: o.corrections,
		Tiers:       make(map[string]int, len(o.tiers)),
		Usage:       o.usage,
	}
	for tier, n := range o.tiers {
		s.Tiers[tier] = n
	}
	if !o.start.IsZero() && !o.end.IsZero() {
		s.Duration = o.end.Sub(o.start)
	}
	if o.modelCost != nil && !o.modelCost.IsZero() {
		s.InputCost = o.modelCost.CalculateInputCost(o.usage.PromptTokens)
		s.OutputCost = o.modelCost.CalculateOutputCost(o.usage.CompletionTokens)
		s.TotalCost = s.InputCost + s.OutputCost
		s.Currency = "USD"
	}
	return s
}
