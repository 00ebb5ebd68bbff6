package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/XayHanmonty/id-verification-poc/core/extractor"
	"github.com/XayHanmonty/id-verification-poc/core/overview"
	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/internal/imagefiles"
	"github.com/XayHanmonty/id-verification-poc/internal/jsonschema"
	"github.com/XayHanmonty/id-verification-poc/providers/observability"
	"github.com/XayHanmonty/id-verification-poc/providers/store"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

const (
	DefaultConcurrency = 4
	DefaultMaxTokens   = 1000
)

var (
	// ErrInvalidDirectory is returned when the input path is not a directory.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrNoImages is returned when the directory holds no supported images.
	ErrNoImages = errors.New("no image files found")
)

// Processor runs every image of a directory through a vision provider and
// the extractor.
type Processor struct {
	provider    vision.Provider
	extractor   *extractor.Extractor
	schema      *jsonschema.Schema
	prompt      string
	maxTokens   int
	temperature float32
	concurrency int
	writer      store.Writer
	observer    observability.Provider
	modelCost   *overview.ModelCost
}

// Option configures a Processor.
type Option func(*Processor)

// WithExtractor sets the extractor applied to each model response.
func WithExtractor(e *extractor.Extractor) Option {
	return func(p *Processor) { p.extractor = e }
}

// WithSchema sets the response schema sent with each request.
func WithSchema(s *jsonschema.Schema) Option {
	return func(p *Processor) { p.schema = s }
}

// WithPrompt replaces vision.DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(p *Processor) { p.prompt = prompt }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(p *Processor) { p.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(p *Processor) { p.temperature = t }
}

// WithConcurrency bounds the number of images processed at once. Values
// below one mean one.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n < 1 {
			n = 1
		}
		p.concurrency = n
	}
}

// WithWriter persists the results at the end of ProcessDirectory.
func WithWriter(w store.Writer) Option {
	return func(p *Processor) { p.writer = w }
}

// WithModelCost prices the token usage reported in Report.Overview.
func WithModelCost(cost overview.ModelCost) Option {
	return func(p *Processor) { p.modelCost = &cost }
}

// WithObserver sets the observer used for spans, metrics and logs. It is
// also placed in the context handed to the provider and the extractor.
func WithObserver(o observability.Provider) Option {
	return func(p *Processor) { p.observer = o }
}

// New creates a Processor around provider.
func New(provider vision.Provider, opts ...Option) *Processor {
	p := &Processor{
		provider:    provider,
		maxTokens:   DefaultMaxTokens,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = extractor.New()
	}
	return p
}

// Report summarizes one directory run.
type Report struct {
	RunID string
	Dir   string
	// Images are the image paths found, sorted.
	Images []string
	// Results holds the records of the images that succeeded, keyed by
	// file name.
	Results store.Results
	// Failures holds the error of each skipped image, keyed by file name.
	Failures map[string]error
	Elapsed  time.Duration
	// Overview holds tier counts, corrections and token usage.
	Overview *overview.Overview
}

// First returns the result of the first image, in directory order, that
// succeeded.
func (r *Report) First() (string, record.Record, bool) {
	for _, path := range r.Images {
		name := filepath.Base(path)
		if rec, ok := r.Results[name]; ok {
			return name, rec, true
		}
	}
	return "", nil, false
}

// ProcessImage extracts the record of a single image.
func (p *Processor) ProcessImage(ctx context.Context, path string) (record.Record, error) {
	ctx = p.withObserver(ctx)

	var span observability.Span
	if p.observer != nil {
		ctx, span = p.observer.StartSpan(ctx, observability.SpanBatchImage,
			observability.String(observability.AttrVisionImage, filepath.Base(path)),
		)
		defer span.End()
	}

	rec, err := p.processImage(ctx, path)
	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
	}
	return rec, err
}

func (p *Processor) processImage(ctx context.Context, path string) (record.Record, error) {
	file, err := imagefiles.Load(path)
	if err != nil {
		return nil, err
	}

	resp, err := p.provider.Describe(ctx, vision.Request{
		Image:       vision.ImageFromFile(file),
		Prompt:      p.prompt,
		Schema:      p.schema,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", file.Name, err)
	}

	res := p.extractor.Extract(ctx, resp.Content, record.HintFromPath(path))
	if ov := overview.FromContext(ctx); ov != nil {
		ov.IncludeUsage(resp.Usage)
		ov.AddExtraction(res.Tier.String(), res.IsRaw(), len(res.Corrections))
	}
	return res.Record, nil
}

// ProcessDirectory processes every image directly inside dir. Images that
// fail are logged and left out of the results, which then go to the writer
// even when empty. When ctx is done no new images are scheduled and the
// context error is returned with what was collected.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*Report, error) {
	ctx = p.withObserver(ctx)
	start := time.Now()

	report := &Report{
		RunID:    uuid.NewString(),
		Dir:      dir,
		Results:  store.Results{},
		Failures: map[string]error{},
		Overview: overview.New(p.modelCost),
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, dir)
	}

	images, err := imagefiles.Find(dir)
	if err != nil {
		return nil, err
	}
	report.Images = images

	var span observability.Span
	if p.observer != nil {
		ctx, span = p.observer.StartSpan(ctx, observability.SpanBatchRun,
			observability.String(observability.AttrBatchRunID, report.RunID),
			observability.String(observability.AttrBatchDir, dir),
			observability.Int(observability.AttrBatchImages, len(images)),
			observability.Int(observability.AttrBatchConcurrency, p.concurrency),
		)
		defer span.End()
	}

	if len(images) == 0 {
		p.warn(ctx, "no image files found", observability.String(observability.AttrBatchDir, dir))
		report.Elapsed = time.Since(start)
		return report, ErrNoImages
	}

	if p.observer != nil {
		p.observer.Info(ctx, "found image files",
			observability.String(observability.AttrBatchRunID, report.RunID),
			observability.Int(observability.AttrBatchImages, len(images)),
		)
	}

	report.Overview.StartExecution()
	ctx = report.Overview.ToContext(ctx)

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, path := range images {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			name := filepath.Base(path)
			rec, err := p.ProcessImage(gCtx, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures[name] = err
				report.Overview.AddFailure()
				p.failed(gCtx, name, err)
				return nil
			}
			report.Results[name] = rec
			return nil
		})
	}
	_ = g.Wait()

	report.Overview.EndExecution()
	report.Elapsed = time.Since(start)
	summary := report.Overview.Summary()
	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrBatchSucceeded, len(report.Results)),
			observability.Int(observability.AttrBatchFailed, len(report.Failures)),
		)
	}
	if p.observer != nil {
		p.observer.Info(ctx, "batch finished",
			observability.String(observability.AttrBatchRunID, report.RunID),
			observability.Int(observability.AttrBatchSucceeded, len(report.Results)),
			observability.Int(observability.AttrBatchFailed, len(report.Failures)),
			observability.Int(observability.AttrBatchRaw, summary.Raw),
			observability.Int(observability.AttrBatchTokens, summary.Usage.TotalTokens),
			observability.Float64(observability.AttrBatchCost, summary.TotalCost),
			observability.Duration(observability.AttrDuration, report.Elapsed),
		)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if p.writer != nil {
		if err := p.writer.Write(ctx, report.Results); err != nil {
			return report, fmt.Errorf("save results: %w", err)
		}
	}
	return report, nil
}

func (p *Processor) withObserver(ctx context.Context) context.Context {
	if p.observer == nil || observability.ObserverFromContext(ctx) != nil {
		return ctx
	}
	return observability.ContextWithObserver(ctx, p.observer)
}

func (p *Processor) failed(ctx context.Context, name string, err error) {
	if p.observer == nil {
		return
	}
	p.observer.Counter(observability.MetricBatchImageFailures).Add(ctx, 1)
	p.observer.Error(ctx, "image skipped",
		observability.String(observability.AttrVisionImage, name),
		observability.Error(err),
	)
}

func (p *Processor) warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	if p.observer != nil {
		p.observer.Warn(ctx, msg, attrs...)
	}
}
