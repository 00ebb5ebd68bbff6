// Command idextract extracts ID-document fields from every image in a
// directory with a vision model and saves them as JSON (and optionally XLSX).
//
//	FIREWORKS_API_KEY=... idextract -dir ../data/images -out ../output
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/XayHanmonty/id-verification-poc/core/batch"
	"github.com/XayHanmonty/id-verification-poc/core/extractor"
	"github.com/XayHanmonty/id-verification-poc/core/overview"
	"github.com/XayHanmonty/id-verification-poc/core/parse"
	"github.com/XayHanmonty/id-verification-poc/core/record"
	"github.com/XayHanmonty/id-verification-poc/core/textparse"
	"github.com/XayHanmonty/id-verification-poc/internal/config"
	"github.com/XayHanmonty/id-verification-poc/internal/jsonschema"
	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/observability/slogobs"
	"github.com/XayHanmonty/id-verification-poc/providers/store"
	"github.com/XayHanmonty/id-verification-poc/providers/store/jsonfile"
	"github.com/XayHanmonty/id-verification-poc/providers/store/xlsx"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
	"github.com/XayHanmonty/id-verification-poc/providers/vision/gemini"
	"github.com/XayHanmonty/id-verification-poc/providers/vision/middleware"
	"github.com/XayHanmonty/id-verification-poc/providers/vision/openai"
)

const (
	defaultDir    = "../data/images"
	defaultOutDir = "../output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	dir         string
	out         string
	provider    string
	xlsx        bool
	concurrency int
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("idextract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.dir, "dir", defaultDir, "directory containing ID document images")
	fs.StringVar(&opts.out, "out", defaultOutDir, "output directory for extraction results")
	fs.StringVar(&opts.provider, "provider", cfg.Vision.Provider, "vision provider: openai or gemini")
	fs.BoolVar(&opts.xlsx, "xlsx", false, "also write extraction_results.xlsx")
	fs.IntVar(&opts.concurrency, "concurrency", cfg.Concurrency, "images processed in parallel")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return 2
	}
	if opts.provider != cfg.Vision.Provider {
		cfg.Vision.Provider = opts.provider
		cfg.Vision.Model = ""
	}
	cfg.Concurrency = opts.concurrency

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	observer := slogobs.New(slogobs.WithOutput(stderr))

	retries := cfg.Vision.MaxRetries
	if retries == 0 {
		retries = -1
	}
	provider := vision.Chain(newProvider(cfg),
		middleware.NewLoggingMiddleware(observer.Logger(), middleware.LogLevelStandard),
		middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: retries}),
		middleware.NewTimeoutMiddleware(cfg.Vision.Timeout),
	)
	schema, err := jsonschema.GenerateJSONSchema[record.IDDocument]()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ex, err := newExtractor(cfg, schema)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	writers := []store.Writer{jsonfile.New(opts.out)}
	if opts.xlsx {
		writers = append(writers, xlsx.New(opts.out))
	}

	batchOpts := []batch.Option{
		batch.WithExtractor(ex),
		batch.WithSchema(schema),
		batch.WithMaxTokens(cfg.Vision.MaxTokens),
		batch.WithTemperature(cfg.Vision.Temperature),
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithWriter(store.Multi(writers...)),
		batch.WithObserver(observer),
	}
	if cfg.Vision.InputCostPerMillion > 0 || cfg.Vision.OutputCostPerMillion > 0 {
		batchOpts = append(batchOpts, batch.WithModelCost(overview.ModelCost{
			InputCostPerMillion:  cfg.Vision.InputCostPerMillion,
			OutputCostPerMillion: cfg.Vision.OutputCostPerMillion,
		}))
	}
	processor := batch.New(provider, batchOpts...)

	fmt.Fprintf(stdout, "Processing directory: %s\n", opts.dir)
	report, err := processor.ProcessDirectory(ctx, opts.dir)
	switch {
	case errors.Is(err, batch.ErrNoImages):
		fmt.Fprintln(stdout, "Warning: No results extracted")
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if len(report.Results) == 0 {
		fmt.Fprintln(stdout, "Warning: No results extracted")
		return 1
	}

	fmt.Fprintf(stdout, "Processed %d images successfully\n", len(report.Results))
	name, rec, _ := report.First()
	fmt.Fprintf(stdout, "Sample extraction from %s:\n%s\n", name, utils.JSONToString(rec, true))
	return 0
}

func newProvider(cfg *config.Config) vision.Provider {
	httpClient := &http.Client{Timeout: cfg.Vision.Timeout}

	switch cfg.Vision.Provider {
	case config.ProviderGemini:
		p := gemini.New().WithAPIKey(cfg.Vision.GeminiKey).WithMaxAttempts(1)
		if cfg.Vision.Model != "" {
			p.WithModel(cfg.Vision.Model)
		}
		return p
	default:
		p := openai.New().
			WithAPIKey(cfg.Vision.FireworksKey).
			WithBaseURL(cfg.Vision.BaseURL).
			WithHttpClient(httpClient)
		if cfg.Vision.Model != "" {
			p.WithModel(cfg.Vision.Model)
		}
		return p
	}
}

func newExtractor(cfg *config.Config, schema *jsonschema.Schema) (*extractor.Extractor, error) {
	var parseOpts []parse.Option
	if cfg.Extraction.JSONRepair {
		parseOpts = append(parseOpts, parse.WithRepair())
	}
	textOpts := []textparse.Option{textparse.WithUnicodeNormalization()}
	if cfg.Extraction.HTMLToMarkdown {
		textOpts = append(textOpts, textparse.WithHTMLConversion())
	}
	parseOpts = append(parseOpts, parse.WithTextOptions(textOpts...))

	opts := []extractor.Option{extractor.WithInterpreter(parse.NewInterpreter(parseOpts...))}
	if !cfg.Extraction.NormalizeFallbacks {
		opts = append(opts, extractor.WithLegacyNormalization())
	}
	if cfg.Extraction.ValidateSchema {
		validator, err := jsonschema.NewValidator(schema)
		if err != nil {
			return nil, fmt.Errorf("schema validator: %w", err)
		}
		opts = append(opts, extractor.WithSchemaValidation(validator))
	}
	return extractor.New(opts...), nil
}
