package gemini

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/observability"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

const (
	providerName       = "gemini"
	defaultModel       = "gemini-2.5-flash"
	defaultMaxAttempts = 3
	retryBackoff       = 300 * time.Millisecond
)

// contentGenerator is the part of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type modelFactory func(ctx context.Context, apiKey, model string, request vision.Request) (contentGenerator, io.Closer, error)

// Provider implements vision.Provider with the Gemini SDK.
type Provider struct {
	apiKey      string
	model       string
	maxAttempts int
	newModel    modelFactory
}

var _ vision.Provider = (*Provider)(nil)

// New creates a provider configured from the environment:
//   - GEMINI_API_KEY: API key for authentication
//   - IDX_MODEL: model name (optional)
func New() *Provider {
	model := os.Getenv("IDX_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		apiKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		model:       model,
		maxAttempts: defaultMaxAttempts,
		newModel:    newGenerativeModel,
	}
}

// WithAPIKey sets the API key.
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = strings.TrimSpace(apiKey)
	return p
}

// WithModel sets the model name.
func (p *Provider) WithModel(model string) *Provider {
	p.model = strings.TrimSpace(model)
	return p
}

// WithMaxAttempts sets how many times a failing call is tried. Values below
// one are treated as one.
func (p *Provider) WithMaxAttempts(n int) *Provider {
	if n < 1 {
		n = 1
	}
	p.maxAttempts = n
	return p
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// Describe sends the prompt and the image inline and returns the first text
// part of the response. Transport errors are retried with a linear backoff.
func (p *Provider) Describe(ctx context.Context, request vision.Request) (*vision.Response, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventVisionRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrVisionProvider, providerName),
			observability.String(observability.AttrVisionModel, p.model),
			observability.String(observability.AttrVisionImage, request.Image.Name),
			observability.Int(observability.AttrVisionImageBytes, len(request.Image.Data)),
		)
		defer span.AddEvent(observability.EventVisionRequestEnd)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	m, closer, err := p.newModel(ctx, p.apiKey, p.model, request)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil && observer != nil {
			observer.Warn(ctx, "failed to close gemini client", observability.Error(closeErr))
		}
	}()

	parts := buildParts(request)

	var (
		resp    *genai.GenerateContentResponse
		lastErr error
	)
	start := time.Now()
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		resp, lastErr = m.GenerateContent(ctx, parts...)
		if lastErr == nil {
			break
		}
		if observer != nil {
			observer.Trace(ctx, "gemini request failed",
				observability.Int("attempt", attempt),
				observability.Error(lastErr),
			)
		}
		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generate content: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	if observer != nil {
		attrs := []observability.Attribute{observability.String(observability.AttrVisionProvider, providerName)}
		observer.Counter(observability.MetricVisionRequestCount).Add(ctx, 1, attrs...)
		observer.Histogram(observability.MetricVisionDuration).Record(ctx, time.Since(start).Seconds(), attrs...)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("generate content: %w", lastErr)
	}

	result := responseToVision(resp)
	result.Model = p.model
	if span != nil && result.Usage != nil {
		span.SetAttributes(
			observability.Int(observability.AttrVisionTokensIn, result.Usage.PromptTokens),
			observability.Int(observability.AttrVisionTokensOut, result.Usage.CompletionTokens),
		)
	}
	if result.Content == "" {
		return result, vision.ErrEmptyResponse
	}
	return result, nil
}

func newGenerativeModel(ctx context.Context, apiKey, model string, request vision.Request) (contentGenerator, io.Closer, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, err
	}
	m := cl.GenerativeModel(model)
	m.GenerationConfig = generationConfig(request)
	return m, cl, nil
}

func generationConfig(request vision.Request) genai.GenerationConfig {
	cfg := genai.GenerationConfig{
		Temperature:      utils.Ptr(request.Temperature),
		ResponseMIMEType: "application/json",
	}
	if request.MaxTokens > 0 {
		cfg.MaxOutputTokens = utils.Ptr(int32(request.MaxTokens))
	}
	return cfg
}

// buildParts puts the prompt first, then the schema as text, then the image.
// The schema is not sent as ResponseSchema because Gemini rejects objects
// without declared properties, which additional_info is.
func buildParts(request vision.Request) []genai.Part {
	parts := []genai.Part{genai.Text(request.PromptOrDefault())}
	if request.Schema != nil {
		if s, err := request.Schema.JSONString(true); err == nil {
			parts = append(parts, genai.Text("Return only JSON matching this schema:\n"+s))
		}
	}
	return append(parts, &genai.Blob{MIMEType: request.Image.MIMEType, Data: request.Image.Data})
}

func responseToVision(resp *genai.GenerateContentResponse) *vision.Response {
	out := &vision.Response{Content: strings.TrimSpace(firstText(resp))}
	if resp == nil {
		return out
	}
	if len(resp.Candidates) > 0 {
		out.FinishReason = strings.ToLower(strings.TrimPrefix(resp.Candidates[0].FinishReason.String(), "FinishReason"))
	}
	if resp.UsageMetadata != nil {
		out.Usage = &vision.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
