package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/observability"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

const (
	providerName            = "openai"
	defaultBaseURL          = "https://api.fireworks.ai/inference/v1"
	defaultModel            = "accounts/fireworks/models/llama-v3p2-11b-vision-instruct"
	chatCompletionsEndpoint = "/chat/completions"
)

// Provider implements vision.Provider for OpenAI-compatible chat completion
// APIs. The defaults target Fireworks.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ vision.Provider = (*Provider)(nil)

// New creates a provider configured from the environment:
//   - FIREWORKS_API_KEY: API key for authentication
//   - IDX_BASE_URL: base URL (optional)
//   - IDX_MODEL: model name (optional)
func New() *Provider {
	baseURL := os.Getenv("IDX_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("IDX_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		apiKey:  os.Getenv("FIREWORKS_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key.
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL. A trailing slash is dropped.
func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p
}

// WithModel sets the model name.
func (p *Provider) WithModel(model string) *Provider {
	p.model = model
	return p
}

// WithHttpClient sets the HTTP client, e.g. to apply a timeout.
func (p *Provider) WithHttpClient(httpClient *http.Client) *Provider {
	p.client = httpClient
	return p
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// Describe sends the image and prompt as one user message and returns the
// content of the first choice.
func (p *Provider) Describe(ctx context.Context, request vision.Request) (*vision.Response, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)
	url := p.baseURL + chatCompletionsEndpoint

	if span != nil {
		span.AddEvent(observability.EventVisionRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrVisionProvider, providerName),
			observability.String(observability.AttrVisionEndpoint, url),
			observability.String(observability.AttrVisionModel, p.model),
			observability.String(observability.AttrVisionImage, request.Image.Name),
			observability.Int(observability.AttrVisionImageBytes, len(request.Image.Data)),
		)
		defer span.AddEvent(observability.EventVisionRequestEnd)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("FIREWORKS_API_KEY is not set")
	}

	start := time.Now()
	httpResponse, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, p.buildRequest(request))
	if observer != nil {
		attrs := []observability.Attribute{observability.String(observability.AttrVisionProvider, providerName)}
		observer.Counter(observability.MetricVisionRequestCount).Add(ctx, 1, attrs...)
		observer.Histogram(observability.MetricVisionDuration).Record(ctx, time.Since(start).Seconds(), attrs...)
	}
	if err != nil {
		if observer != nil {
			observer.Trace(ctx, "vision request failed", observability.Error(err))
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("empty response body: %s", httpResponse.Status)
	}

	result := responseToVision(*resp)
	if result.Model == "" {
		result.Model = p.model
	}
	if span != nil && result.Usage != nil {
		span.SetAttributes(
			observability.Int(observability.AttrVisionTokensIn, result.Usage.PromptTokens),
			observability.Int(observability.AttrVisionTokensOut, result.Usage.CompletionTokens),
		)
	}
	if strings.TrimSpace(result.Content) == "" {
		return result, vision.ErrEmptyResponse
	}
	return result, nil
}

func (p *Provider) buildRequest(request vision.Request) chatCompletionRequest {
	req := chatCompletionRequest{
		Model: p.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "image_url", ImageURL: &contentPartImage{URL: request.Image.DataURL()}},
				{Type: "text", Text: request.PromptOrDefault()},
			},
		}},
		Temperature: utils.Ptr(request.Temperature),
	}
	if request.MaxTokens > 0 {
		req.MaxTokens = utils.Ptr(request.MaxTokens)
	}
	if request.Schema != nil {
		req.ResponseFormat = &chatResponseFormat{Type: "json_object", Schema: request.Schema}
	}
	return req
}

func responseToVision(resp chatCompletionResponse) *vision.Response {
	out := &vision.Response{Model: resp.Model}
	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		out.Content = strings.TrimSpace(choice.Message.Content)
		out.FinishReason = choice.FinishReason
	}
	if resp.Usage != nil {
		out.Usage = &vision.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return out
}
