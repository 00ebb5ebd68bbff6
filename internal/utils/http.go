package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/XayHanmonty/id-verification-poc/providers/observability"
)

// HTTPError is returned by DoPostSync for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(e.Body, DefaultMaxStringLength))
}

// DoPostSync POSTs body as JSON to url and decodes the 2xx response into Out.
// A bearer Authorization header is sent when apiKey is set. When ctx carries
// a span, request and response events are added to it.
//
// Context errors are returned as-is (wrapped). Non-2xx responses yield an
// *HTTPError together with the response. Decode failures include a
// truncated preview of the body.
func DoPostSync[Out any](ctx context.Context, client *http.Client, url string, apiKey string, body any) (*http.Response, *Out, error) {
	span := observability.SpanFromContext(ctx)

	if client == nil {
		client = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(payload)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	start := time.Now()
	res, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration(observability.AttrDuration, elapsed),
			)
		}
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("read response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(raw)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &HTTPError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	var out Out
	if err := json.Unmarshal(raw, &out); err != nil {
		return res, nil, fmt.Errorf("decode response body (status %d): %w; preview: %s",
			res.StatusCode, err, TruncateString(string(raw), DefaultMaxStringLength))
	}
	return res, &out, nil
}
