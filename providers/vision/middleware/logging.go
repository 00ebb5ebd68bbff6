package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

// LogLevel controls how much each request logs.
type LogLevel int

const (
	// LogLevelMinimal logs the image, duration and token counts.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the image size, MIME type and finish reason.
	LogLevelStandard

	// LogLevelVerbose adds the prompt and the response text, truncated.
	//
	// WARNING: the response holds the personal data read off the document.
	// Do not use it outside local debugging.
	LogLevelVerbose
)

const truncateLen = 500

// NewLoggingMiddleware logs every Describe call before and after it runs.
// logger must not be nil.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) vision.Middleware {
	return func(next vision.DescribeFunc) vision.DescribeFunc {
		return func(ctx context.Context, request vision.Request) (*vision.Response, error) {
			logger.InfoContext(ctx, "vision describe", requestAttrs(request, level)...)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "vision describe failed",
					slog.String("image", request.Image.Name),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return response, err
			}

			logger.InfoContext(ctx, "vision describe completed", responseAttrs(request, response, elapsed, level)...)
			return response, nil
		}
	}
}

func requestAttrs(request vision.Request, level LogLevel) []any {
	attrs := []any{slog.String("image", request.Image.Name)}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("mime_type", request.Image.MIMEType),
			slog.Int("image_bytes", len(request.Image.Data)),
		)
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", utils.TruncateString(request.PromptOrDefault(), truncateLen)))
	}
	return attrs
}

func responseAttrs(request vision.Request, response *vision.Response, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("image", request.Image.Name),
		slog.Duration("duration", elapsed),
	}
	if response == nil {
		return attrs
	}

	attrs = append(attrs, slog.String("model", response.Model))
	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
			slog.Int("total_tokens", response.Usage.TotalTokens),
		)
	}
	if level >= LogLevelStandard && response.FinishReason != "" {
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("content", utils.TruncateString(response.Content, truncateLen)))
	}
	return attrs
}
