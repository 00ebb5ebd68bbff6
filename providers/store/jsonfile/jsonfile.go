package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/XayHanmonty/id-verification-poc/providers/observability"
	"github.com/XayHanmonty/id-verification-poc/providers/store"
)

// DefaultFileName is the name of the results file inside the output directory.
const DefaultFileName = "extraction_results.json"

// Writer writes results as one indented JSON object keyed by image name.
type Writer struct {
	path string
}

var _ store.Writer = (*Writer)(nil)

// New returns a Writer for dir/extraction_results.json.
func New(dir string) *Writer {
	return &Writer{path: filepath.Join(dir, DefaultFileName)}
}

// NewFile returns a Writer for an explicit file path.
func NewFile(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the file the writer targets.
func (w *Writer) Path() string {
	return w.path
}

// Write creates the parent directory if needed and replaces the file.
func (w *Writer) Write(ctx context.Context, results store.Results) error {
	if observer := observability.ObserverFromContext(ctx); observer != nil {
		var span observability.Span
		ctx, span = observer.StartSpan(ctx, observability.SpanStoreWrite,
			observability.String(observability.AttrStorePath, w.path),
			observability.String(observability.AttrStoreFormat, "json"),
			observability.Int(observability.AttrStoreRecords, len(results)),
		)
		defer span.End()
	}

	data, err := Encode(results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Info(ctx, "results saved",
			observability.String(observability.AttrStorePath, w.path),
			observability.Int(observability.AttrStoreRecords, len(results)),
		)
	}
	return nil
}

// Encode renders results with two-space indentation. HTML characters are
// kept as-is.
func Encode(results store.Results) ([]byte, error) {
	if results == nil {
		results = store.Results{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return buf.Bytes(), nil
}

// Read loads a results file written by Writer.
func Read(path string) (store.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var results store.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, nil
}
