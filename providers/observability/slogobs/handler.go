package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
)

const timeLayout = "2006-01-02 15:04:05"

// Handler is a slog.Handler rendering compact, pretty or JSON lines.
type Handler struct {
	format Format
	level  slog.Leveler
	colors bool

	mu     *sync.Mutex
	output io.Writer

	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Format Format
	Level  slog.Leveler
	// Output defaults to os.Stderr.
	Output io.Writer
	// Colors applies to compact and pretty output only.
	Colors bool
}

// NewHandler returns a Handler. A nil opts gives compact INFO output on
// stderr.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	h := &Handler{
		format: opts.Format,
		level:  opts.Level,
		colors: opts.Colors,
		mu:     &sync.Mutex{},
		output: opts.Output,
	}
	if h.format == "" {
		h.format = FormatCompact
	}
	if h.level == nil {
		h.level = slog.LevelInfo
	}
	if h.output == nil {
		h.output = os.Stderr
	}
	if !h.colors && h.format != FormatJSON {
		if f, ok := h.output.(*os.File); ok {
			h.colors = isTerminal(f)
		}
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := h.collectAttrs(r)

	var buf []byte
	var err error
	switch h.format {
	case FormatJSON:
		buf, err = h.renderJSON(r, attrs)
	case FormatPretty:
		buf = h.renderPretty(r, attrs)
	default:
		buf = h.renderCompact(r, attrs)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(buf)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix(a.Key), Value: a.Value})
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *Handler) prefix(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return key
}

// collectAttrs flattens handler and record attributes into a map. Record
// attributes are prefixed with the current groups; handler attributes were
// prefixed when they were added.
func (h *Handler) collectAttrs(r slog.Record) map[string]any {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix(a.Key)] = a.Value.Resolve().Any()
		return true
	})
	return attrs
}

func (h *Handler) levelLabel(level slog.Level, width int) string {
	label := fmt.Sprintf("%*s", width, levelString(level))
	if h.colors {
		return colorForLevel(level) + label + colorReset
	}
	return label
}

func (h *Handler) renderCompact(r slog.Record, attrs map[string]any) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timeLayout)...)
	buf = append(buf, ' ')
	buf = append(buf, h.levelLabel(r.Level, 5)...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if len(attrs) > 0 {
		buf = append(buf, " → "...)
		data, err := json.Marshal(attrs)
		if err != nil {
			buf = append(buf, "[unencodable attributes]"...)
		} else {
			buf = append(buf, data...)
		}
	}
	return append(buf, '\n')
}

func (h *Handler) renderPretty(r slog.Record, attrs map[string]any) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timeLayout)...)
	buf = append(buf, ' ')
	buf = append(buf, h.levelLabel(r.Level, -5)...)
	buf = append(buf, "  "...)
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		branch := "├─"
		if i == len(keys)-1 {
			branch = "└─"
		}
		buf = fmt.Appendf(buf, "    %s %s: %v\n", branch, k, attrs[k])
	}
	return buf
}

func (h *Handler) renderJSON(r slog.Record, attrs map[string]any) ([]byte, error) {
	data := make(map[string]any, len(attrs)+3)
	for k, v := range attrs {
		data[k] = v
	}
	data["time"] = r.Time.Format("2006-01-02T15:04:05")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode log record: %w", err)
	}
	return append(buf, '\n'), nil
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
