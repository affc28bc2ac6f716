package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the length above which string attribute values are
// truncated. Long enough to keep full URLs readable, short enough that an
// inlined SVG data URI cannot drown the surrounding log lines.
const DefaultMaxValueLen = 256

// truncationSuffix marks values that were cut, with the original length so
// the log still conveys how big the value was.
const truncationSuffix = "... (%d bytes total)"

// TruncateHandler wraps an slog.Handler to cap the length of string
// attribute values. It intercepts log records and truncates oversized
// values before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay clean; no per-call truncation helpers needed
type TruncateHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxLen is the maximum string value length before truncation.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, the returned TruncateHandler uses
// slog.Default().Handler(). A maxLen of 0 or less uses DefaultMaxValueLen.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it to the underlying
// handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are capped before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		capped[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(capped), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		capped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			capped[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(capped...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	s := a.Value.String()
	if len(s) <= h.maxLen {
		return a
	}

	cut := h.maxLen
	// Do not split a multi-byte rune.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return slog.String(a.Key, s[:cut]+fmt.Sprintf(truncationSuffix, len(s)))
}

// NewLogger creates a new slog.Logger with value truncation.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxValueLen))
}

// NewJSONLogger creates a new slog.Logger with value truncation that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTruncateHandler(jsonHandler, DefaultMaxValueLen))
}
