package report

import (
	"encoding/json"
	"io"

	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
)

// JSONWriter outputs results and metrics in JSON format for tool
// integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it's part of the standard library, sufficient for
// our needs, and behaves consistently across Go versions.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// resultRow is the JSON shape of one crawl result. A wrapper rather than
// json tags on model.CrawlResult keeps output-specific naming out of the
// core data structure.
type resultRow struct {
	Domain     string `json:"domain"`
	LogoURL    string `json:"logo_url,omitempty"`
	FaviconURL string `json:"favicon_url,omitempty"`
	Status     string `json:"status"`
	Source     string `json:"source,omitempty"`
	FetchedURL string `json:"fetched_url,omitempty"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}

// metricsRow is the JSON shape of an evaluation report.
type metricsRow struct {
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
	NotWorking     int     `json:"not_working"`
	Total          int     `json:"total"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
}

// WriteResults outputs the results as a JSON array.
func (w *JSONWriter) WriteResults(results []*model.CrawlResult) (int, error) {
	rows := make([]resultRow, len(results))
	for i, r := range results {
		rows[i] = resultRow{
			Domain:     r.Domain.String(),
			LogoURL:    r.LogoURL,
			FaviconURL: r.FaviconURL,
			Status:     r.Status.String(),
			FetchedURL: r.FetchedURL,
			ElapsedMS:  r.Elapsed.Milliseconds(),
		}
		if r.Source != model.StrategyNone {
			rows[i].Source = r.Source.String()
		}
	}

	return w.writeJSON(rows)
}

// WriteMetrics outputs the evaluation report as a JSON object.
func (w *JSONWriter) WriteMetrics(r metrics.Report) (int, error) {
	return w.writeJSON(metricsRow{
		TruePositives:  r.TruePositives,
		FalsePositives: r.FalsePositives,
		FalseNegatives: r.FalseNegatives,
		NotWorking:     r.NotWorking,
		Total:          r.Total,
		Precision:      r.Precision,
		Recall:         r.Recall,
		F1:             r.F1,
	})
}

// writeJSON marshals the given value and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}
