package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because it works in all terminals without
// compatibility issues and pipes cleanly to files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables per-result detail lines (source strategy, fetched
	// page, elapsed time).
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteResults outputs one line per result plus a status summary.
func (w *SimpleWriter) WriteResults(results []*model.CrawlResult) (int, error) {
	var sb strings.Builder

	counts := make(map[model.Status]int)
	for _, r := range results {
		counts[r.Status]++
		w.writeResult(&sb, r)
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("total: %d  found: %d  not found: %d  unreachable: %d  parse errors: %d\n",
		len(results),
		counts[model.StatusFound],
		counts[model.StatusNotFound],
		counts[model.StatusUnreachable],
		counts[model.StatusParseError],
	))

	return w.output.Write([]byte(sb.String()))
}

// writeResult writes a single result line, with detail lines when verbose.
func (w *SimpleWriter) writeResult(sb *strings.Builder, r *model.CrawlResult) {
	switch r.Status {
	case model.StatusFound:
		sb.WriteString(fmt.Sprintf("[+] %-30s %s\n", r.Domain.String(), r.LogoURL))
	case model.StatusNotFound:
		sb.WriteString(fmt.Sprintf("[-] %-30s no logo found\n", r.Domain.String()))
	case model.StatusUnreachable:
		sb.WriteString(fmt.Sprintf("[!] %-30s unreachable\n", r.Domain.String()))
	case model.StatusParseError:
		sb.WriteString(fmt.Sprintf("[!] %-30s parse error\n", r.Domain.String()))
	}

	if !w.verbose {
		return
	}
	if r.Source != model.StrategyNone {
		sb.WriteString(fmt.Sprintf("    source:  %s\n", r.Source.String()))
	}
	if r.FetchedURL != "" {
		sb.WriteString(fmt.Sprintf("    page:    %s\n", r.FetchedURL))
	}
	if r.FaviconURL != "" {
		sb.WriteString(fmt.Sprintf("    favicon: %s\n", r.FaviconURL))
	}
	sb.WriteString(fmt.Sprintf("    elapsed: %s\n", r.Elapsed))
}

// WriteMetrics outputs the evaluation report as an aligned text block.
func (w *SimpleWriter) WriteMetrics(r metrics.Report) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                EXTRACTION QUALITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Evaluated:       %d\n", r.Total))
	sb.WriteString(fmt.Sprintf("  Correct:         %d\n", r.TruePositives))
	sb.WriteString(fmt.Sprintf("  Wrong:           %d\n", r.FalsePositives))
	sb.WriteString(fmt.Sprintf("  Missed:          %d\n", r.FalseNegatives))
	sb.WriteString(fmt.Sprintf("  Not working:     %d\n", r.NotWorking))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  Precision:       %.2f%%\n", r.Precision))
	sb.WriteString(fmt.Sprintf("  Recall:          %.2f%%\n", r.Recall))
	sb.WriteString(fmt.Sprintf("  F1:              %.2f%%\n", r.F1))

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}
