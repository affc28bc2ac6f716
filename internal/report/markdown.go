package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/logoscout/logoscout/internal/metrics"
)

// MarkdownWriter outputs metrics reports in Markdown format for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with tables and GitHub-flavored alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteMetrics outputs the evaluation report in Markdown format.
func (w *MarkdownWriter) WriteMetrics(r metrics.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Logo Extraction Quality Report")
	md.PlainText("")

	w.writeCounts(md, r)
	w.writeMeasures(md, r)
	w.writeDistribution(md, r)

	return len(md.String()), md.Build()
}

// writeCounts writes the per-outcome count table.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, r metrics.Report) {
	md.H2("Outcome Counts")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Correct", strconv.Itoa(r.TruePositives)},
			{"Wrong", strconv.Itoa(r.FalsePositives)},
			{"Missed", strconv.Itoa(r.FalseNegatives)},
			{"Not working", strconv.Itoa(r.NotWorking)},
			{"**Total**", "**" + strconv.Itoa(r.Total) + "**"},
		},
	})
	md.PlainText("")
}

// writeMeasures writes the derived quality measures.
func (w *MarkdownWriter) writeMeasures(md *markdown.Markdown, r metrics.Report) {
	md.H2("Quality Measures")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Precision", fmt.Sprintf("%.2f%%", r.Precision)},
			{"Recall", fmt.Sprintf("%.2f%%", r.Recall)},
			{"F1", fmt.Sprintf("%.2f%%", r.F1)},
		},
	})
	md.PlainText("")

	// Not-working sites are reported but never scored, so make that
	// explicit for anyone comparing runs with different dead-site counts.
	if r.NotWorking > 0 {
		md.Notef("%d unreachable site(s) excluded from precision and recall.", r.NotWorking)
		md.PlainText("")
	}
}

// writeDistribution writes a mermaid pie chart of the outcome split.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, r metrics.Report) {
	if r.Total == 0 {
		return
	}

	md.H2("Outcome Distribution")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Evaluation Outcomes"),
		piechart.WithShowData(true),
	)

	if r.TruePositives > 0 {
		chart.LabelAndIntValue("Correct", uint64(r.TruePositives))
	}
	if r.FalsePositives > 0 {
		chart.LabelAndIntValue("Wrong", uint64(r.FalsePositives))
	}
	if r.FalseNegatives > 0 {
		chart.LabelAndIntValue("Missed", uint64(r.FalseNegatives))
	}
	if r.NotWorking > 0 {
		chart.LabelAndIntValue("Not working", uint64(r.NotWorking))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
