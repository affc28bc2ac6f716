package report

import (
	"io"

	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
)

// Writer outputs a batch of crawl results.
//
// Design decision: We use an interface so different formats and
// destinations (stdout, files) share the same API at the call site.
type Writer interface {
	// WriteResults outputs one row per result, in input order.
	// Returns the number of bytes written and any error encountered.
	WriteResults(results []*model.CrawlResult) (int, error)
}

// MetricsWriter outputs an evaluation report.
type MetricsWriter interface {
	// WriteMetrics outputs the aggregated quality measures.
	// Returns the number of bytes written and any error encountered.
	WriteMetrics(r metrics.Report) (int, error)
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
