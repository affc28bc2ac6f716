package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
)

// csvHeader is the fixed column layout of the results table.
var csvHeader = []string{"domain", "logo_url", "favicon_url"}

// CSVWriter outputs results as the canonical domain,logo_url,favicon_url
// table. Every input domain gets exactly one row; domains without a logo
// keep their row with blank URL fields rather than being dropped, so the
// output lines up one-to-one with the input list.
//
// Design decision: We use standard encoding/csv because it handles quoting
// of URLs containing commas (data URIs do) correctly, which naive
// string-joining would not.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteResults outputs the header row followed by one row per result.
func (w *CSVWriter) WriteResults(results []*model.CrawlResult) (int, error) {
	counter := &countingWriter{w: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, err
	}

	for _, r := range results {
		row := []string{r.Domain.String(), r.LogoURL, r.FaviconURL}
		if err := cw.Write(row); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}

// countingWriter tracks bytes written through it so csv.Writer's internal
// buffering does not hide the byte count from callers.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// ReadResultsCSV parses a results table previously produced by CSVWriter.
// A header row matching the canonical layout is skipped if present. Rows
// with a blank logo_url load as not-found results.
func ReadResultsCSV(r io.Reader) ([]*model.CrawlResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results csv: %w", err)
	}

	results := make([]*model.CrawlResult, 0, len(records))
	for i, rec := range records {
		if i == 0 && isHeaderRow(rec) {
			continue
		}
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		d, err := model.NewDomain(rec[0])
		if err != nil {
			return nil, fmt.Errorf("results csv line %d: %w", i+1, err)
		}

		result := &model.CrawlResult{Domain: d, Status: model.StatusNotFound}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			result.LogoURL = strings.TrimSpace(rec[1])
			result.Status = model.StatusFound
		}
		if len(rec) > 2 {
			result.FaviconURL = strings.TrimSpace(rec[2])
		}
		results = append(results, result)
	}

	return results, nil
}

// ReadGroundTruthCSV parses a labeled truth set: domain,expected_logo_url.
// An empty URL field is a positive "no logo exists" label.
func ReadGroundTruthCSV(r io.Reader) (metrics.GroundTruth, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read truth csv: %w", err)
	}

	truth := make(metrics.GroundTruth, len(records))
	for i, rec := range records {
		if i == 0 && isHeaderRow(rec) {
			continue
		}
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		d, err := model.NewDomain(rec[0])
		if err != nil {
			return nil, fmt.Errorf("truth csv line %d: %w", i+1, err)
		}

		expected := ""
		if len(rec) > 1 {
			expected = strings.TrimSpace(rec[1])
		}
		truth[d.String()] = expected
	}

	return truth, nil
}

// ReadOutcomesCSV parses a manually labeled outcome sheet: domain,outcome
// with outcome one of correct, wrong, missed, not_working.
func ReadOutcomesCSV(r io.Reader) ([]metrics.Outcome, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read outcomes csv: %w", err)
	}

	outcomes := make([]metrics.Outcome, 0, len(records))
	for i, rec := range records {
		if i == 0 && isHeaderRow(rec) {
			continue
		}
		if len(rec) < 2 {
			continue
		}

		o, err := metrics.ParseOutcome(rec[1])
		if err != nil {
			return nil, fmt.Errorf("outcomes csv line %d: %w", i+1, err)
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

// isHeaderRow detects the canonical header so both headered and headerless
// files load cleanly.
func isHeaderRow(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rec[0]), "domain")
}
