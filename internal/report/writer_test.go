package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
)

func mustDomain(t *testing.T, raw string) model.Domain {
	t.Helper()
	d, err := model.NewDomain(raw)
	if err != nil {
		t.Fatalf("bad test domain %q: %v", raw, err)
	}
	return d
}

func sampleResults(t *testing.T) []*model.CrawlResult {
	t.Helper()
	return []*model.CrawlResult{
		{
			Domain:     mustDomain(t, "a.example"),
			LogoURL:    "https://a.example/logo.png",
			FaviconURL: "https://a.example/favicon.ico",
			Status:     model.StatusFound,
			Source:     model.StrategyExplicit,
			FetchedURL: "https://a.example",
			Elapsed:    1200 * time.Millisecond,
		},
		{
			Domain: mustDomain(t, "b.example"),
			Status: model.StatusNotFound,
		},
		{
			Domain: mustDomain(t, "c.example"),
			Status: model.StatusUnreachable,
		},
	}
}

func TestCSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("one row per result with blanks for failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewCSVWriter(&buf).WriteResults(sampleResults(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
		}
		if lines[0] != "domain,logo_url,favicon_url" {
			t.Errorf("unexpected header %q", lines[0])
		}
		if lines[1] != "a.example,https://a.example/logo.png,https://a.example/favicon.ico" {
			t.Errorf("unexpected found row %q", lines[1])
		}
		if lines[2] != "b.example,," {
			t.Errorf("expected blank fields for not-found, got %q", lines[2])
		}
		if lines[3] != "c.example,," {
			t.Errorf("expected blank fields for unreachable, got %q", lines[3])
		}
	})

	t.Run("data URI with commas is quoted", func(t *testing.T) {
		t.Parallel()

		results := []*model.CrawlResult{{
			Domain:  mustDomain(t, "a.example"),
			LogoURL: "data:image/svg+xml,a,b",
			Status:  model.StatusFound,
		}}

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).WriteResults(results); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"data:image/svg+xml,a,b"`) {
			t.Errorf("expected quoted data URI, got %q", buf.String())
		}
	})

	t.Run("round trip through ReadResultsCSV", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).WriteResults(sampleResults(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		loaded, err := ReadResultsCSV(&buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loaded) != 3 {
			t.Fatalf("expected 3 results, got %d", len(loaded))
		}
		if loaded[0].LogoURL != "https://a.example/logo.png" || loaded[0].Status != model.StatusFound {
			t.Errorf("unexpected first result: %+v", loaded[0])
		}
		if loaded[1].Status != model.StatusNotFound {
			t.Errorf("expected not found for blank row, got %v", loaded[1].Status)
		}
	})
}

func TestReadGroundTruthCSV(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("domain,logo_url\na.example,https://a.example/logo.png\nb.example,\n")
	truth, err := ReadGroundTruthCSV(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if truth["a.example"] != "https://a.example/logo.png" {
		t.Errorf("unexpected truth for a.example: %q", truth["a.example"])
	}
	got, ok := truth["b.example"]
	if !ok || got != "" {
		t.Errorf("expected explicit no-logo label for b.example, got %q (present=%v)", got, ok)
	}
}

func TestReadOutcomesCSV(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("domain,outcome\na.example,correct\nb.example,wrong\nc.example,not_working\n")
	outcomes, err := ReadOutcomesCSV(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []metrics.Outcome{metrics.OutcomeCorrect, metrics.OutcomeWrong, metrics.OutcomeNotWorking}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Errorf("outcome %d: expected %v, got %v", i, want[i], outcomes[i])
		}
	}

	if _, err := ReadOutcomesCSV(strings.NewReader("a.example,maybe\n")); err == nil {
		t.Error("expected an error for an unknown outcome label")
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("results array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteResults(sampleResults(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rows []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[0]["domain"] != "a.example" || rows[0]["source"] != "explicit" {
			t.Errorf("unexpected first row: %v", rows[0])
		}
		if rows[2]["status"] != "unreachable" {
			t.Errorf("unexpected third row status: %v", rows[2]["status"])
		}
		if _, ok := rows[1]["logo_url"]; ok {
			t.Error("blank logo_url should be omitted")
		}
	})

	t.Run("metrics object", func(t *testing.T) {
		t.Parallel()

		r := metrics.FromOutcomes([]metrics.Outcome{
			metrics.OutcomeCorrect, metrics.OutcomeWrong, metrics.OutcomeNotWorking,
		})

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WriteMetrics(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got metricsRow
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if got.TruePositives != 1 || got.FalsePositives != 1 || got.NotWorking != 1 {
			t.Errorf("unexpected counts: %+v", got)
		}
		if got.Precision != 50 {
			t.Errorf("expected precision 50, got %v", got.Precision)
		}
	})
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("results summary line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteResults(sampleResults(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "total: 3  found: 1  not found: 1  unreachable: 1  parse errors: 0") {
			t.Errorf("missing summary line in %q", out)
		}
		if !strings.Contains(out, "[+] a.example") {
			t.Errorf("missing found marker in %q", out)
		}
	})

	t.Run("verbose adds detail lines", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).WriteResults(sampleResults(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "source:  explicit") {
			t.Errorf("expected source detail in %q", buf.String())
		}
	})

	t.Run("metrics block formats percentages", func(t *testing.T) {
		t.Parallel()

		outcomes := make([]metrics.Outcome, 0, 20)
		for range 15 {
			outcomes = append(outcomes, metrics.OutcomeCorrect)
		}
		for range 4 {
			outcomes = append(outcomes, metrics.OutcomeWrong)
		}
		outcomes = append(outcomes, metrics.OutcomeNotWorking)

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteMetrics(metrics.FromOutcomes(outcomes)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"Precision:       78.95%", "Recall:          100.00%", "F1:              88.24%"} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in metrics output:\n%s", want, out)
			}
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	r := metrics.FromOutcomes([]metrics.Outcome{
		metrics.OutcomeCorrect, metrics.OutcomeCorrect, metrics.OutcomeMissed, metrics.OutcomeNotWorking,
	})

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).WriteMetrics(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Logo Extraction Quality Report",
		"## Outcome Counts",
		"## Quality Measures",
		"mermaid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in markdown output", want)
		}
	}
}
