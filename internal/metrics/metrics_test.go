package metrics

import (
	"fmt"
	"testing"

	"github.com/logoscout/logoscout/internal/model"
)

func TestFromOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("mixed batch", func(t *testing.T) {
		t.Parallel()

		outcomes := make([]Outcome, 0, 20)
		for range 15 {
			outcomes = append(outcomes, OutcomeCorrect)
		}
		for range 4 {
			outcomes = append(outcomes, OutcomeWrong)
		}
		outcomes = append(outcomes, OutcomeNotWorking)

		r := FromOutcomes(outcomes)

		if r.TruePositives != 15 || r.FalsePositives != 4 || r.FalseNegatives != 0 || r.NotWorking != 1 {
			t.Fatalf("unexpected counts: %+v", r)
		}
		if r.Total != 20 {
			t.Errorf("expected total 20, got %d", r.Total)
		}
		if got := fmt.Sprintf("%.2f", r.Precision); got != "78.95" {
			t.Errorf("expected precision 78.95, got %s", got)
		}
		if got := fmt.Sprintf("%.2f", r.Recall); got != "100.00" {
			t.Errorf("expected recall 100.00, got %s", got)
		}
		if got := fmt.Sprintf("%.2f", r.F1); got != "88.24" {
			t.Errorf("expected F1 88.24, got %s", got)
		}
	})

	t.Run("no extractions yields zero precision not NaN", func(t *testing.T) {
		t.Parallel()

		r := FromOutcomes([]Outcome{OutcomeMissed, OutcomeMissed, OutcomeNotWorking})

		if r.Precision != 0 || r.Recall != 0 || r.F1 != 0 {
			t.Errorf("expected all-zero measures, got %+v", r)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		r := FromOutcomes(nil)
		if r.Total != 0 || r.Precision != 0 || r.Recall != 0 || r.F1 != 0 {
			t.Errorf("expected zero report, got %+v", r)
		}
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	domain, err := model.NewDomain("a.example")
	if err != nil {
		t.Fatalf("bad test domain: %v", err)
	}

	tests := []struct {
		name     string
		result   model.CrawlResult
		expected string
		want     Outcome
	}{
		{
			name:     "exact match",
			result:   model.CrawlResult{Status: model.StatusFound, LogoURL: "https://a.example/logo.png"},
			expected: "https://a.example/logo.png",
			want:     OutcomeCorrect,
		},
		{
			name:     "wrong logo",
			result:   model.CrawlResult{Status: model.StatusFound, LogoURL: "https://a.example/banner.png"},
			expected: "https://a.example/logo.png",
			want:     OutcomeWrong,
		},
		{
			name:     "logo where none exists",
			result:   model.CrawlResult{Status: model.StatusFound, LogoURL: "https://a.example/banner.png"},
			expected: "",
			want:     OutcomeWrong,
		},
		{
			name:     "missed logo",
			result:   model.CrawlResult{Status: model.StatusNotFound},
			expected: "https://a.example/logo.png",
			want:     OutcomeMissed,
		},
		{
			name:     "correctly found nothing",
			result:   model.CrawlResult{Status: model.StatusNotFound},
			expected: "",
			want:     OutcomeCorrect,
		},
		{
			name:     "unreachable site",
			result:   model.CrawlResult{Status: model.StatusUnreachable},
			expected: "https://a.example/logo.png",
			want:     OutcomeNotWorking,
		},
		{
			name:     "surrounding whitespace ignored",
			result:   model.CrawlResult{Status: model.StatusFound, LogoURL: " https://a.example/logo.png "},
			expected: "https://a.example/logo.png",
			want:     OutcomeCorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.result.Domain = domain
			if got := Classify(&tt.result, tt.expected); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	mustDomain := func(raw string) model.Domain {
		d, err := model.NewDomain(raw)
		if err != nil {
			t.Fatalf("bad test domain %q: %v", raw, err)
		}
		return d
	}

	results := []*model.CrawlResult{
		{Domain: mustDomain("a.example"), Status: model.StatusFound, LogoURL: "https://a.example/logo.png"},
		{Domain: mustDomain("b.example"), Status: model.StatusFound, LogoURL: "https://b.example/banner.png"},
		{Domain: mustDomain("c.example"), Status: model.StatusUnreachable},
		{Domain: mustDomain("d.example"), Status: model.StatusFound, LogoURL: "https://d.example/logo.png"},
	}

	truth := GroundTruth{
		"a.example": "https://a.example/logo.png",
		"b.example": "https://b.example/logo.png",
		"c.example": "https://c.example/logo.png",
		// d.example has no truth entry and must be skipped.
	}

	report, outcomes := Evaluate(results, truth)

	if report.Total != 3 {
		t.Fatalf("expected 3 evaluated domains, got %d", report.Total)
	}
	if report.TruePositives != 1 || report.FalsePositives != 1 || report.NotWorking != 1 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if outcomes["a.example"] != OutcomeCorrect {
		t.Errorf("expected a.example correct, got %v", outcomes["a.example"])
	}
	if outcomes["b.example"] != OutcomeWrong {
		t.Errorf("expected b.example wrong, got %v", outcomes["b.example"])
	}
	if outcomes["c.example"] != OutcomeNotWorking {
		t.Errorf("expected c.example not_working, got %v", outcomes["c.example"])
	}
	if _, ok := outcomes["d.example"]; ok {
		t.Error("d.example should not be evaluated without a truth entry")
	}
}

func TestParseOutcomeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, o := range []Outcome{OutcomeCorrect, OutcomeWrong, OutcomeMissed, OutcomeNotWorking} {
		got, err := ParseOutcome(o.String())
		if err != nil {
			t.Fatalf("parse %q: %v", o.String(), err)
		}
		if got != o {
			t.Errorf("round trip changed %v to %v", o, got)
		}
	}

	if _, err := ParseOutcome("nope"); err == nil {
		t.Error("expected an error for an unknown outcome")
	}
}
