package metrics

import (
	"errors"
	"strings"

	"github.com/logoscout/logoscout/internal/model"
)

// ErrUnknownOutcome is returned when an outcome string cannot be parsed.
var ErrUnknownOutcome = errors.New("unknown outcome")

// Outcome classifies one evaluated domain.
type Outcome int

const (
	// OutcomeCorrect means the extraction matched the ground truth.
	OutcomeCorrect Outcome = iota
	// OutcomeWrong means a logo was extracted but it was not the expected
	// one, or one was extracted for a domain that has no logo.
	OutcomeWrong
	// OutcomeMissed means the domain has a logo but nothing was extracted.
	OutcomeMissed
	// OutcomeNotWorking means the site was unreachable. Dead sites say
	// nothing about extraction quality, so they are excluded from precision
	// and recall.
	OutcomeNotWorking
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeMissed:
		return "missed"
	case OutcomeNotWorking:
		return "not_working"
	default:
		return "unknown"
	}
}

// ParseOutcome converts a string back into an Outcome. Used when loading
// manually labelled evaluation sheets.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct":
		return OutcomeCorrect, nil
	case "wrong":
		return OutcomeWrong, nil
	case "missed":
		return OutcomeMissed, nil
	case "not_working":
		return OutcomeNotWorking, nil
	default:
		return OutcomeNotWorking, ErrUnknownOutcome
	}
}

// GroundTruth maps a domain name to its expected logo URL. An empty value
// is a positive statement that the domain has no logo, not a gap in the
// data; domains with unknown truth should simply be absent.
type GroundTruth map[string]string

// Report aggregates outcome counts into the standard quality measures.
// Precision, Recall, and F1 are percentages in [0, 100].
type Report struct {
	// TruePositives counts correct extractions.
	TruePositives int

	// FalsePositives counts wrong extractions.
	FalsePositives int

	// FalseNegatives counts missed logos.
	FalseNegatives int

	// NotWorking counts unreachable sites, excluded from the measures.
	NotWorking int

	// Total is the number of evaluated domains, not-working included.
	Total int

	// Precision is the share of extracted logos that were correct.
	Precision float64

	// Recall is the share of existing logos that were extracted.
	Recall float64

	// F1 is the harmonic mean of Precision and Recall.
	F1 float64
}

// FromOutcomes builds a Report from per-domain outcomes.
//
// Zero denominators yield zero measures rather than NaN: a run that
// extracted nothing has zero precision by definition, not an undefined one.
func FromOutcomes(outcomes []Outcome) Report {
	r := Report{Total: len(outcomes)}

	for _, o := range outcomes {
		switch o {
		case OutcomeCorrect:
			r.TruePositives++
		case OutcomeWrong:
			r.FalsePositives++
		case OutcomeMissed:
			r.FalseNegatives++
		case OutcomeNotWorking:
			r.NotWorking++
		}
	}

	if extracted := r.TruePositives + r.FalsePositives; extracted > 0 {
		r.Precision = float64(r.TruePositives) / float64(extracted) * 100
	}
	if existing := r.TruePositives + r.FalseNegatives; existing > 0 {
		r.Recall = float64(r.TruePositives) / float64(existing) * 100
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}

	return r
}

// Classify scores one crawl result against the expected logo URL.
// Comparison is exact after whitespace trimming; a "close enough" URL is
// still the wrong URL.
func Classify(result *model.CrawlResult, expected string) Outcome {
	if result.Status == model.StatusUnreachable {
		return OutcomeNotWorking
	}

	expected = strings.TrimSpace(expected)
	got := strings.TrimSpace(result.LogoURL)

	switch {
	case expected == "" && got == "":
		return OutcomeCorrect
	case expected == "":
		return OutcomeWrong
	case got == "":
		return OutcomeMissed
	case got == expected:
		return OutcomeCorrect
	default:
		return OutcomeWrong
	}
}

// Evaluate scores crawl results against the ground truth and aggregates
// them into a Report. Results for domains absent from the truth set are
// skipped; truth entries with no matching result contribute nothing either,
// since absence of a result says nothing about the extractor.
//
// The per-domain outcomes are returned alongside the report so callers can
// persist or display the raw labels.
func Evaluate(results []*model.CrawlResult, truth GroundTruth) (Report, map[string]Outcome) {
	perDomain := make(map[string]Outcome)
	outcomes := make([]Outcome, 0, len(results))

	for _, result := range results {
		expected, ok := truth[result.Domain.String()]
		if !ok {
			continue
		}
		o := Classify(result, expected)
		perDomain[result.Domain.String()] = o
		outcomes = append(outcomes, o)
	}

	return FromOutcomes(outcomes), perDomain
}
