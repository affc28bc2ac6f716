package model

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownStatus is returned when a status string cannot be parsed.
var ErrUnknownStatus = errors.New("unknown status")

// Status is the terminal outcome for a single domain.
type Status int

const (
	// StatusNotFound means the page was fetched and parsed but no finder
	// produced a candidate. A valid outcome, not an error — and the zero
	// value, so a CrawlResult never claims a logo it was not given.
	StatusNotFound Status = iota
	// StatusFound means a logo URL was extracted.
	StatusFound
	// StatusUnreachable means the domain could not be fetched on either
	// protocol attempt.
	StatusUnreachable
	// StatusParseError means the fetched body produced an empty document
	// model (binary garbage, empty body).
	StatusParseError
)

// String returns the string representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusUnreachable:
		return "unreachable"
	case StatusParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// ParseStatus converts a string back into a Status.
// Used when loading persisted results from the history database.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "found":
		return StatusFound, nil
	case "not_found":
		return StatusNotFound, nil
	case "unreachable":
		return StatusUnreachable, nil
	case "parse_error":
		return StatusParseError, nil
	default:
		return StatusNotFound, ErrUnknownStatus
	}
}

// CrawlResult is the terminal output for one domain. It is immutable once
// emitted; every input domain produces exactly one CrawlResult, whatever
// the outcome.
type CrawlResult struct {
	// Domain is the input domain this result belongs to.
	Domain Domain

	// LogoURL is the resolved absolute logo URL (or a data: URI for inline
	// SVG logos). Empty unless Status is StatusFound.
	LogoURL string

	// FaviconURL is the resolved favicon URL, if the page declared one.
	// Advisory output: populated independently of LogoURL and excluded
	// from quality metrics.
	FaviconURL string

	// Status is the terminal outcome.
	Status Status

	// Source is the finder that produced LogoURL (StrategyNone otherwise).
	Source Strategy

	// FetchedURL is the final URL of the page the result came from, after
	// redirects. Empty when the domain was unreachable.
	FetchedURL string

	// Elapsed is the wall-clock time spent processing the domain.
	Elapsed time.Duration
}

// Found reports whether a logo was extracted.
func (r *CrawlResult) Found() bool {
	return r.Status == StatusFound
}
