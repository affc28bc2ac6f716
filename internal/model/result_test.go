package model

import (
	"errors"
	"testing"
)

func TestStatusRoundTrip(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{StatusFound, StatusNotFound, StatusUnreachable, StatusParseError} {
		parsed, err := ParseStatus(status.String())
		if err != nil {
			t.Fatalf("failed to parse %q: %v", status.String(), err)
		}
		if parsed != status {
			t.Errorf("round trip mismatch: %v -> %q -> %v", status, status.String(), parsed)
		}
	}

	if _, err := ParseStatus("bogus"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestStrategyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, strategy := range []Strategy{StrategyNone, StrategyExplicit, StrategyMeta, StrategySVG} {
		parsed, err := ParseStrategy(strategy.String())
		if err != nil {
			t.Fatalf("failed to parse %q: %v", strategy.String(), err)
		}
		if parsed != strategy {
			t.Errorf("round trip mismatch: %v -> %q -> %v", strategy, strategy.String(), parsed)
		}
	}

	if _, err := ParseStrategy("css"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestCrawlResultFound(t *testing.T) {
	t.Parallel()

	found := &CrawlResult{Status: StatusFound, LogoURL: "https://example.com/logo.png"}
	if !found.Found() {
		t.Error("expected Found() to be true")
	}

	for _, status := range []Status{StatusNotFound, StatusUnreachable, StatusParseError} {
		r := &CrawlResult{Status: status}
		if r.Found() {
			t.Errorf("expected Found() to be false for %v", status)
		}
	}

	var zero CrawlResult
	if zero.Found() {
		t.Error("a zero CrawlResult must not claim a logo")
	}
	if zero.Status.String() != "not_found" {
		t.Errorf("zero status = %q, want not_found", zero.Status.String())
	}
}

func TestFetchErrorMessage(t *testing.T) {
	t.Parallel()

	httpErr := &FetchError{Kind: FetchErrorHTTPStatus, StatusCode: 403}
	if got := httpErr.Error(); got != "fetch failed: http status 403" {
		t.Errorf("unexpected message: %q", got)
	}

	cause := errors.New("connection refused")
	connErr := &FetchError{Kind: FetchErrorConnection, Err: cause}
	if !errors.Is(connErr, cause) {
		t.Error("expected FetchError to unwrap to its cause")
	}
}
