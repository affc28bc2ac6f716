package pipeline

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/finder"
	"github.com/logoscout/logoscout/internal/model"
)

// ErrNotResolvable is returned by ResolveURL when a candidate cannot become
// a usable absolute reference (javascript:, mailto:, app deep links, and
// similar non-fetchable schemes).
var ErrNotResolvable = errors.New("candidate does not resolve to a usable URL")

// Chain runs the logo finders in their fixed priority order against a
// parsed document. The chain short-circuits: once a finder produces a
// candidate that resolves to a usable URL, lower-priority finders are never
// consulted, even if they would have produced "better looking" candidates.
type Chain struct {
	finders []finder.Finder
	logger  *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithChainLogger sets a custom logger for the chain.
func WithChainLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// WithFinders overrides the default finder set. Used by tests; production
// code relies on the default priority order.
func WithFinders(finders ...finder.Finder) ChainOption {
	return func(c *Chain) {
		c.finders = finders
	}
}

// NewChain creates a Chain with the default finders.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{
		finders: finder.Chain(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Resolve runs the finder chain over the document and returns the winning
// logo URL, resolved against base, together with the strategy that produced
// it. Within a finder's candidate list the lowest rank wins; equal ranks
// fall back to document order. Candidates that fail URL resolution are
// skipped rather than terminating the chain, so a finder with only broken
// candidates yields to the next finder.
//
// Returns ("", StrategyNone) when no finder produces a resolvable candidate.
func (c *Chain) Resolve(doc *document.Document, base *url.URL) (string, model.Strategy) {
	for _, f := range c.finders {
		cands := f.Find(doc, base)
		if len(cands) == 0 {
			continue
		}

		c.logger.Debug("finder produced candidates",
			"finder", f.Name(),
			"count", len(cands),
		)

		for _, cand := range cands {
			resolved, err := ResolveURL(base, cand.URL)
			if err != nil {
				c.logger.Debug("candidate not resolvable",
					"finder", f.Name(),
					"candidate", cand.URL,
					"error", err,
				)
				continue
			}
			return resolved, cand.Source
		}
	}

	return "", model.StrategyNone
}

// ResolveURL turns a candidate reference into an absolute URL against the
// page base. Resolution is idempotent: feeding an already-resolved URL back
// in returns it unchanged.
//
//   - data: URIs pass through untouched (inlined SVG candidates).
//   - Absolute http(s) URLs are returned as-is.
//   - Protocol-relative references adopt https.
//   - Relative references resolve against base.
//   - Anything else (mailto:, javascript:, app schemes) is rejected.
func ResolveURL(base *url.URL, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", ErrNotResolvable
	}

	if strings.HasPrefix(candidate, "data:") {
		return candidate, nil
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", err
	}

	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		return u.String(), nil
	case u.Scheme == "" && u.Host != "":
		// Protocol-relative. The sites we crawl are fetched over https, so
		// that is the scheme the reference inherits.
		u.Scheme = "https"
		return u.String(), nil
	case u.Scheme != "":
		return "", ErrNotResolvable
	}

	if base == nil {
		return "", ErrNotResolvable
	}

	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", ErrNotResolvable
	}
	return resolved.String(), nil
}
