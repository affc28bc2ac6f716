package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/fetcher"
	"github.com/logoscout/logoscout/internal/finder"
	"github.com/logoscout/logoscout/internal/model"
)

// DefaultDomainTimeout bounds the total time spent on one domain across all
// of its candidate pages.
const DefaultDomainTimeout = 60 * time.Second

// Crawler processes a single domain end to end: fetch each candidate page,
// parse it, and run the finder chain until a logo turns up or the page list
// is exhausted.
//
// A Crawler is safe for concurrent use; all mutable state lives in the
// per-call scope.
type Crawler struct {
	fetcher       *fetcher.Fetcher
	chain         *Chain
	domainTimeout time.Duration
	logger        *slog.Logger
}

// CrawlerOption configures a Crawler.
type CrawlerOption func(*Crawler)

// WithFetcher sets the page fetcher.
func WithFetcher(f *fetcher.Fetcher) CrawlerOption {
	return func(c *Crawler) {
		c.fetcher = f
	}
}

// WithChain sets the finder chain.
func WithChain(chain *Chain) CrawlerOption {
	return func(c *Crawler) {
		c.chain = chain
	}
}

// WithDomainTimeout bounds the total time spent per domain.
func WithDomainTimeout(d time.Duration) CrawlerOption {
	return func(c *Crawler) {
		if d > 0 {
			c.domainTimeout = d
		}
	}
}

// WithCrawlerLogger sets a custom logger.
func WithCrawlerLogger(logger *slog.Logger) CrawlerOption {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// NewCrawler creates a Crawler with default fetcher, chain, and timeout.
func NewCrawler(opts ...CrawlerOption) *Crawler {
	c := &Crawler{
		domainTimeout: DefaultDomainTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.fetcher == nil {
		c.fetcher = fetcher.New(fetcher.WithLogger(c.logger))
	}
	if c.chain == nil {
		c.chain = NewChain(WithChainLogger(c.logger))
	}

	return c
}

// Process crawls one domain and always returns exactly one result; failures
// are encoded in the result's Status, never returned as errors.
//
// The candidate pages are tried in order. A page that fetches and parses
// but yields no logo still contributes its favicon and serves as the
// fallback outcome; later pages get a chance to do better. A DNS failure on
// the root page means the whole domain does not exist, so remaining pages
// (subdomains of the same name) are skipped.
func (c *Crawler) Process(ctx context.Context, d model.Domain) *model.CrawlResult {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.domainTimeout)
	defer cancel()

	fallback := &model.CrawlResult{
		Domain: d,
		Status: model.StatusUnreachable,
	}

	for i, pageURL := range d.PageURLs() {
		res := c.fetcher.FetchURL(ctx, d, pageURL)
		if !res.OK() {
			c.logger.Debug("page fetch failed",
				"domain", d.String(),
				"url", pageURL,
				"kind", res.Err.Kind.String(),
			)
			if i == 0 && res.Err.Kind == model.FetchErrorDNS {
				// The domain itself does not resolve; about.{domain} and
				// {domain}/about cannot fare better.
				fallback.Elapsed = time.Since(start)
				return fallback
			}
			continue
		}

		result := c.processPage(d, res)
		if result.Found() {
			result.Elapsed = time.Since(start)
			return result
		}

		// Keep the best non-found outcome seen so far. A parsed page beats
		// an unreachable placeholder even without a logo.
		if betterFallback(result, fallback) {
			fallback = result
		}
	}

	fallback.Elapsed = time.Since(start)
	return fallback
}

// processPage parses one fetched page and runs the finder chain over it.
func (c *Crawler) processPage(d model.Domain, res *model.FetchResult) *model.CrawlResult {
	result := &model.CrawlResult{
		Domain:     d,
		FetchedURL: res.FinalURL,
	}

	doc := document.Parse(res.Body, res.ContentType)
	if doc.Empty() {
		result.Status = model.StatusParseError
		return result
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil {
		base = nil
	}

	// Favicon is advisory and independent of the logo outcome, so it is
	// extracted before the chain runs and kept even on not-found pages.
	if href := finder.FindFavicon(doc); href != "" {
		if resolved, err := ResolveURL(base, href); err == nil {
			result.FaviconURL = resolved
		}
	}

	logoURL, source := c.chain.Resolve(doc, base)
	if logoURL == "" {
		result.Status = model.StatusNotFound
		return result
	}

	c.logger.Debug("logo found",
		"domain", d.String(),
		"url", logoURL,
		"source", source.String(),
		"page", res.FinalURL,
	)

	result.Status = model.StatusFound
	result.LogoURL = logoURL
	result.Source = source
	return result
}

// betterFallback reports whether candidate is a more informative non-found
// outcome than current: not-found (page parsed fine) beats parse-error,
// which beats unreachable.
func betterFallback(candidate, current *model.CrawlResult) bool {
	return fallbackWeight(candidate.Status) > fallbackWeight(current.Status)
}

func fallbackWeight(s model.Status) int {
	switch s {
	case model.StatusNotFound:
		return 2
	case model.StatusParseError:
		return 1
	default:
		return 0
	}
}
