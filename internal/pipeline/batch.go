package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/logoscout/logoscout/internal/model"
)

// DefaultConcurrency is the number of domains processed simultaneously when
// no explicit limit is configured.
const DefaultConcurrency = 10

// BatchRunner processes many domains concurrently with a bounded worker
// count.
//
// Design decision: errgroup.SetLimit rather than a hand-rolled worker pool.
// Each domain gets its own goroutine, but only 'concurrency' of them run at
// a time, and context cancellation propagates to in-flight fetches for free.
type BatchRunner struct {
	crawler     *Crawler
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchRunner.
type BatchOption func(*BatchRunner)

// WithConcurrency sets the maximum number of concurrently processed domains.
// Default is DefaultConcurrency.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchRunner) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch-level progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRunner) {
		b.logger = logger
	}
}

// NewBatchRunner creates a BatchRunner around the given crawler.
func NewBatchRunner(crawler *Crawler, opts ...BatchOption) *BatchRunner {
	b := &BatchRunner{
		crawler:     crawler,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run processes all domains and returns one result per input, in input
// order. Workers never fail the group: whatever goes wrong with a domain is
// encoded in its result's Status. The only error Run returns is context
// cancellation, and even then the results gathered so far are returned
// alongside it (unstarted domains are filled in as unreachable).
func (b *BatchRunner) Run(ctx context.Context, domains []model.Domain) ([]*model.CrawlResult, error) {
	b.logger.Info("starting batch",
		"total_domains", len(domains),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate so each worker writes its own slot; no locking needed
	// and input order is preserved.
	results := make([]*model.CrawlResult, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, d := range domains {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			b.logger.Info("processing domain",
				"domain", d.String(),
				"index", i+1,
				"total", len(domains),
			)

			results[i] = b.crawler.Process(gctx, d)
			return nil
		})
	}

	err := g.Wait()

	// On cancellation some slots were never started. Fill them so the
	// one-result-per-input contract holds for callers that keep going.
	for i, r := range results {
		if r == nil {
			results[i] = &model.CrawlResult{
				Domain: domains[i],
				Status: model.StatusUnreachable,
			}
		}
	}

	b.logger.Info("batch complete",
		"total_domains", len(domains),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// RunWithCallback processes all domains and invokes callback as each result
// completes, in completion order. The callback runs on the worker goroutine
// that produced the result, so it must be safe for concurrent use.
func (b *BatchRunner) RunWithCallback(
	ctx context.Context,
	domains []model.Domain,
	callback func(result *model.CrawlResult, index int),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, d := range domains {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			callback(b.crawler.Process(gctx, d), i)
			return nil
		})
	}

	return g.Wait()
}
