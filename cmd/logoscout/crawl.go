package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/logoscout/logoscout/internal/config"
	"github.com/logoscout/logoscout/internal/database"
	"github.com/logoscout/logoscout/internal/fetcher"
	"github.com/logoscout/logoscout/internal/identity"
	"github.com/logoscout/logoscout/internal/model"
	"github.com/logoscout/logoscout/internal/pipeline"
	"github.com/logoscout/logoscout/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [domain...]",
		Short: "Extract logo URLs for the given domains",
		Long: `Crawl fetches each domain's candidate pages and extracts a representative
logo URL plus a favicon URL when the page declares one.

Domains come from positional arguments, from a list file (--list), or from
standard input when neither is given. List files hold one domain per line,
or CSV rows with --column selecting the domain column.

Every input domain produces exactly one output row; domains without a logo
keep their row with blank URL fields.

Examples:
  # Crawl two domains, CSV table to stdout
  logoscout crawl example.com example.org

  # Crawl the second CSV column of a file, JSON output to a file
  logoscout crawl --list domains.csv --column 1 --json -o results.json

  # Crawl from stdin and persist results to the history database
  cat domains.txt | logoscout crawl --save`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Input flags
	cmd.Flags().StringP("list", "l", "",
		"File with one domain per line (or CSV, see --column)")
	cmd.Flags().Int("column", 0,
		"Zero-based CSV column holding the domain in the list file")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Budget for each HTTP request")
	cmd.Flags().Duration("domain-timeout", config.DefaultDomainTimeout,
		"Total budget per domain across all candidate pages")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of domains crawled concurrently")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .logoscout in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Output a JSON array of results instead of the CSV table")
	cmd.Flags().StringP("output", "o", "",
		"Write results to the specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().BoolP("save", "s", false,
		"Persist results to the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (implies --save; default: XDG data dir)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newCommandLogger(cmd)
	slog.SetDefault(logger)

	// Context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger, cmd.InOrStdin())
}

// buildCrawlConfig creates a Config from cobra command flags.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ListFile, err = cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}

	cfg.Column, err = cmd.Flags().GetInt("column")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.DomainTimeout, err = cmd.Flags().GetDuration("domain-timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load overrides from the config file. An explicitly specified file
	// that does not exist is an error; a missing default is not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Domains: make(map[string]config.DomainConfig),
		}
	}

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir != "" {
		cfg.SaveToDB = true
	}

	cfg.Domains = args

	return cfg, nil
}

// readDomains collects and validates the input domains from positional
// arguments, the list file, or standard input. Invalid entries are logged
// and skipped rather than aborting the whole run.
func readDomains(cfg *config.Config, stdin io.Reader, logger *slog.Logger) ([]model.Domain, error) {
	var names []string
	var err error

	switch {
	case len(cfg.Domains) > 0:
		names = cfg.Domains
	case cfg.ListFile != "":
		names, err = readDomainList(cfg.ListFile, cfg.Column)
		if err != nil {
			return nil, err
		}
	default:
		names, err = readDomainLines(stdin, cfg.Column)
		if err != nil {
			return nil, err
		}
	}

	domains := make([]model.Domain, 0, len(names))
	for _, name := range names {
		d, err := model.NewDomain(name)
		if err != nil {
			logger.Warn("skipping invalid domain", "input", name, "error", err)
			continue
		}
		domains = append(domains, d)
	}

	return domains, nil
}

// readDomainList reads domains from a list file.
func readDomainList(path string, column int) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	return readDomainLines(f, column)
}

// readDomainLines extracts domain names from delimited input. Plain
// one-domain-per-line files parse as single-column CSV, so the same reader
// covers both formats. Comment lines and a leading header row are skipped.
func readDomainLines(r io.Reader, column int) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read domain list: %w", err)
	}

	var names []string
	for i, rec := range records {
		if column >= len(rec) {
			continue
		}
		field := strings.TrimSpace(rec[column])
		if field == "" {
			continue
		}
		if i == 0 && strings.EqualFold(field, "domain") {
			continue
		}
		names = append(names, field)
	}

	return names, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdin io.Reader) error {
	domains, err := readDomains(cfg, stdin, logger)
	if err != nil {
		return err
	}
	if len(domains) == 0 {
		return errors.New("no domains provided (pass arguments, --list, or pipe to stdin)")
	}

	logger.Info("starting crawl",
		"domains", len(domains),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	startTime := time.Now()

	results, runErr := crawlDomains(ctx, cfg, logger, domains)

	if err := outputResults(cfg, results); err != nil {
		return err
	}

	writeSummary(os.Stderr, results, time.Since(startTime))

	if cfg.SaveToDB {
		if err := saveResults(ctx, cfg, results, logger); err != nil {
			return err
		}
	}

	return runErr
}

// crawlDomains processes the input list, honoring per-domain skip and
// header overrides from the config file. The returned slice has exactly one
// result per input domain, in input order.
func crawlDomains(ctx context.Context, cfg *config.Config, logger *slog.Logger, domains []model.Domain) ([]*model.CrawlResult, error) {
	results := make([]*model.CrawlResult, len(domains))

	// Domains with their own header overrides need a dedicated fetcher, so
	// they are processed separately from the shared batch.
	var batchIdx []int
	var customIdx []int

	for i, d := range domains {
		switch {
		case cfg.FileConfig.ShouldSkip(d.String()):
			logger.Info("skipping domain per config", "domain", d.String())
			results[i] = &model.CrawlResult{Domain: d, Status: model.StatusNotFound}
		case len(cfg.FileConfig.Domains[d.String()].Headers) > 0:
			customIdx = append(customIdx, i)
		default:
			batchIdx = append(batchIdx, i)
		}
	}

	crawler := newCrawler(cfg, logger, cfg.FileConfig.Headers)
	runner := pipeline.NewBatchRunner(crawler,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	batch := make([]model.Domain, len(batchIdx))
	for j, i := range batchIdx {
		batch[j] = domains[i]
	}

	batchResults, runErr := runner.Run(ctx, batch)
	for j, i := range batchIdx {
		results[i] = batchResults[j]
	}

	for _, i := range customIdx {
		d := domains[i]
		dc := cfg.FileConfig.GetDomainConfig(d.String())
		results[i] = newCrawler(cfg, logger, dc.Headers).Process(ctx, d)
	}

	return results, runErr
}

// newCrawler builds a crawler from the configuration with the given extra
// headers.
func newCrawler(cfg *config.Config, logger *slog.Logger, headers map[string]string) *pipeline.Crawler {
	fetcherOpts := []fetcher.Option{
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithLogger(logger),
	}
	if len(cfg.FileConfig.UserAgents) > 0 {
		fetcherOpts = append(fetcherOpts, fetcher.WithIdentityPool(identity.NewPool(cfg.FileConfig.UserAgents...)))
	}
	if len(headers) > 0 {
		fetcherOpts = append(fetcherOpts, fetcher.WithExtraHeaders(headers))
	}

	return pipeline.NewCrawler(
		pipeline.WithFetcher(fetcher.New(fetcherOpts...)),
		pipeline.WithChain(pipeline.NewChain(pipeline.WithChainLogger(logger))),
		pipeline.WithDomainTimeout(cfg.DomainTimeout),
		pipeline.WithCrawlerLogger(logger),
	)
}

// outputResults writes the result table in the requested format.
func outputResults(cfg *config.Config, results []*model.CrawlResult) error {
	var output *os.File
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	if cfg.JSONOutput {
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	} else {
		writer = report.NewCSVWriter(output)
	}

	if _, err := writer.WriteResults(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// writeSummary prints the per-status counts to the given writer. It goes to
// stderr so the result table on stdout stays machine-readable.
func writeSummary(w io.Writer, results []*model.CrawlResult, elapsed time.Duration) {
	counts := make(map[model.Status]int)
	for _, r := range results {
		counts[r.Status]++
	}

	fmt.Fprintf(w, "crawled %d domain(s) in %s: %d found, %d not found, %d unreachable, %d parse errors\n",
		len(results),
		elapsed.Round(time.Millisecond),
		counts[model.StatusFound],
		counts[model.StatusNotFound],
		counts[model.StatusUnreachable],
		counts[model.StatusParseError],
	)
}

// saveResults persists the results to the history database.
func saveResults(ctx context.Context, cfg *config.Config, results []*model.CrawlResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DatabaseDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveResults(ctx, results); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	logger.Info("results saved", "dir", cfg.DatabaseDir(), "count", len(results))
	return nil
}
