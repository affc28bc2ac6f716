package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/logoscout/logoscout/internal/config"
	"github.com/logoscout/logoscout/internal/database"
	"github.com/logoscout/logoscout/internal/metrics"
	"github.com/logoscout/logoscout/internal/model"
	"github.com/logoscout/logoscout/internal/report"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Measure extraction quality against a labeled sample",
		Long: `Validate compares crawl results against hand-labeled ground truth and
reports precision, recall, and F1 as percentages.

Results come from a crawl output CSV (--results) or from the history
database (--db-dir). Ground truth is a CSV mapping each sampled domain to
its expected logo URL, with a blank URL meaning "this domain has no logo".
Domains labeled unreachable are excluded from the quality measures.

Alternatively, --outcomes takes a CSV of pre-judged labels (correct, wrong,
missed, not_working) and skips the comparison step.

Examples:
  # Compare a crawl output against ground truth
  logoscout validate --results results.csv --truth truth.csv

  # Validate results stored in the history database
  logoscout validate --db-dir ~/.local/share/logoscout --truth truth.csv

  # Compute measures from pre-judged outcome labels, as Markdown
  logoscout validate --outcomes outcomes.csv --markdown`,
		RunE: runValidateCmd,
	}

	// Input flags
	cmd.Flags().String("results", "", "Crawl results CSV to evaluate")
	cmd.Flags().String("truth", "", "Ground truth CSV (domain,expected_logo_url)")
	cmd.Flags().String("outcomes", "", "Pre-judged outcome labels CSV")
	cmd.Flags().String("db-dir", "", "Read results from the history database in this directory")

	// Output flags
	cmd.Flags().BoolP("markdown", "m", false, "Output the report as Markdown")
	cmd.Flags().BoolP("json", "j", false, "Output the report as JSON")
	cmd.Flags().StringP("output", "o", "", "Write the report to the specified file path")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, _ []string) error {
	resultsPath, err := cmd.Flags().GetString("results")
	if err != nil {
		return err
	}
	truthPath, err := cmd.Flags().GetString("truth")
	if err != nil {
		return err
	}
	outcomesPath, err := cmd.Flags().GetString("outcomes")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if asMarkdown && asJSON {
		return config.ErrConflictingReportFormats
	}

	// The results table carries no status column, so results loaded from a
	// CSV cannot be excluded as not_working; dead sites score as missed.
	if outcomesPath == "" && resultsPath != "" {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"warning: a results CSV has no status column, so unreachable domains count as missed; use --db-dir or --outcomes to exclude them")
	}

	rep, err := computeReport(cmd.Context(), resultsPath, truthPath, outcomesPath, dbDir)
	if err != nil {
		return err
	}

	return outputReport(rep, outputPath, asMarkdown, asJSON)
}

// computeReport builds the quality report from one of the supported inputs.
func computeReport(ctx context.Context, resultsPath, truthPath, outcomesPath, dbDir string) (metrics.Report, error) {
	// Pre-judged labels bypass the result/truth comparison entirely.
	if outcomesPath != "" {
		outcomes, err := readOutcomesFile(outcomesPath)
		if err != nil {
			return metrics.Report{}, err
		}
		return metrics.FromOutcomes(outcomes), nil
	}

	if truthPath == "" {
		return metrics.Report{}, errors.New("either --outcomes or --truth is required")
	}

	truth, err := readTruthFile(truthPath)
	if err != nil {
		return metrics.Report{}, err
	}

	var results []*model.CrawlResult
	switch {
	case resultsPath != "":
		results, err = readResultsFile(resultsPath)
	case dbDir != "":
		results, err = readResultsDB(ctx, dbDir)
	default:
		return metrics.Report{}, errors.New("either --results or --db-dir is required with --truth")
	}
	if err != nil {
		return metrics.Report{}, err
	}

	rep, _ := metrics.Evaluate(results, truth)
	return rep, nil
}

// readResultsFile loads crawl results from a results CSV.
func readResultsFile(path string) ([]*model.CrawlResult, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided results path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	results, err := report.ReadResultsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", path, err)
	}
	return results, nil
}

// readResultsDB loads crawl results from the history database.
func readResultsDB(ctx context.Context, dbDir string) ([]*model.CrawlResult, error) {
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(dbDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := db.ListResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]*model.CrawlResult, 0, len(records))
	for _, rec := range records {
		result, err := rec.CrawlResult()
		if err != nil {
			return nil, fmt.Errorf("invalid database record for %s: %w", rec.Domain, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// readTruthFile loads the ground truth CSV.
func readTruthFile(path string) (metrics.GroundTruth, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided truth path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open ground truth file: %w", err)
	}
	defer f.Close()

	truth, err := report.ReadGroundTruthCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth file %s: %w", path, err)
	}
	return truth, nil
}

// readOutcomesFile loads pre-judged outcome labels.
func readOutcomesFile(path string) ([]metrics.Outcome, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided outcomes path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open outcomes file: %w", err)
	}
	defer f.Close()

	outcomes, err := report.ReadOutcomesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read outcomes file %s: %w", path, err)
	}
	return outcomes, nil
}

// outputReport writes the quality report in the requested format.
func outputReport(rep metrics.Report, outputPath string, asMarkdown, asJSON bool) error {
	var output io.Writer = os.Stdout
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.MetricsWriter
	switch {
	case asMarkdown:
		writer = report.NewMarkdownWriter(output)
	case asJSON:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	default:
		writer = report.NewSimpleWriter(output)
	}

	if _, err := writer.WriteMetrics(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
