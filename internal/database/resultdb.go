package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/logoscout/logoscout/internal/model"
)

// ErrNotFound is returned when no stored result exists for a domain.
var ErrNotFound = errors.New("result not found")

// dbFileName is the fixed database file name inside the data directory.
const dbFileName = "logoscout.db"

// ResultDB provides SQLite-based storage for extraction results. Each
// domain has at most one row; re-crawling a domain replaces its previous
// result.
type ResultDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ResultDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ResultDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*ResultDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves from batch workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ResultDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *ResultDB) Close() error {
	return rdb.db.Close()
}

// Path returns the path of the underlying database file.
func (rdb *ResultDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ResultDB) createTables() error {
	schema := `
	-- One row per domain; re-crawls replace the previous result
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL UNIQUE,
		logo_url TEXT NOT NULL DEFAULT '',
		favicon_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		fetched_url TEXT NOT NULL DEFAULT '',
		crawled_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);
	CREATE INDEX IF NOT EXISTS idx_results_crawled_at ON results(crawled_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// Record is a stored extraction result.
type Record struct {
	ID         int64
	Domain     string
	LogoURL    string
	FaviconURL string
	Status     string
	Source     string
	FetchedURL string
	CrawledAt  time.Time
}

// CrawlResult converts the stored record back into the model type, for
// evaluating historical runs without re-crawling.
func (r *Record) CrawlResult() (*model.CrawlResult, error) {
	d, err := model.NewDomain(r.Domain)
	if err != nil {
		return nil, fmt.Errorf("stored domain %q: %w", r.Domain, err)
	}

	status, err := model.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("stored status %q: %w", r.Status, err)
	}

	source := model.StrategyNone
	if r.Source != "" {
		source, err = model.ParseStrategy(r.Source)
		if err != nil {
			return nil, fmt.Errorf("stored source %q: %w", r.Source, err)
		}
	}

	return &model.CrawlResult{
		Domain:     d,
		LogoURL:    r.LogoURL,
		FaviconURL: r.FaviconURL,
		Status:     status,
		Source:     source,
		FetchedURL: r.FetchedURL,
	}, nil
}

// SaveResult inserts or replaces the stored result for the domain.
func (rdb *ResultDB) SaveResult(ctx context.Context, result *model.CrawlResult) error {
	query := `
	INSERT INTO results (domain, logo_url, favicon_url, status, source, fetched_url)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(domain) DO UPDATE SET
		logo_url = excluded.logo_url,
		favicon_url = excluded.favicon_url,
		status = excluded.status,
		source = excluded.source,
		fetched_url = excluded.fetched_url,
		crawled_at = CURRENT_TIMESTAMP
	`

	source := ""
	if result.Source != model.StrategyNone {
		source = result.Source.String()
	}

	_, err := rdb.db.ExecContext(ctx, query,
		result.Domain.String(),
		result.LogoURL,
		result.FaviconURL,
		result.Status.String(),
		source,
		result.FetchedURL,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", result.Domain.String(), err)
	}

	return nil
}

// SaveResults stores a batch of results. Saving stops at the first failure
// so a broken database surfaces immediately rather than after a long run.
func (rdb *ResultDB) SaveResults(ctx context.Context, results []*model.CrawlResult) error {
	for _, r := range results {
		if err := rdb.SaveResult(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// GetResult retrieves the stored result for a domain.
// Returns ErrNotFound when the domain has never been crawled.
func (rdb *ResultDB) GetResult(ctx context.Context, domain string) (*Record, error) {
	query := `
	SELECT id, domain, logo_url, favicon_url, status, source, fetched_url, crawled_at
	FROM results
	WHERE domain = ?
	`

	record, err := scanRecord(rdb.db.QueryRowContext(ctx, query, domain))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, domain)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result for %s: %w", domain, err)
	}

	return record, nil
}

// ListResults returns all stored results ordered by domain.
func (rdb *ResultDB) ListResults(ctx context.Context) ([]*Record, error) {
	query := `
	SELECT id, domain, logo_url, favicon_url, status, source, fetched_url, crawled_at
	FROM results
	ORDER BY domain
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return records, nil
}

// CountByStatus returns the number of stored results per status.
func (rdb *ResultDB) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := rdb.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM results GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return counts, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one result row.
func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var crawledAt string

	if err := row.Scan(
		&record.ID,
		&record.Domain,
		&record.LogoURL,
		&record.FaviconURL,
		&record.Status,
		&record.Source,
		&record.FetchedURL,
		&crawledAt,
	); err != nil {
		return nil, err
	}

	record.CrawledAt = parseTimestamp(crawledAt)
	return &record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
