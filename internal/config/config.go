package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request budget covering both protocol
	// attempts' individual requests. 10 seconds tolerates slow origins
	// without letting a single dead page stall a large batch.
	DefaultTimeout = 10 * time.Second

	// DefaultDomainTimeout bounds the total time spent on one domain across
	// all of its candidate pages and retries.
	DefaultDomainTimeout = 60 * time.Second

	// DefaultBatchSize of 10 concurrent domains balances throughput with
	// resource usage. Higher values increase the chance of tripping
	// rate limits on shared CDN frontends.
	DefaultBatchSize = 10

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for any sane HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "logoscout"
)

// Config holds all configuration options for logoscout.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Timeout is the budget for each HTTP request.
	Timeout time.Duration

	// DomainTimeout is the total budget for one domain, covering all of
	// its candidate pages.
	DomainTimeout time.Duration

	// BatchSize is the number of domains crawled concurrently.
	BatchSize int

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 for the default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ListFile is a file with one domain per line, or a CSV when Column
	// is set. When empty and no positional domains are given, domains are
	// read from standard input.
	ListFile string

	// Column is the zero-based CSV column holding the domain when ListFile
	// is a delimited file. Zero reads the first column.
	Column int

	// JSONOutput emits a JSON array of results instead of the CSV table.
	JSONOutput bool

	// MarkdownOutput emits a Markdown metrics report (validate command).
	// Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile is the destination path for results. When set, output is
	// written there instead of stdout; parent directories are created.
	OutputFile string

	// DBDir is the directory for the SQLite result history database.
	// Defaults to the XDG data directory when persistence is enabled.
	DBDir string

	// SaveToDB indicates whether to persist results to the database.
	// Automatically true when DBDir is set explicitly.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .logoscout in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds identity-pool and per-domain overrides loaded from
	// the config file. Populated by LoadConfigFile.
	FileConfig *File

	// Domains is the list of input domains from positional arguments.
	Domains []string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:       DefaultTimeout,
		DomainTimeout: DefaultDomainTimeout,
		BatchSize:     DefaultBatchSize,
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for logoscout.
// On Linux: ~/.local/share/logoscout
// On macOS: ~/Library/Application Support/logoscout
// On Windows: %LOCALAPPDATA%\logoscout
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DatabaseDir returns the directory for the result history database:
// the explicitly configured DBDir, or the XDG data directory.
func (c *Config) DatabaseDir() string {
	if c.DBDir != "" {
		return c.DBDir
	}
	return XDGDataDir()
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing rather than at each
// point of use to fail fast with a clear message. The first error found is
// returned because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.DomainTimeout <= 0 {
		return ErrInvalidDomainTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Column < 0 {
		return ErrInvalidColumn
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingReportFormats
	}
	return nil
}
