package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTimeout is returned when the per-request timeout is not
	// positive. A zero or negative timeout would fail every fetch.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDomainTimeout is returned when the per-domain budget is not
	// positive.
	ErrInvalidDomainTimeout = errors.New("invalid domain timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent crawls at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidColumn is returned when the CSV column index is negative.
	ErrInvalidColumn = errors.New("invalid column: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
