package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and ParseHeaders, and can be
// checked with errors.Is().
var (
	// ErrNoQuery is returned when the search term is empty.
	ErrNoQuery = errors.New("no search term specified")

	// ErrInvalidSearchURL is returned when the search endpoint is not an
	// absolute http(s) URL.
	ErrInvalidSearchURL = errors.New("invalid search URL: must be an absolute http(s) URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTop is returned when the number of reported scripts is not positive.
	ErrInvalidTop = errors.New("invalid top: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidHeader is returned for a header flag without a name or separator.
	ErrInvalidHeader = errors.New("invalid header: expected Name=value")
)
