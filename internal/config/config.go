package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultSearchURL is the search endpoint. The URL-escaped query term is
	// appended to it.
	DefaultSearchURL = "https://www.google.com/search?q="

	// DefaultUserAgent is sent with every request. Some search engines
	// serve a stripped-down result page to unknown agents.
	DefaultUserAgent = "Mozilla/5.0"

	// DefaultTimeout bounds each HTTP request, body read included.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of result pages scanned at once.
	DefaultConcurrency = 8

	// DefaultTop is the number of script filenames reported.
	DefaultTop = 5

	// DefaultMaxBodySize limits the response body read per page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "jsrank"
)

// Config holds all configuration options for jsrank.
// It is populated from defaults, the configuration file and CLI flags, and
// passed explicitly to the components that need it.
type Config struct {
	// Query is the search term.
	Query string

	// SearchURL is the search endpoint prefix; see SearchPageURL.
	SearchURL string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Concurrency is the number of result pages fetched in parallel.
	Concurrency int

	// Top is the number of script filenames to report.
	Top int

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. 0 means the default.
	MaxBodySize int64

	// ProxyAddress routes all requests through a SOCKS5 proxy when set.
	// Format: "host:port" or "socks5://[user:pass@]host:port".
	ProxyAddress string

	// Cookie is sent with every request, e.g. to pass a consent wall.
	// Format: "name=value" or "name1=value1; name2=value2".
	Cookie string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// Verbose enables debug log output.
	Verbose bool

	// ConfigFilePath is the path given with --config. When empty the file
	// is searched for; see FindConfigFile.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SearchURL:   DefaultSearchURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Top:         DefaultTop,
		MaxBodySize: DefaultMaxBodySize,
		Headers:     make(map[string]string),
	}
}

// XDGConfigDir returns the XDG config directory for jsrank.
// On Linux: ~/.config/jsrank
// On macOS: ~/Library/Application Support/jsrank
// On Windows: %APPDATA%\jsrank
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SearchPageURL returns the address of the search-results page for term.
func (c *Config) SearchPageURL(term string) string {
	return c.SearchURL + url.QueryEscape(strings.TrimSpace(term))
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return ErrNoQuery
	}

	u, err := url.Parse(c.SearchURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSearchURL, c.SearchURL)
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Top <= 0 {
		return ErrInvalidTop
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// ParseHeaders converts "Name=value" (or "Name: value") pairs into a map.
// Later entries override earlier ones.
func ParseHeaders(pairs []string) (map[string]string, error) {
	headers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		sep := strings.IndexAny(pair, "=:")
		if sep <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, pair)
		}
		name := strings.TrimSpace(pair[:sep])
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, pair)
		}
		headers[name] = strings.TrimSpace(pair[sep+1:])
	}
	return headers, nil
}
