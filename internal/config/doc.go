// Package config provides configuration structures and utilities for jsrank.
// It defines the search endpoint, HTTP client settings, scan concurrency,
// ranking size and report output preferences, and loads optional overrides
// from a YAML configuration file.
package config
