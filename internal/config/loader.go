package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched for in the
// current and home directories.
const DefaultConfigFile = ".jsrank"

// XDGConfigFile is the configuration file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the configuration file.
// Zero values leave the corresponding setting untouched.
type File struct {
	SearchURL   string            `yaml:"searchURL,omitempty"`
	UserAgent   string            `yaml:"userAgent,omitempty"`
	Timeout     time.Duration     `yaml:"timeout,omitempty"`
	Concurrency int               `yaml:"concurrency,omitempty"`
	Top         int               `yaml:"top,omitempty"`
	MaxBodySize int64             `yaml:"maxBodySize,omitempty"`
	Proxy       string            `yaml:"proxy,omitempty"`
	Cookie      string            `yaml:"cookie,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Headers == nil {
		cf.Headers = make(map[string]string)
	}

	return &cf, nil
}

// Apply copies every non-zero setting of the file into cfg. Headers are
// merged, with the file's values winning.
func (cf *File) Apply(cfg *Config) {
	if cf.SearchURL != "" {
		cfg.SearchURL = cf.SearchURL
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.Timeout != 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.Concurrency != 0 {
		cfg.Concurrency = cf.Concurrency
	}
	if cf.Top != 0 {
		cfg.Top = cf.Top
	}
	if cf.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.MaxBodySize
	}
	if cf.Proxy != "" {
		cfg.ProxyAddress = cf.Proxy
	}
	if cf.Cookie != "" {
		cfg.Cookie = cf.Cookie
	}
	if len(cf.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(cf.Headers))
		}
		for k, v := range cf.Headers {
			cfg.Headers[k] = v
		}
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .jsrank in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .jsrank in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}
