package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds everything needed to build an App.
type Config struct {
	Workers           int
	LogLevel          string
	LogFormat         string
	Extensions        []string
	LoadTimeout       time.Duration
	DocumentCacheSize int
	EventsURL         string
	PathVariables     map[string]string
}

// Default returns the configuration used when neither a file nor flags set a
// value.
func Default() Config {
	return Config{
		LogLevel:          "info",
		LogFormat:         "text",
		DocumentCacheSize: 512,
		PathVariables:     map[string]string{},
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []string
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers must not be negative, got %d", cfg.Workers))
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("invalid log_format %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	if cfg.LoadTimeout < 0 {
		errs = append(errs, "load_timeout must not be negative")
	}
	if cfg.DocumentCacheSize < 0 {
		errs = append(errs, "document_cache_size must not be negative")
	}
	if cfg.EventsURL != "" {
		if u, err := url.Parse(cfg.EventsURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("invalid events_url %q", cfg.EventsURL))
		}
	}
	for name := range cfg.PathVariables {
		if name == "" || strings.Contains(name, "$") {
			errs = append(errs, fmt.Sprintf("invalid path variable name %q", name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.New("invalid configuration:\n- " + strings.Join(errs, "\n- "))
	}

	vars := make(map[string]string, len(cfg.PathVariables))
	for k, v := range cfg.PathVariables {
		vars[k] = v
	}
	cfg.PathVariables = vars
	return &cfg, nil
}
