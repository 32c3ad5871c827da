// Package config loads runtime settings for the busticket CLI from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence.
package config

import "time"

// Config holds runtime settings for the busticket CLI.
//
// Fields:
//   - APIBaseURL: base URL of the ticketing REST API (including any path
//     prefix, e.g. http://localhost:8080/api/v1).
//   - DatabasePath: SQLite file holding the durable session store.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenSweepInterval: how often the background sweep checks the access
//     token for expiry.
//   - LogFile: optional log file path; empty logs to stderr.
type Config struct {
	APIBaseURL         string
	DatabasePath       string
	RequestTimeout     time.Duration
	TokenSweepInterval time.Duration
	LogFile            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.DatabasePath = "busticket.db"
	c.RequestTimeout = 30 * time.Second
	c.TokenSweepInterval = 60 * time.Second
	c.LogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
