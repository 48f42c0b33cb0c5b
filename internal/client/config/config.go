package config

import "time"

// Config holds runtime settings for the finledger CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API, without a trailing slash.
//   - LocalDBPath: sqlite file for persisted client state (the auth token).
//   - RequestTimeout: per-request HTTP timeout.
//   - ResendCooldown: client-side pause between OTP/verification resends.
//   - GoogleClientID: OAuth client id forwarded on Google sign-in.
type Config struct {
	BaseURL        string
	LocalDBPath    string
	RequestTimeout time.Duration
	ResendCooldown time.Duration
	GoogleClientID string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000/api"
	c.LocalDBPath = "finledger.db"
	c.RequestTimeout = 15 * time.Second
	c.ResendCooldown = 30 * time.Second
	c.GoogleClientID = ""
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
