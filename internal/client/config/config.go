package config

import "time"

// Config holds runtime settings for the softhub CLI.
//
// Fields:
//   - ServerURL: base URL of the softhub server.
//   - UploadToken: shared upload secret; prompted for when empty.
//   - RequestTimeout: per-request timeout for list calls. Transfers are
//     bounded by the caller's context instead.
//   - DownloadDir: directory downloads are written to.
type Config struct {
	ServerURL      string
	UploadToken    string
	RequestTimeout time.Duration
	DownloadDir    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3001"
	c.RequestTimeout = 60 * time.Second
	c.DownloadDir = "."
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
