// Package config loads runtime settings for the WastePoint terminal client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenRefreshInterval: how often the token watcher inspects the access
//     token for upcoming expiry.
//   - DatabaseFile: path of the local sqlite database holding the storage
//     slots.
type Config struct {
	ServerEndpointURL    string
	RequestTimeout       time.Duration
	TokenRefreshInterval time.Duration
	DatabaseFile         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.TokenRefreshInterval = 30 * time.Second
	c.DatabaseFile = "wastepoint.db"
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
