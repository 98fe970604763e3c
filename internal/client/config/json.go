package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akimovd/wastepoint/internal/flagx"
	"github.com/akimovd/wastepoint/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointURL    string         `json:"server_endpoint_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	TokenRefreshInterval timex.Duration `json:"token_refresh_interval"`
	DatabaseFile         string         `json:"database_file"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenRefreshInterval.Duration != 0 {
		cfg.TokenRefreshInterval = time.Duration(jc.TokenRefreshInterval.Duration)
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
}
