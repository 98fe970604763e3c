package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app"}

	cfg := LoadConfig()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.TokenRefreshInterval)
	assert.Equal(t, "wastepoint.db", cfg.DatabaseFile)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app", "-a", "https://api.wastepoint.example", "-t", "5", "-i", "60", "-d", "alt.db"}

	cfg := LoadConfig()

	assert.Equal(t, "https://api.wastepoint.example", cfg.ServerEndpointURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60*time.Second, cfg.TokenRefreshInterval)
	assert.Equal(t, "alt.db", cfg.DatabaseFile)
}

func TestLoadConfig_JsonOverlay_FlagsStillWin(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_url": "https://json.example",
		"request_timeout": "7s",
		"database_file": "json.db"
	}`), 0o600))

	os.Args = []string{"app", "-c", path, "-a", "https://flag.example"}

	cfg := LoadConfig()

	// Flag beats JSON; JSON beats defaults.
	assert.Equal(t, "https://flag.example", cfg.ServerEndpointURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json.db", cfg.DatabaseFile)
	assert.Equal(t, 30*time.Second, cfg.TokenRefreshInterval)
}
