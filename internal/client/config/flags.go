package config

import (
	"flag"
	"os"
	"time"

	"github.com/akimovd/wastepoint/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-i int      token refresh interval in seconds (default from Config)
//	-d string   local database file (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointURL, "a", cfg.ServerEndpointURL, "base URL of the backend API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refreshInterval := fs.Int("i", int(cfg.TokenRefreshInterval.Seconds()), "token refresh interval (in seconds)")
	fs.StringVar(&cfg.DatabaseFile, "d", cfg.DatabaseFile, "local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.TokenRefreshInterval = time.Duration(*refreshInterval) * time.Second
}
