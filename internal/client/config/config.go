package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the tgdialogs CLI.
//
// Fields:
//   - APIURL: base URL of the backend REST API.
//   - AuthScheme: "widget" (legacy /api/auth) or "bearer" (/api/v1 tokens).
//   - StatePath: path of the local SQLite store.
//   - RequestTimeout: per-request timeout; zero waits indefinitely.
//   - CallbackAddr: listen address of the loopback login host.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL         string
	AuthScheme     string
	StatePath      string
	RequestTimeout time.Duration
	CallbackAddr   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8000"
	c.AuthScheme = "bearer"
	c.StatePath = defaultStatePath()
	c.RequestTimeout = 0
	c.CallbackAddr = "127.0.0.1:0"
	c.LogLevel = "info"
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "tgdialogs.db"
	}
	return filepath.Join(dir, "tgdialogs", "state.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and a .env file), JSON (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
