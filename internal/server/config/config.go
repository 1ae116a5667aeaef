// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the development server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - BotToken: Telegram bot token used to check login widget hashes.
//     Empty disables the check.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - AuthMaxAge: oldest auth_date accepted from the widget; 0 means no limit.
//   - LogLevel: slog level name.
type Config struct {
	EndpointAddr                string
	BotToken                    string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AuthMaxAge                  time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.BotToken = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.AuthMaxAge = 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
