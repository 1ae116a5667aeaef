package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/flagx"
	"github.com/dmitrijs2005/tgdialogs/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration,
// so both "90s" and integer nanoseconds are accepted. Absent keys keep
// whatever value Config already had.
type JsonConfig struct {
	EndpointAddr                *string         `json:"endpoint_addr"`
	BotToken                    *string         `json:"bot_token"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AuthMaxAge                  *timex.Duration `json:"auth_max_age"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config flag into config. Without the flag nothing is loaded.
//
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.BotToken != nil {
		config.BotToken = *c.BotToken
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.AuthMaxAge != nil {
		config.AuthMaxAge = time.Duration(c.AuthMaxAge.Duration)
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
