package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-b string   Telegram bot token
//	-k string   JWT HMAC secret key
//	-e int      access token validity, minutes
//	-m int      widget auth_date max age, minutes
//	-l string   log level
//
// Duration flags are accepted as integers in minutes and then converted
// to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-k", "-e", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.BotToken, "b", config.BotToken, "telegram bot token")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("e", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	authMaxAge := fs.Int("m", int(config.AuthMaxAge.Minutes()), "auth_max_age (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.AuthMaxAge = time.Duration(*authMaxAge) * time.Minute
}
