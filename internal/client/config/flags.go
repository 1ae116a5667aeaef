package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/tgdialogs/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     backend API base URL
//	-s string     auth scheme: widget or bearer
//	-d string     path of the local state database
//	-t duration   request timeout, e.g. 10s (0 disables)
//	-b string     loopback login host listen address
//	-l string     log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend API base URL")
	fs.StringVar(&cfg.AuthScheme, "s", cfg.AuthScheme, "auth scheme (widget|bearer)")
	fs.StringVar(&cfg.StatePath, "d", cfg.StatePath, "local state database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout (0 = none)")
	fs.StringVar(&cfg.CallbackAddr, "b", cfg.CallbackAddr, "loopback login host address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
