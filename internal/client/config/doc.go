// Package config loads runtime configuration for the tgdialogs CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: TGD_* variables, from a dotenv file (-env, or ./.env if
//     present) overridden by the process environment.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     backend API base URL
//	-s string     auth scheme: widget or bearer
//	-d string     local state database path
//	-t duration   request timeout
//	-b string     loopback login host address
//	-l string     log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so request_timeout can be a string
// like "10s" or integer nanoseconds. Absent keys keep their earlier value:
//
//	{
//	  "api_url": "https://dialogs.example.com",
//	  "auth_scheme": "bearer",
//	  "state_path": "/home/me/.config/tgdialogs/state.db",
//	  "request_timeout": "10s",
//	  "callback_addr": "127.0.0.1:8765",
//	  "log_level": "debug"
//	}
package config
