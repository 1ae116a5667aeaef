package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "TGD_API_URL"
	EnvAuthScheme     = "TGD_AUTH_SCHEME"
	EnvStatePath      = "TGD_STATE_PATH"
	EnvRequestTimeout = "TGD_REQUEST_TIMEOUT"
	EnvCallbackAddr   = "TGD_CALLBACK_ADDR"
	EnvLogLevel       = "TGD_LOG_LEVEL"
)

// parseEnv overlays Config with TGD_* variables.
//
// Values come from a dotenv file (the -env flag, otherwise ./.env if it
// exists) and from the process environment; the process environment wins.
// The file is read without modifying the environment.
//
// Panics if an explicitly named file cannot be read or a value does not
// parse (caller should recover if desired).
func parseEnv(cfg *Config) {
	vars := map[string]string{}

	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		vars = fileVars
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		panic(err)
	}

	for _, key := range []string{EnvAPIURL, EnvAuthScheme, EnvStatePath, EnvRequestTimeout, EnvCallbackAddr, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) {
	set := func(key string, dst *string) {
		if v, ok := vars[key]; ok && v != "" {
			*dst = v
		}
	}

	set(EnvAPIURL, &cfg.APIURL)
	set(EnvAuthScheme, &cfg.AuthScheme)
	set(EnvStatePath, &cfg.StatePath)
	set(EnvCallbackAddr, &cfg.CallbackAddr)
	set(EnvLogLevel, &cfg.LogLevel)

	if v, ok := vars[EnvRequestTimeout]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
