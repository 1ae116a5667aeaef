package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"TGD_API_URL=http://file:8000\n"+
			"TGD_AUTH_SCHEME=widget\n"+
			"# comment\n"+
			"TGD_REQUEST_TIMEOUT=15s\n"), 0o600))

	t.Run("dotenv file", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", envFile}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://file:8000", cfg.APIURL)
		assert.Equal(t, "widget", cfg.AuthScheme)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "info", cfg.LogLevel)
		_, set := os.LookupEnv(EnvAPIURL)
		assert.False(t, set, "reading the file must not modify the environment")
	})

	t.Run("process env wins over file", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", envFile}
		t.Setenv(EnvAPIURL, "http://process:9000")

		cfg := &Config{}
		parseEnv(cfg)
		assert.Equal(t, "http://process:9000", cfg.APIURL)
		assert.Equal(t, "widget", cfg.AuthScheme)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvStatePath, "")

		cfg := &Config{StatePath: "keep.db"}
		parseEnv(cfg)
		assert.Equal(t, "keep.db", cfg.StatePath)
	})

	t.Run("no default .env is fine", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{APIURL: "x"}
		require.NotPanics(t, func() { parseEnv(cfg) })
		assert.Equal(t, "x", cfg.APIURL)
	})

	t.Run("missing explicit file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(dir, "nope.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(EnvRequestTimeout, "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
