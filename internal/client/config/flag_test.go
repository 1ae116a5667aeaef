package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://api:8000", "-s", "widget", "-d", "/tmp/s.db", "-t", "10s", "-b", "127.0.0.1:8765", "-l", "debug"}, expectPanic: false,
			expected: &Config{APIURL: "http://api:8000", AuthScheme: "widget", StatePath: "/tmp/s.db", RequestTimeout: 10 * time.Second, CallbackAddr: "127.0.0.1:8765", LogLevel: "debug"}},
		{name: "Test2 foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-a", "http://api:8000"}, expectPanic: false,
			expected: &Config{APIURL: "http://api:8000"}},
		{name: "Test3 incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
