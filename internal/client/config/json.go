package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/flagx"
	"github.com/dmitrijs2005/tgdialogs/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only touches
// the keys it names.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	AuthScheme     *string         `json:"auth_scheme"`
	StatePath      *string         `json:"state_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	CallbackAddr   *string         `json:"callback_addr"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	copyString(&cfg.APIURL, jc.APIURL)
	copyString(&cfg.AuthScheme, jc.AuthScheme)
	copyString(&cfg.StatePath, jc.StatePath)
	copyString(&cfg.CallbackAddr, jc.CallbackAddr)
	copyString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func copyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
