package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Nandighoshbus/busticket-cli/internal/flagx"
	"github.com/Nandighoshbus/busticket-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL         string         `json:"api_base_url"`
	DatabasePath       string         `json:"database_path"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	TokenSweepInterval timex.Duration `json:"token_sweep_interval"`
	LogFile            string         `json:"log_file"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); when neither is given, no JSON is loaded. Read
// or unmarshal errors panic (caller should recover if desired).
//
// Only non-zero JSON values override the config, so a partial file works.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.TokenSweepInterval.Duration != 0 {
		cfg.TokenSweepInterval = time.Duration(jc.TokenSweepInterval.Duration)
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
}
