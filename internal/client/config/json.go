package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coinbank/internal/flagx"
	"github.com/dmitrijs2005/coinbank/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Intervals use
// timex.Duration so they can be written as "2s".
type JsonConfig struct {
	BaseURL      string         `json:"base_url"`
	PollInterval timex.Duration `json:"poll_interval"`
	DBPath       string         `json:"db_path"`
	LogFile      *string        `json:"log_file"`
	LogLevel     string         `json:"log_level"`
}

// parseJson overlays cfg with the fields present in the JSON file named by
// flagx.ConfigFilePath. Missing fields keep their current value; log_file
// may be set to "" explicitly to log to stderr. Read or decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
