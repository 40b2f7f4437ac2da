package config

import "time"

// Config holds runtime settings for the coin bank CLI.
//
// Fields:
//   - BaseURL: scheme://host of the bank API, without trailing slash.
//   - PollInterval: how often the balance is refreshed while logged in.
//   - DBPath: SQLite file holding the saved session and accounts.
//   - LogFile: where structured logs go; empty means stderr.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL      string        `env:"COINBANK_BASE_URL"`
	PollInterval time.Duration `env:"COINBANK_POLL_INTERVAL"`
	DBPath       string        `env:"COINBANK_DB_PATH"`
	LogFile      string        `env:"COINBANK_LOG_FILE"`
	LogLevel     string        `env:"COINBANK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://bank.foxsrv.net"
	c.PollInterval = 2 * time.Second
	c.DBPath = "coinbank.db"
	c.LogFile = "coinbank.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
