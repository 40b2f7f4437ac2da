package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays cfg with COINBANK_* environment variables. Unset
// variables leave the current value untouched. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
