// Package config loads runtime configuration for the coin bank CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c / -config or $COINBANK_CONFIG.
//  3. Environment variables (COINBANK_BASE_URL, COINBANK_POLL_INTERVAL,
//     COINBANK_DB_PATH, COINBANK_LOG_FILE, COINBANK_LOG_LEVEL).
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the bank API
//	-i int      balance refresh interval (seconds)
//	-d string   path to the local SQLite database
//	-f string   log file path ("" logs to stderr)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://bank.foxsrv.net",
//	  "poll_interval": "2s",
//	  "db_path": "coinbank.db",
//	  "log_file": "coinbank.log",
//	  "log_level": "info"
//	}
package config
