package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only -a, -i, -d, -f and -l are looked at; everything else in os.Args is
// filtered out with flagx.FilterArgs so -c/-config does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-d", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the bank API")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "balance refresh interval (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file path (empty for stderr)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" && *pollInterval > 0 {
			cfg.PollInterval = time.Duration(*pollInterval) * time.Second
		}
	})
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
}
