package config

import (
	"flag"
	"os"
	"time"

	"github.com/Nandighoshbus/busticket-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the ticketing API (default from Config)
//	-d string   path to the local session database (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-i int      token sweep interval in seconds (default from Config)
//	-l string   log file path (default: stderr)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the ticketing API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	sweepInterval := fs.Int("i", int(cfg.TokenSweepInterval.Seconds()), "token sweep interval (in seconds)")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file path (empty logs to stderr)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.TokenSweepInterval = time.Duration(*sweepInterval) * time.Second
}
