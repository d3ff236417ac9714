package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   backend base URL
//	-m          serve auth from the simulated backend
//	-t int      network timeout (seconds)
//	-d string   local database file
//	-i int      online check interval (seconds)
//
// Unknown arguments are filtered out first so that -c/-config and any
// other component's flags do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-t", "-d", "-i"})

	fs := flag.NewFlagSet("wealthwise", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.BoolVar(&cfg.SimulatedAuth, "m", cfg.SimulatedAuth, "simulated authentication")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "network timeout (in seconds)")
	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "local database file")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only touch durations that were given, so sub-second values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.Timeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
