// Package cmd implements the pnl command line application to value a portfolio of stock
// positions.
package cmd

import (
	"flag"
	"os"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/google/subcommands"
)

// Commands are the pnl subcommands, grouped for the help output.
var Commands = map[string][]subcommands.Command{
	"portfolio": {
		&valueCmd{},
		&checkCmd{},
		&templateCmd{},
	},
	"market data": {
		&quoteCmd{},
		&historyCmd{},
		&fetchCmd{},
		&searchCmd{},
	},
	"help": {
		&topicCmd{},
		&completionCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	for _, group := range []string{"portfolio", "market data", "help"} {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "pnl.toml", "Path to the TOML configuration file, skipped when missing")
	_          = flag.String("provider", "", "Market data provider: yahoo, eodhd or memory (overrides PNL_PROVIDER)")
	_          = flag.String("market", "", "Market data folder of the memory provider (overrides PNL_MARKET)")
	_          = flag.String("eodhd-api-key", "", "EODHD API key (overrides EODHD_API_KEY). You can get one at https://eodhd.com/")
	_          = flag.String("timeout", "", "Timeout of each market data query, like 10s; 0 disables it (overrides PNL_TIMEOUT)")
	_          = flag.Int("concurrency", 1, "Number of positions valued in parallel (overrides PNL_CONCURRENCY)")
	_          = flag.String("currency", "", "ISO 4217 currency of the provider prices (overrides PNL_CURRENCY)")
	_          = flag.String("log-level", "", "Log level: debug, info, warn, error or off (overrides PNL_LOG_LEVEL)")
)

// testingNow is the environment variable that freezes the current day, for reproducible outputs.
const testingNow = "PNL_TESTING_NOW"

// today returns the current day, or the one set in PNL_TESTING_NOW.
func today() date.Date {
	if v := os.Getenv(testingNow); v != "" {
		day, _, _ := strings.Cut(v, " ")
		if d, err := date.Parse(day); err == nil {
			return d
		}
	}
	return date.Today()
}
