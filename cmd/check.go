package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type checkCmd struct {
	online bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate a positions file" }
func (*checkCmd) Usage() string {
	return `pnl check [-online] <positions.csv>

  Validates the positions file and reports every invalid row.

  With -online, every ticker is also looked up on the configured market data
  provider, and the tickers it does not know are reported.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.online, "online", false, "also check that the provider knows every ticker")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one positions CSV file is required.")
		return subcommands.ExitUsageError
	}

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	p, err := folio.LoadPositions(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.online {
		provider, _, err := newProvider(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating market data provider: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := folio.CheckTickers(ctx, provider, p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			if errors.Is(err, folio.ErrUnknownTicker) {
				fmt.Fprintln(os.Stderr, "Check the ticker symbols in the file.")
			}
			return subcommands.ExitFailure
		}
	}

	fmt.Fprintf(stdout, "%s: %d positions OK\n", f.Arg(0), p.Len())
	return subcommands.ExitSuccess
}
