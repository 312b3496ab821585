package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	since string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily closes of a ticker" }
func (*historyCmd) Usage() string {
	return `pnl history [-since <date>] <TICKER>

  Displays the daily closes of a ticker, most recent first. Use -since with a
  purchase date to see how a position evolved since it was bought.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.since, "since", "", "first day to display (YYYY-MM-DD), the whole history by default")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return subcommands.ExitUsageError
	}
	ticker := folio.NormalizeTicker(f.Arg(0))
	if err := folio.ValidateTicker(ticker); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	var since date.Date
	if c.since != "" {
		var err error
		if since, err = date.Parse(c.since); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -since: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	provider, _, err := newProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating market data provider: %v\n", err)
		return subcommands.ExitFailure
	}

	qctx, cancel := queryContext(ctx, config.GetTimeout())
	defer cancel()
	h, err := provider.History(qctx, ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history of %s: %v\n", ticker, err)
		return subcommands.ExitFailure
	}
	if h == nil {
		h = new(date.History[float64])
	}
	if !since.IsZero() {
		h = h.Since(since)
	}
	printMarkdown(renderer.HistoryMarkdown(ticker, h, config.Currency))
	return subcommands.ExitSuccess
}
