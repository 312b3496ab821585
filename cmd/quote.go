package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the latest close of tickers" }
func (*quoteCmd) Usage() string {
	return `pnl quote <TICKER>...

  Prints the most recent daily close of each ticker, as served by the
  configured market data provider.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required.")
		return subcommands.ExitUsageError
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

	status := subcommands.ExitSuccess
	quotes := make([]renderer.TickerQuote, 0, f.NArg())
	for _, arg := range f.Args() {
		ticker := folio.NormalizeTicker(arg)
		if err := folio.ValidateTicker(ticker); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", arg, err)
			return subcommands.ExitUsageError
		}
		q := renderer.TickerQuote{Ticker: ticker}
		qctx, cancel := queryContext(ctx, config.GetTimeout())
		q.Quote, q.Found, q.Err = provider.LatestClose(qctx, ticker)
		cancel()
		if q.Err != nil || !q.Found {
			status = subcommands.ExitFailure
		}
		quotes = append(quotes, q)
	}
	printMarkdown(renderer.QuotesMarkdown(quotes, config.Currency))
	return status
}

// queryContext bounds a single provider query, timeout 0 means no bound.
func queryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
