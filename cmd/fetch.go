package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type fetchCmd struct {
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily closes into a market data folder" }
func (*fetchCmd) Usage() string {
	return `pnl fetch [-o <folder>] <TICKER>...

  Downloads the full daily close history of each ticker from the configured
  online provider (yahoo or eodhd) and merges it into a market data folder.

  The folder can then be used offline with -provider memory.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "market data folder to update, the configured market path by default")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required.")
		return subcommands.ExitUsageError
	}
	var tickers []string
	for _, arg := range f.Args() {
		ticker := folio.NormalizeTicker(arg)
		if err := folio.ValidateTicker(ticker); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", arg, err)
			return subcommands.ExitUsageError
		}
		tickers = append(tickers, ticker)
	}

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if config.Provider == providerMemory {
		fmt.Fprintln(os.Stderr, "Error: fetch needs an online provider, use -provider yahoo or -provider eodhd.")
		return subcommands.ExitUsageError
	}
	folder := c.output
	if folder == "" {
		folder = config.Market.Path
	}

	provider, name, err := newProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating market data provider: %v\n", err)
		return subcommands.ExitFailure
	}
	market, err := folio.DecodeMarketData(folder)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := fetchHistories(ctx, provider, market, tickers, config); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching from %s: %v\n", name, err)
		return subcommands.ExitFailure
	}

	if err := folio.EncodeMarketData(folder, market); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Successfully updated %s with %d tickers from %s\n", folder, len(tickers), name)
	return subcommands.ExitSuccess
}

// fetchHistories downloads the histories of tickers into market, up to config.Concurrency at a
// time. Unknown tickers are errors.
func fetchHistories(ctx context.Context, provider folio.Provider, market *folio.MarketData, tickers []string, config *Config) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)
	for _, ticker := range tickers {
		g.Go(func() error {
			qctx, cancel := queryContext(gctx, config.GetTimeout())
			defer cancel()
			h, err := provider.History(qctx, ticker)
			if err != nil {
				return fmt.Errorf("%s: %w", ticker, err)
			}
			if h == nil || h.Len() == 0 {
				return fmt.Errorf("%w: %s", folio.ErrUnknownTicker, ticker)
			}
			log.Info().Str("ticker", ticker).Int("closes", h.Len()).Msg("history fetched")

			mu.Lock()
			defer mu.Unlock()
			market.Merge(ticker, h)
			return nil
		})
	}
	return g.Wait()
}
