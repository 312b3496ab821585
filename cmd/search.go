package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search tickers on EODHD" }
func (*searchCmd) Usage() string {
	return `pnl search [-n <count>] <search term>

  Searches securities by name, ticker or ISIN via the EOD Historical Data
  API and prints the ticker to write in a positions file for each result.

  Requires the EODHD_API_KEY environment variable or the -eodhd-api-key flag.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "maximum number of results to print")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	qctx, cancel := queryContext(ctx, config.GetTimeout())
	defer cancel()
	results, err := newEODHDClient(config).Search(qctx, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(results) == 0 {
		fmt.Fprintf(stdout, "No results found for '%s'.\n", term)
		return subcommands.ExitSuccess
	}
	if c.limit > 0 && len(results) > c.limit {
		results = results[:c.limit]
	}

	fmt.Fprintf(stdout, "Found %d results for '%s':\n\n", len(results), term)
	for _, item := range results {
		fmt.Fprintf(stdout, "%s\n", item.Ticker())
		fmt.Fprintf(stdout, "    Name        : %s\n", item.Name)
		fmt.Fprintf(stdout, "    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		if item.ISIN != "" {
			fmt.Fprintf(stdout, "    ISIN        : %s\n", item.ISIN)
		}
		if !item.PreviousCloseDate.IsZero() {
			fmt.Fprintf(stdout, "    Prev. Close : %.2f on %s\n", item.PreviousClose, item.PreviousCloseDate)
		}
		fmt.Fprintln(stdout)
	}
	return subcommands.ExitSuccess
}
