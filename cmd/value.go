package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type valueCmd struct {
	csv   string
	html  bool
	abort bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the positions of a portfolio" }
func (*valueCmd) Usage() string {
	return `pnl value [-csv <summary.csv>] [-html] [-abort] <positions.csv>

  Loads the positions, prices each one against the configured market data
  provider and prints the summary table with the portfolio totals.

  A position that cannot be priced is reported and left out of the totals,
  unless -abort is set.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csv, "csv", "", "also write the summary table to this CSV file")
	f.BoolVar(&c.html, "html", false, "print the report as HTML instead of markdown")
	f.BoolVar(&c.abort, "abort", false, "stop at the first position that cannot be priced")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	valuer, providerName, err := newValuer(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating market data provider: %v\n", err)
		return subcommands.ExitFailure
	}

	policy := folio.IsolateFailures
	if c.abort {
		policy = folio.AbortOnFailure
	}
	err = p.RevalueAll(ctx, valuer, folio.WithPolicy(policy), folio.WithConcurrency(config.Concurrency))
	if err != nil && c.abort {
		fmt.Fprintf(os.Stderr, "Error valuing positions: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csv != "" {
		if err := writeSummary(c.csv, p.SummaryTable()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary to %q: %v\n", c.csv, err)
			return subcommands.ExitFailure
		}
	}

	doc := renderer.RenderReport(renderer.NewReport(p, today(), providerName))
	if c.html {
		out, err := markdownToHTML(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting report to HTML: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprint(stdout, out)
		return subcommands.ExitSuccess
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// writeSummary writes the summary rows to a CSV file.
func writeSummary(path string, rows []folio.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := folio.EncodeSummary(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
