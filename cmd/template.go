package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type templateCmd struct {
	output string
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "write an empty positions file" }
func (*templateCmd) Usage() string {
	return `pnl template [-o <positions.csv>]

  Writes an empty positions CSV file with the expected header, to fill in
  with a spreadsheet or a text editor. It is printed when -o is not set.
`
}

func (c *templateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "file to write, it must not exist")
}

func (c *templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		if err := folio.EncodePositions(stdout, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing template: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	file, err := os.OpenFile(c.output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating template: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := folio.EncodePositions(file, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing template %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Successfully created %s\n", c.output)
	return subcommands.ExitSuccess
}
