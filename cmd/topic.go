package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `pnl topic [-list] [<topic>...]

  Prints the documentation topics in order, "*" for all of them. Without a
  topic, prints the index.

`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "print the topic names, one per line")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.list {
		fmt.Fprintln(stdout, strings.Join(names, "\n"))
		return subcommands.ExitSuccess
	}

	requested := f.Args()
	if len(requested) == 0 {
		requested = append(requested, "readme")
	}
	content, err := docs.GetTopics(requested...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\navailable topics: %s\n", err, strings.Join(names, ", "))
		return subcommands.ExitUsageError
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
