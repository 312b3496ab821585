package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/folio/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// fileFlags are the flags taking a file or folder path.
var fileFlags = map[string]complete.Predictor{
	"csv":    predict.Files("*.csv"),
	"o":      predict.Files("*"),
	"config": predict.Files("*.toml"),
	"market": predict.Dirs("*"),
}

// flagPredictors predicts the values of the flags of fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := fileFlags[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// completionCommand describes the pnl command line for shell completion.
func completionCommand() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, group := range Commands {
		for _, cmd := range group {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			switch cmd.Name() {
			case "value", "check":
				sub.Args = predict.Files("*.csv")
			case "topic":
				sub.Args = topicPredictor{}
			}
			root.Sub[cmd.Name()] = sub
		}
	}
	return root
}

// Complete handles a shell completion request, or the COMP_INSTALL and COMP_UNINSTALL
// environment variables, and reports whether it did. The main package then returns at once.
func Complete(name string) bool {
	if os.Getenv("COMP_LINE") == "" && os.Getenv("COMP_INSTALL") == "" && os.Getenv("COMP_UNINSTALL") == "" {
		return false
	}
	completionCommand().Complete(name)
	return true
}

type completionCmd struct{}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "install shell completion" }
func (*completionCmd) Usage() string {
	return `pnl completion

  Prints how to install or remove the shell completion of pnl for bash, zsh
  or fish.
`
}

func (c *completionCmd) SetFlags(f *flag.FlagSet) {}

func (c *completionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := path.Base(os.Args[0])
	fmt.Fprintf(stdout, "To install the completion of %s in your shell, run:\n\n", name)
	fmt.Fprintf(stdout, "    COMP_INSTALL=1 %s\n\n", name)
	fmt.Fprintf(stdout, "To remove it, run:\n\n")
	fmt.Fprintf(stdout, "    COMP_UNINSTALL=1 %s\n", name)
	return subcommands.ExitSuccess
}

// topicPredictor predicts documentation topic names.
type topicPredictor struct{}

func (topicPredictor) Predict(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}
