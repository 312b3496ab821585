package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/term"
)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printMarkdown prints a markdown document, rendered for the terminal when stdout is one and raw
// otherwise so that the output can be piped.
func printMarkdown(doc string) {
	if !isTerminal() {
		fmt.Fprint(stdout, doc)
		return
	}

	width := 100
	if f, ok := stdout.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Fprint(stdout, doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Fprint(stdout, doc)
		return
	}
	fmt.Fprint(stdout, out)
}

// markdownToHTML converts a markdown document, tables included, to an HTML fragment.
func markdownToHTML(doc string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(doc), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
