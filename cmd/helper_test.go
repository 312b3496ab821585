package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

const marketFile = `{"on":"2024-01-02","AAPL":130,"MSFT":100}
{"on":"2024-01-03","AAPL":131}
{"on":"2024-06-03","AAPL":150,"MSFT":110}
`

// setupMarket writes a market data folder and points the memory provider to it.
func setupMarket(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024.jsonl"), []byte(marketFile), 0644))

	t.Setenv("PNL_PROVIDER", providerMemory)
	t.Setenv("PNL_MARKET", dir)
	t.Setenv("PNL_LOG_LEVEL", "off")
	t.Setenv("PNL_CONCURRENCY", "1")
	t.Setenv(testingNow, "2024-06-10")
	return dir
}

// writeFile writes content to a new file named name and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes a command with args and returns what it printed.
func run(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })

	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	status := c.Execute(context.Background(), fs)
	return buf.String(), status
}
