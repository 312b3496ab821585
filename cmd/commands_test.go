package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	setupMarket(t)
	positions := writeFile(t, "positions.csv", positionsFile)

	out, status := run(t, &checkCmd{}, positions)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, positions+": 2 positions OK\n", out)

	out, status = run(t, &checkCmd{}, "-online", positions)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, positions+": 2 positions OK\n", out)
}

func TestCheck_UnknownTicker(t *testing.T) {
	setupMarket(t)
	positions := writeFile(t, "positions.csv", positionsFile+"FAKE,2024-01-02,1\n")

	// Without -online the file is only checked for syntax.
	_, status := run(t, &checkCmd{}, positions)
	assert.Equal(t, subcommands.ExitSuccess, status)

	out, status := run(t, &checkCmd{}, "-online", positions)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Empty(t, out)
}

func TestCheck_InvalidRows(t *testing.T) {
	setupMarket(t)
	positions := writeFile(t, "positions.csv", "ticker,date,quantity\nAAPL,2024-13-02,1\n$$$,2024-01-02,1\n")

	_, status := run(t, &checkCmd{}, positions)
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestTemplate(t *testing.T) {
	out, status := run(t, &templateCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "ticker,date,quantity\n", out)

	path := filepath.Join(t.TempDir(), "positions.csv")
	_, status = run(t, &templateCmd{}, "-o", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ticker,date,quantity\n", string(got))

	// An existing file is never overwritten.
	_, status = run(t, &templateCmd{}, "-o", path)
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestQuote(t *testing.T) {
	setupMarket(t)

	out, status := run(t, &quoteCmd{}, "aapl", "MSFT")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "| AAPL | 2024-06-03 | $150.00 |")
	assert.Contains(t, out, "| MSFT | 2024-06-03 | $110.00 |")

	out, status = run(t, &quoteCmd{}, "AAPL", "FAKE")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out, "| FAKE | unknown | n/a |")

	_, status = run(t, &quoteCmd{}, "NOT A TICKER")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestHistory(t *testing.T) {
	setupMarket(t)

	out, status := run(t, &historyCmd{}, "AAPL")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# History for AAPL")
	assert.Contains(t, out, "3 daily closes from 2024-01-02 to 2024-06-03.")

	out, status = run(t, &historyCmd{}, "-since", "2024-01-03", "AAPL")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "2 daily closes from 2024-01-03 to 2024-06-03.")
	assert.Contains(t, out, "| 2024-01-03 | $131.00 |")
	assert.NotContains(t, out, "| 2024-01-02 |")

	out, status = run(t, &historyCmd{}, "FAKE")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "No market data.")

	_, status = run(t, &historyCmd{}, "-since", "yesterday", "AAPL")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestFetch_NeedsOnlineProvider(t *testing.T) {
	setupMarket(t)
	_, status := run(t, &fetchCmd{}, "AAPL")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestTopic(t *testing.T) {
	out, status := run(t, &topicCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "* positions:")

	_, status = run(t, &topicCmd{}, "no-such-topic")
	assert.Equal(t, subcommands.ExitUsageError, status)

	out, status = run(t, &topicCmd{}, "-list")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "configuration\nmarket-data\npositions\nproviders\nvaluation\n", out)
}

func TestCompletionCommand(t *testing.T) {
	root := completionCommand()
	for _, name := range []string{"value", "check", "template", "quote", "history", "fetch", "search", "topic", "completion"} {
		assert.Contains(t, root.Sub, name)
	}
	assert.Contains(t, root.Sub["value"].Flags, "csv")
	assert.Contains(t, root.Sub["value"].Flags, "abort")
	assert.Contains(t, root.Flags, "provider")
	assert.NotEmpty(t, topicPredictor{}.Predict(""))
}
