package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the daily closes of a ticker, most recent first.
func HistoryMarkdown(ticker string, h *date.History[float64], currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", ticker)).PlainText("")
	if h.Len() == 0 {
		doc.PlainText("No market data.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Close"},
		Rows:   [][]string{},
	}
	var first date.Date
	for day, price := range h.Values() {
		if first.IsZero() {
			first = day
		}
		table.Rows = append(table.Rows, []string{day.String(), folio.M(price, currency).String()})
	}
	// Values iterates in chronological order.
	for i, j := 0, len(table.Rows)-1; i < j; i, j = i+1, j-1 {
		table.Rows[i], table.Rows[j] = table.Rows[j], table.Rows[i]
	}
	last, _ := h.Latest()
	doc.PlainText(fmt.Sprintf("%d daily closes from %s to %s.", h.Len(), first, last)).PlainText("")
	doc.Table(table)

	return doc.String()
}

// TickerQuote is the outcome of a latest close query for a ticker.
type TickerQuote struct {
	Ticker string
	Quote  folio.Quote
	Found  bool
	Err    error
}

// QuotesMarkdown renders the latest close of several tickers.
func QuotesMarkdown(quotes []TickerQuote, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Latest Closes").PlainText("")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Date", "Close"},
		Rows:   [][]string{},
	}
	for _, q := range quotes {
		switch {
		case q.Err != nil:
			table.Rows = append(table.Rows, []string{q.Ticker, "error", q.Err.Error()})
		case !q.Found:
			table.Rows = append(table.Rows, []string{q.Ticker, "unknown", "n/a"})
		default:
			table.Rows = append(table.Rows, []string{q.Ticker, q.Quote.Day.String(), folio.M(q.Quote.Close, currency).String()})
		}
	}
	doc.Table(table)

	return doc.String()
}
