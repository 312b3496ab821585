package folio

import (
	"context"
	"maps"
	"slices"

	"github.com/etnz/folio/date"
)

// MarketData is an in-memory Provider holding daily closes per ticker.
//
// It serves offline valuations from a market data folder, and tests.
type MarketData struct {
	prices map[string]*date.History[float64]
}

// NewMarketData returns a new empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{prices: make(map[string]*date.History[float64])}
}

// Has reports whether there is at least one price for ticker.
func (m *MarketData) Has(ticker string) bool {
	h, ok := m.prices[ticker]
	return ok && h.Len() > 0
}

// Tickers returns all tickers with prices, in alphabetical order.
func (m *MarketData) Tickers() []string {
	return slices.Sorted(maps.Keys(m.prices))
}

// Append sets the close of ticker on day.
func (m *MarketData) Append(ticker string, day date.Date, price float64) {
	h, ok := m.prices[ticker]
	if !ok {
		h = new(date.History[float64])
		m.prices[ticker] = h
	}
	h.Append(day, price)
}

// Merge sets all closes of h for ticker.
func (m *MarketData) Merge(ticker string, h *date.History[float64]) {
	for day, price := range h.Values() {
		m.Append(ticker, day, price)
	}
}

// read a single value from the database for a given (ticker, day).
func (m *MarketData) read(ticker string, day date.Date) (float64, bool) {
	h, ok := m.prices[ticker]
	if !ok {
		return 0, false
	}
	return h.Get(day)
}

// LatestClose implements Provider.
func (m *MarketData) LatestClose(ctx context.Context, ticker string) (Quote, bool, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, false, err
	}
	if !m.Has(ticker) {
		return Quote{}, false, nil
	}
	day, price := m.prices[ticker].Latest()
	return Quote{Day: day, Close: price}, true, nil
}

// History implements Provider. The returned history is a copy.
func (m *MarketData) History(ctx context.Context, ticker string) (*date.History[float64], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, ok := m.prices[ticker]
	if !ok {
		return new(date.History[float64]), nil
	}
	return h.Since(date.Date{}), nil
}
