package folio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/etnz/folio/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// D is a helper for test to create dates from const
func D(s string) date.Date { return date.MustParse(s) }

// newMarket returns a market where AAPL last closed at 150 and was at 130 on 2024-01-02.
//
// 2024-01-06 and 2024-01-07 are a week-end, 2024-01-15 is a holiday.
func newMarket() *MarketData {
	m := NewMarketData()
	m.Append("AAPL", D("2024-01-02"), 130)
	m.Append("AAPL", D("2024-01-05"), 132)
	m.Append("AAPL", D("2024-01-08"), 135)
	m.Append("AAPL", D("2024-01-12"), 138)
	m.Append("AAPL", D("2024-01-16"), 140)
	m.Append("AAPL", D("2024-06-03"), 150)

	m.Append("MSFT", D("2024-01-02"), 100)
	m.Append("MSFT", D("2024-06-03"), 110)
	return m
}

// stubProvider is a Provider whose answers are set by tests.
type stubProvider struct {
	latest    func(ctx context.Context, ticker string) (Quote, bool, error)
	history   func(ctx context.Context, ticker string) (*date.History[float64], error)
	mu        sync.Mutex
	calls     map[string]int
	maxActive int
	active    int
}

var errBoom = errors.New("boom")

func (s *stubProvider) enter(ticker string) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[ticker]++
	s.active++
	s.maxActive = max(s.maxActive, s.active)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.active--
	}
}

func (s *stubProvider) LatestClose(ctx context.Context, ticker string) (Quote, bool, error) {
	defer s.enter(ticker)()
	return s.latest(ctx, ticker)
}

func (s *stubProvider) History(ctx context.Context, ticker string) (*date.History[float64], error) {
	defer s.enter(ticker)()
	if s.history == nil {
		return new(date.History[float64]), nil
	}
	return s.history(ctx, ticker)
}

// slowProvider wraps p and waits for delay, or the context, before each query.
type slowProvider struct {
	Provider
	delay time.Duration
}

func (s slowProvider) wait(ctx context.Context) error {
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s slowProvider) LatestClose(ctx context.Context, ticker string) (Quote, bool, error) {
	if err := s.wait(ctx); err != nil {
		return Quote{}, false, err
	}
	return s.Provider.LatestClose(ctx, ticker)
}

func (s slowProvider) History(ctx context.Context, ticker string) (*date.History[float64], error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Provider.History(ctx, ticker)
}

// sameValuation compares valuations amount by amount, decimals are not comparable with ==.
func sameValuation(a, b Valuation) bool {
	return a.PricedOn == b.PricedOn && a.PurchasedOn == b.PurchasedOn &&
		a.CurrentPrice.Equal(b.CurrentPrice) && a.PurchasePrice.Equal(b.PurchasePrice) &&
		a.CurrentValue.Equal(b.CurrentValue) && a.CostBasis.Equal(b.CostBasis) &&
		a.Profit.Equal(b.Profit) && a.Return.Equal(b.Return) &&
		a.CostPerUnit.Equal(b.CostPerUnit) && a.Degraded == b.Degraded
}

func sameTotals(a, b Totals) bool {
	return a.Value.Equal(b.Value) && a.Cost.Equal(b.Cost) && a.Profit.Equal(b.Profit) &&
		a.Return.Equal(b.Return) && a.Valuated == b.Valuated && a.Failed == b.Failed && a.Degraded == b.Degraded
}
