package folio

import (
	"context"
	"time"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
)

// Valuation is the result of pricing a position: its current worth, what it cost and the derived metrics.
//
// The zero value is the valuation of a position that was never priced.
type Valuation struct {
	PricedOn      date.Date // trading day of the latest close.
	PurchasedOn   date.Date // trading day used for the purchase price, zero when Degraded.
	CurrentPrice  Money     // latest close.
	PurchasePrice Money     // close on PurchasedOn, zero when Degraded.
	CurrentValue  Money     // CurrentPrice × quantity.
	CostBasis     Money     // PurchasePrice × quantity.
	Profit        Money     // CurrentValue − CostBasis.
	Return        Percent   // Profit / CostBasis × 100, 0 when CostBasis is 0.
	CostPerUnit   Money     // CostBasis / quantity, 0 when quantity is 0.

	// Degraded is set when no close could be found on or after the purchase date.
	// The cost basis then defaults to zero instead of failing the valuation.
	Degraded bool
}

// Valuer prices positions using a market data Provider.
//
// It never caches: every call to Valuate queries the provider again.
type Valuer struct {
	Provider Provider
	// Timeout bounds each provider query, zero means no timeout. An expired query is reported as
	// ErrPriceUnavailable.
	Timeout time.Duration
	// Currency of the provider prices, DefaultCurrency if empty.
	Currency string
}

// NewValuer returns a Valuer on provider with no timeout.
func NewValuer(provider Provider) *Valuer {
	return &Valuer{Provider: provider, Currency: DefaultCurrency}
}

func (v *Valuer) currency() string {
	if v.Currency == "" {
		return DefaultCurrency
	}
	return v.Currency
}

// query runs f under the per query timeout.
func (v *Valuer) query(ctx context.Context, f func(context.Context) error) error {
	if v.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.Timeout)
		defer cancel()
	}
	return f(ctx)
}

// Valuate prices qty shares of ticker bought on purchase.
//
// The current value comes from the latest close. The purchase price is the close of the first
// trading day on or after purchase, so a purchase dated on a weekend or a holiday is priced at the
// next session's close. When the history holds nothing on or after purchase (a purchase date in the
// future or past the last available session), the cost basis is zero and the valuation is Degraded.
//
// It fails with a *PriceError matching ErrPriceUnavailable when the provider has no data for
// ticker, times out, or fails.
func (v *Valuer) Valuate(ctx context.Context, ticker string, purchase date.Date, qty Quantity) (Valuation, error) {
	cur := v.currency()

	var latest Quote
	var ok bool
	err := v.query(ctx, func(ctx context.Context) (err error) {
		latest, ok, err = v.Provider.LatestClose(ctx, ticker)
		return err
	})
	if err != nil {
		return Valuation{}, &PriceError{Ticker: ticker, Err: err}
	}
	if !ok {
		return Valuation{}, &PriceError{Ticker: ticker}
	}

	var history *date.History[float64]
	err = v.query(ctx, func(ctx context.Context) (err error) {
		history, err = v.Provider.History(ctx, ticker)
		return err
	})
	if err != nil {
		return Valuation{}, &PriceError{Ticker: ticker, Err: err}
	}
	if history == nil {
		history = new(date.History[float64])
	}

	val := Valuation{
		PricedOn:     latest.Day,
		CurrentPrice: M(latest.Close, cur),
	}
	val.CurrentValue = val.CurrentPrice.Mul(qty)

	if on, price, found := history.ValueOnOrAfter(purchase); found {
		val.PurchasedOn = on
		val.PurchasePrice = M(price, cur)
	} else {
		val.Degraded = true
		val.PurchasePrice = M(0, cur)
		log.Warn().Str("ticker", ticker).Stringer("purchase", purchase).Msg("no close on or after purchase date, cost basis defaults to zero")
	}

	val.CostBasis = val.PurchasePrice.Mul(qty)
	val.Profit = val.CurrentValue.Sub(val.CostBasis)
	val.Return = val.Profit.PercentOf(val.CostBasis)
	val.CostPerUnit = M(0, cur)
	if qty.IsPositive() {
		val.CostPerUnit = val.CostBasis.Div(qty)
	}
	return val, nil
}
