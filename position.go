package folio

import (
	"context"

	"github.com/etnz/folio/date"
)

// Position is a single holding: a number of shares of a ticker bought on a given day.
//
// Identity fields never change. The valuation is replaced as a whole by each call to Revalue.
type Position struct {
	ticker   string
	purchase date.Date
	qty      Quantity

	val      Valuation
	valuated bool
	err      error
}

// NewPosition returns an unvalued position. The ticker is normalized.
func NewPosition(ticker string, purchase date.Date, qty Quantity) *Position {
	return &Position{
		ticker:   NormalizeTicker(ticker),
		purchase: purchase,
		qty:      qty,
	}
}

func (p *Position) Ticker() string          { return p.ticker }
func (p *Position) PurchaseDate() date.Date { return p.purchase }
func (p *Position) Quantity() Quantity      { return p.qty }

// Valuation returns the last successful valuation, or the zero Valuation.
func (p *Position) Valuation() Valuation { return p.val }

// Valuated reports whether the last valuation pass succeeded.
func (p *Position) Valuated() bool { return p.valuated }

// Degraded reports whether the cost basis of the current valuation defaulted to zero.
func (p *Position) Degraded() bool { return p.valuated && p.val.Degraded }

// Err returns the error of the last valuation pass, if any.
func (p *Position) Err() error { return p.err }

// Revalue prices the position again with v.
//
// On failure every derived field is reset to zero and the error is kept in Err.
func (p *Position) Revalue(ctx context.Context, v *Valuer) error {
	val, err := v.Valuate(ctx, p.ticker, p.purchase, p.qty)
	p.set(val, err)
	return err
}

// set records the outcome of a valuation.
func (p *Position) set(val Valuation, err error) {
	if err != nil {
		p.val, p.valuated, p.err = Valuation{}, false, err
		return
	}
	p.val, p.valuated, p.err = val, true, nil
}

// HeldDays returns the number of days from the purchase date to today.
func (p *Position) HeldDays(today date.Date) int { return today.Sub(p.purchase) }

// ProfitPerDay returns the profit averaged over the days held.
//
// It is zero for an unvalued position or one held for less than a day.
func (p *Position) ProfitPerDay(today date.Date) Money {
	days := p.HeldDays(today)
	if !p.valuated || days <= 0 {
		return M(0, p.val.Profit.Currency())
	}
	return p.val.Profit.Div(Q(days))
}

// Summary returns the position as a flat row for display, amounts rounded to two decimals.
func (p *Position) Summary() SummaryRow {
	row := SummaryRow{
		Ticker:       p.ticker,
		PurchaseDate: p.purchase,
		Quantity:     p.qty,
		CostPerShare: p.val.CostPerUnit.Round(2),
		TotalCost:    p.val.CostBasis.Round(2),
		CurrentValue: p.val.CurrentValue.Round(2),
		Profit:       p.val.Profit.Round(2),
		Return:       p.val.Return.Round(),
		Valuated:     p.valuated,
		Degraded:     p.Degraded(),
	}
	if p.err != nil {
		row.Error = p.err.Error()
	}
	return row
}
