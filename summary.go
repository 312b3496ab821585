package folio

import (
	"github.com/etnz/folio/date"
)

// Columns are the presentation names of the summary table columns, in display order.
var Columns = []string{
	"Stock Ticker",
	"Purchase Date",
	"Quantity",
	"Cost Per Share ($)",
	"Total Cost ($)",
	"Current Value ($)",
	"Profit ($)",
	"Percentage Return (%)",
}

// SummaryRow is the display projection of a Position. Amounts are already rounded to two decimals.
type SummaryRow struct {
	Ticker       string
	PurchaseDate date.Date
	Quantity     Quantity
	CostPerShare Money
	TotalCost    Money
	CurrentValue Money
	Profit       Money
	Return       Percent

	// Valuated is set when the last valuation of the position succeeded. A row never valuated
	// has neither amounts nor Error.
	Valuated bool
	// Degraded flags a cost basis that defaulted to zero for lack of price history.
	Degraded bool
	// Error is the valuation failure, empty when the position was valuated.
	Error string
}

// Record returns the row values as strings, in Columns order.
func (r SummaryRow) Record() []string {
	return []string{
		r.Ticker,
		r.PurchaseDate.String(),
		r.Quantity.String(),
		r.CostPerShare.Fixed(),
		r.TotalCost.Fixed(),
		r.CurrentValue.Fixed(),
		r.Profit.Fixed(),
		r.Return.Fixed(),
	}
}

// MarshalJSON writes the row as an object keyed by column names, in display order.
func (r SummaryRow) MarshalJSON() ([]byte, error) {
	var w orderedObject
	w.Set(Columns[0], r.Ticker)
	w.Set(Columns[1], r.PurchaseDate)
	w.Set(Columns[2], r.Quantity)
	w.Set(Columns[3], r.CostPerShare.Decimal())
	w.Set(Columns[4], r.TotalCost.Decimal())
	w.Set(Columns[5], r.CurrentValue.Decimal())
	w.Set(Columns[6], r.Profit.Decimal())
	w.Set(Columns[7], float64(r.Return))
	w.SetNonZero("Degraded Cost Basis", r.Degraded)
	w.SetNonZero("Error", r.Error)
	return w.MarshalJSON()
}
