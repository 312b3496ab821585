package renderer

import (
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Report is a struct to represent a portfolio valuation in json.
// Numbers are handled using the exact decimal types (Money, Quantity, etc.)
// So that they already contain basics renderers (Fixed, SignedString etc.)
type Report struct {
	// On is the day the report was made.
	On date.Date `json:"on"`
	// Provider is the name of the market data source.
	Provider string `json:"provider,omitempty"`
	// Positions in display order, failed ones included.
	Positions []ReportPosition `json:"positions"`
	// Totals over the valuated positions.
	Totals ReportTotals `json:"totals"`
	// Issues are one line notes about failed or degraded positions.
	Issues []string `json:"issues,omitempty"`
}

// ReportPosition is a single row of the positions table.
type ReportPosition struct {
	Ticker       string         `json:"ticker"`
	PurchaseDate date.Date      `json:"purchaseDate"`
	Quantity     folio.Quantity `json:"quantity"`
	CostPerShare folio.Money    `json:"costPerShare"`
	TotalCost    folio.Money    `json:"totalCost"`
	CurrentValue folio.Money    `json:"currentValue"`
	Profit       folio.Money    `json:"profit"`
	Return       folio.Percent  `json:"return"`
	HeldDays     int            `json:"heldDays"`
	ProfitPerDay folio.Money    `json:"profitPerDay"`
	Degraded     bool           `json:"degraded,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ReportTotals are the portfolio aggregates.
type ReportTotals struct {
	Value    folio.Money   `json:"value"`
	Cost     folio.Money   `json:"cost"`
	Profit   folio.Money   `json:"profit"`
	Return   folio.Percent `json:"return"`
	Valuated int           `json:"valuated"`
	Failed   int           `json:"failed"`
	Degraded int           `json:"degraded"`
}

// NewReport creates a new Report from a revalued portfolio.
func NewReport(p *folio.Portfolio, on date.Date, provider string) *Report {
	r := &Report{
		On:        on,
		Provider:  provider,
		Positions: make([]ReportPosition, 0, p.Len()),
	}
	for _, pos := range p.Positions() {
		row := pos.Summary()
		r.Positions = append(r.Positions, ReportPosition{
			Ticker:       row.Ticker,
			PurchaseDate: row.PurchaseDate,
			Quantity:     row.Quantity,
			CostPerShare: row.CostPerShare,
			TotalCost:    row.TotalCost,
			CurrentValue: row.CurrentValue,
			Profit:       row.Profit,
			Return:       row.Return,
			HeldDays:     pos.HeldDays(on),
			ProfitPerDay: pos.ProfitPerDay(on).Round(2),
			Degraded:     row.Degraded,
			Error:        row.Error,
		})
		switch {
		case row.Error != "":
			r.Issues = append(r.Issues, row.Error)
		case row.Degraded:
			r.Issues = append(r.Issues, fmt.Sprintf("%s has no close on or after %s, its cost basis defaults to zero", row.Ticker, row.PurchaseDate))
		}
	}

	t := p.Totals()
	r.Totals = ReportTotals{
		Value:    t.Value.Round(2),
		Cost:     t.Cost.Round(2),
		Profit:   t.Profit.Round(2),
		Return:   t.Return.Round(),
		Valuated: t.Valuated,
		Failed:   t.Failed,
		Degraded: t.Degraded,
	}
	return r
}
