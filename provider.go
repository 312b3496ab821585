package folio

import (
	"context"

	"github.com/etnz/folio/date"
)

// Quote is a closing price on a trading day.
type Quote struct {
	Day   date.Date
	Close float64
}

// Provider is the market data source used to price positions.
//
// Implementations must report calendar days as seen on the exchange, with no time-of-day.
type Provider interface {
	// LatestClose returns the most recent daily close for ticker.
	// ok is false when the provider has no data at all for it (unknown or delisted symbol).
	LatestClose(ctx context.Context, ticker string) (q Quote, ok bool, err error)

	// History returns the full available daily close history of ticker, ascending and with
	// one value per day. An unknown ticker yields an empty history.
	History(ctx context.Context, ticker string) (*date.History[float64], error)
}
