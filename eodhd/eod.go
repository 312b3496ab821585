package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// latestWindow is how far back LatestClose looks for a session, long enough to span any market closure.
const latestWindow = 14

// bar is a daily entry of the /eod endpoint:
//
//	{
//	  "date": "2024-02-13",
//	  "open": 675.066,
//	  "high": 684.219,
//	  "low": 648.659,
//	  "close": 668.445,
//	  "adjusted_close": 67.705,
//	  "volume": 0
//	}
type bar struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// eod returns the daily bars of ticker since from, all of them if from is zero.
//
// A ticker unknown to EODHD yields no bars and no error.
func (c *Client) eod(ctx context.Context, ticker string, from date.Date, descending bool) ([]bar, error) {
	params := url.Values{}
	params.Set("period", "d")
	if descending {
		params.Set("order", "d")
	}
	if !from.IsZero() {
		params.Set("from", from.String())
	}

	var bars []bar
	err := c.get(ctx, "/eod/"+url.PathEscape(c.symbol(ticker)), params, &bars)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s daily prices: %w", ticker, err)
	}
	return bars, nil
}

// LatestClose returns the most recent daily close of ticker.
func (c *Client) LatestClose(ctx context.Context, ticker string) (folio.Quote, bool, error) {
	bars, err := c.eod(ctx, ticker, date.Today().Add(-latestWindow), true)
	if err != nil {
		return folio.Quote{}, false, err
	}
	var latest bar
	for _, b := range bars {
		if b.Date.After(latest.Date) {
			latest = b
		}
	}
	if latest.Date.IsZero() {
		return folio.Quote{}, false, nil
	}
	return folio.Quote{Day: latest.Date, Close: latest.Close.InexactFloat64()}, true, nil
}

// History returns the full daily close history of ticker.
func (c *Client) History(ctx context.Context, ticker string) (*date.History[float64], error) {
	bars, err := c.eod(ctx, ticker, date.Date{}, false)
	if err != nil {
		return nil, err
	}
	h := new(date.History[float64])
	for _, b := range bars {
		h.Append(b.Date, b.Close.InexactFloat64())
	}
	return h, nil
}

var _ folio.Provider = (*Client)(nil)
