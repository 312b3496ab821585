package eodhd

import (
	"context"
	"net/url"

	"github.com/etnz/folio/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the ticker to write in a positions file for this result.
//
// US listings need no exchange suffix.
func (r SearchResult) Ticker() string {
	if r.Exchange == DefaultExchange {
		return r.Code
	}
	return r.Code + "." + r.Exchange
}

// Search searches for securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.get(ctx, "/search/"+url.PathEscape(term), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
