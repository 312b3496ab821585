// Package yahoo provides market data from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // exchange timezones must resolve on hosts without a zoneinfo database.

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 2 // requests per second

	userAgent = "Mozilla/5.0 (compatible; pnl)"
)

// Client queries the Yahoo Finance chart API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	currency   string // expected quote currency, unchecked when empty.
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithCurrency sets the currency prices are expected in. Tickers quoted in another one are
// logged, their prices are never converted.
func WithCurrency(code string) ClientOption {
	return func(c *Client) { c.currency = code }
}

// NewClient creates a new Yahoo Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
chart fetches a chart document, it looks like:

	{
	  "chart": {
	    "result": [{
	      "meta": {"currency": "USD", "symbol": "AAPL", "exchangeTimezoneName": "America/New_York", ...},
	      "timestamp": [1704205800, 1704292200],
	      "indicators": {"quote": [{"close": [185.64, null], ...}]}
	    }],
	    "error": null
	  }
	}

An unknown symbol is a 404 with a null result, reported as a nil document.
*/
func (c *Client) chart(ctx context.Context, ticker, rng string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", "1d")
	params.Set("events", "history")
	path := "/v8/finance/chart/" + url.PathEscape(ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	log.Debug().Str("url", c.baseURL+path).Str("range", rng).Msg("Yahoo chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("cannot http GET %s: %s: %s", path, resp.Status, body)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result, err := jsonpath.Get("$.chart.result", jobj); err != nil || result == nil {
		return nil, nil
	}
	c.checkCurrency(ticker, jobj)
	return jobj, nil
}

// checkCurrency warns when the chart of ticker is quoted in another currency than the expected
// one, and reports whether it matches.
func (c *Client) checkCurrency(ticker string, jobj any) bool {
	if c.currency == "" {
		return true
	}
	v, err := jsonpath.Get("$.chart.result[0].meta.currency", jobj)
	quoted, ok := v.(string)
	if err != nil || !ok || strings.EqualFold(quoted, c.currency) {
		return true
	}
	log.Warn().Str("ticker", ticker).Str("quoted", quoted).Str("expected", c.currency).Msg("prices are quoted in another currency and are not converted")
	return false
}

// closes extracts the daily closes of a chart document.
//
// Timestamps are converted to calendar dates in the exchange timezone, missing closes are dropped.
func closes(jobj any) (*date.History[float64], error) {
	h := new(date.History[float64])
	if jobj == nil {
		return h, nil
	}

	loc := time.UTC
	if name, err := jsonpath.Get("$.chart.result[0].meta.exchangeTimezoneName", jobj); err == nil {
		if s, ok := name.(string); ok {
			if l, err := time.LoadLocation(s); err == nil {
				loc = l
			}
		}
	}

	jtimes, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		// a symbol without any session has no timestamp at all.
		return h, nil
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing chart: %w", err)
	}
	times, ok := jtimes.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing chart: timestamps are not a list: %v", jtimes)
	}
	values, ok := jcloses.([]any)
	if !ok || len(values) != len(times) {
		return nil, fmt.Errorf("error parsing chart: %d closes for %d timestamps", len(values), len(times))
	}

	for i, jt := range times {
		ts, ok := jt.(float64)
		if !ok {
			return nil, fmt.Errorf("error parsing chart: timestamp %v is not a number", jt)
		}
		price, ok := values[i].(float64)
		if !ok {
			continue // null close, the session has no price.
		}
		h.Append(date.FromTime(time.Unix(int64(ts), 0), loc), price)
	}
	return h, nil
}

// LatestClose returns the most recent daily close of ticker.
func (c *Client) LatestClose(ctx context.Context, ticker string) (folio.Quote, bool, error) {
	jobj, err := c.chart(ctx, ticker, "1mo")
	if err != nil {
		return folio.Quote{}, false, fmt.Errorf("cannot fetch %s latest close: %w", ticker, err)
	}
	h, err := closes(jobj)
	if err != nil {
		return folio.Quote{}, false, fmt.Errorf("cannot fetch %s latest close: %w", ticker, err)
	}
	if h.Len() == 0 {
		return folio.Quote{}, false, nil
	}
	day, price := h.Latest()
	return folio.Quote{Day: day, Close: price}, true, nil
}

// History returns the full daily close history of ticker.
func (c *Client) History(ctx context.Context, ticker string) (*date.History[float64], error) {
	jobj, err := c.chart(ctx, ticker, "max")
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s daily prices: %w", ticker, err)
	}
	h, err := closes(jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s daily prices: %w", ticker, err)
	}
	return h, nil
}

var _ folio.Provider = (*Client)(nil)
