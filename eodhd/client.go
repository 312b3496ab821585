// Package eodhd provides market data from the EOD Historical Data API (https://eodhd.com).
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
	DefaultExchange  = "US"

	// DemoKey is the public key of the API, it only serves a handful of tickers like AAPL.US or MCD.US.
	DemoKey = "demo"
)

// Client queries the EODHD API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	exchange string // appended to tickers without an exchange suffix.
	http     *http.Client
	limiter  *rate.Limiter
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client to another server, like a test one.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithRateLimit caps the number of requests per second, bursts included.
func WithRateLimit(perSecond int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond) }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = timeout }
}

// WithExchange sets the exchange code appended to tickers that have none, "" to append nothing.
func WithExchange(exchange string) ClientOption {
	return func(c *Client) { c.exchange = exchange }
}

// NewClient returns a client authenticated with apiKey, see DemoKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		exchange: DefaultExchange,
		http:     &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non 200 answer of the API.
type APIError struct {
	StatusCode int
	Message    string // start of the response body.
	Endpoint   string // request path, without the key.
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eodhd %s: %d %s: %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// symbol returns the EODHD symbol of a ticker: "AAPL" is "AAPL.US" and "SAP.XETRA" stays as is.
func (c *Client) symbol(ticker string) string {
	if strings.Contains(ticker, ".") || c.exchange == "" {
		return ticker
	}
	return ticker + "." + c.exchange
}

// get decodes the JSON answer of endpoint into result. The key is added to params, which may
// be nil.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	log.Debug().Str("endpoint", endpoint).Msg("eodhd request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("eodhd %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body)), Endpoint: endpoint}
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("eodhd %s: invalid answer: %w", endpoint, err)
	}
	return nil
}
