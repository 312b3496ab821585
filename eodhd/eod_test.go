package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eodResponse = `[
 {"date":"2024-01-02","open":187.15,"high":188.44,"low":183.89,"close":185.64,"adjusted_close":184.94,"volume":82488700},
 {"date":"2024-01-03","open":184.22,"high":185.88,"low":183.43,"close":184.25,"adjusted_close":183.56,"volume":58414500},
 {"date":"2024-01-05","open":181.99,"high":182.76,"low":180.17,"close":181.18,"adjusted_close":180.5,"volume":62303300}
]`

// newTestServer serves body on /eod/AAPL.US and 404 on anything else.
func newTestServer(t *testing.T, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		if r.URL.Path != "/eod/AAPL.US" {
			http.Error(w, "Ticker Not Found.", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestClient_History(t *testing.T) {
	srv, requests := newTestServer(t, eodResponse)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	h, err := client.History(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 3, h.Len())

	on, price, ok := h.ValueOnOrAfter(date.New(2024, 1, 4))
	require.True(t, ok)
	assert.Equal(t, date.New(2024, 1, 5), on)
	assert.Equal(t, 181.18, price)

	require.Len(t, *requests, 1)
	query := (*requests)[0].URL.Query()
	assert.Equal(t, "test-key", query.Get("api_token"))
	assert.Equal(t, "json", query.Get("fmt"))
	assert.Empty(t, query.Get("from"), "the full history is requested")
}

func TestClient_LatestClose(t *testing.T) {
	srv, requests := newTestServer(t, eodResponse)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	q, ok, err := client.LatestClose(context.Background(), "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, folio.Quote{Day: date.New(2024, 1, 5), Close: 181.18}, q)

	query := (*requests)[0].URL.Query()
	assert.Equal(t, "d", query.Get("order"))
	assert.Equal(t, date.Today().Add(-latestWindow).String(), query.Get("from"))
}

func TestClient_UnknownTicker(t *testing.T) {
	srv, _ := newTestServer(t, eodResponse)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, ok, err := client.LatestClose(context.Background(), "FAKE9999")
	require.NoError(t, err)
	assert.False(t, ok)

	h, err := client.History(context.Background(), "FAKE9999")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestClient_EmptyResponse(t *testing.T) {
	srv, _ := newTestServer(t, `[]`)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, ok, err := client.LatestClose(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := NewClient("bad-key", WithBaseURL(srv.URL))

	_, _, err := client.LatestClose(context.Background(), "AAPL")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "error %v is not an *APIError", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "/eod/AAPL.US", apiErr.Endpoint)
	assert.Equal(t, "eodhd /eod/AAPL.US: 401 Unauthorized: Unauthenticated", apiErr.Error())
	assert.NotContains(t, err.Error(), "bad-key", "the key must not leak in errors")
}

func TestClient_ContextCancelled(t *testing.T) {
	srv, requests := newTestServer(t, eodResponse)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.History(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *requests)
}

func TestClient_Symbol(t *testing.T) {
	client := NewClient("k")
	assert.Equal(t, "AAPL.US", client.symbol("AAPL"))
	assert.Equal(t, "SAP.XETRA", client.symbol("SAP.XETRA"))
	assert.Equal(t, "BRK-B.US", client.symbol("BRK-B"))

	client = NewClient("k", WithExchange("LSE"))
	assert.Equal(t, "VOD.LSE", client.symbol("VOD"))
}

func TestClient_Valuate(t *testing.T) {
	srv, _ := newTestServer(t, eodResponse)
	v := folio.NewValuer(NewClient("test-key", WithBaseURL(srv.URL)))

	// Bought on a Thursday with no session, priced on Friday.
	val, err := v.Valuate(context.Background(), "AAPL", date.New(2024, 1, 4), folio.Q(10))
	require.NoError(t, err)
	assert.Equal(t, "1811.80", val.CostBasis.Fixed())
	assert.Equal(t, "1811.80", val.CurrentValue.Fixed())
	assert.False(t, val.Degraded)
}
