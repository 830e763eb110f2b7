package oanda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInjectsCredentialsAndForwardsQuery(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Token: "secret-token"})
	require.NoError(t, err)

	q := url.Values{}
	q.Set("instruments", "EUR_USD,GBP_USD")
	resp, err := c.Get(context.Background(), "/v3/accounts/001/pricing", q)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "instruments=EUR_USD%2CGBP_USD", gotQuery)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestGetPassesUpstreamStatusThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessage":"Insufficient authorization"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Token: "bad"})
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/v3/accounts", nil)
	require.NoError(t, err, "non-2xx is passthrough, not an error")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "Insufficient authorization")
}

func TestAccountEndpointsRequireAccountID(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://127.0.0.1:1", Token: "t"})
	require.NoError(t, err)

	_, err = c.AccountSummary(context.Background(), nil)
	assert.Error(t, err)
	_, err = c.OpenPositions(context.Background(), nil)
	assert.Error(t, err)
	_, err = c.Pricing(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetCandles(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "M", r.URL.Query().Get("price"))
		assert.Equal(t, "H1", r.URL.Query().Get("granularity"))
		assert.Equal(t, "3", r.URL.Query().Get("count"))
		w.Write([]byte(`{
			"instrument": "EUR_USD",
			"granularity": "H1",
			"candles": [
				{"complete": true, "volume": 10, "time": "2026-01-02T10:00:00Z",
				 "mid": {"o": "1.1000", "h": "1.1010", "l": "1.0990", "c": "1.1005"}},
				{"complete": true, "volume": 12, "time": "2026-01-02T11:00:00Z",
				 "mid": {"o": "1.1005", "h": "1.1020", "l": "1.1000", "c": "1.1015"}},
				{"complete": false, "volume": 2, "time": "2026-01-02T12:00:00Z",
				 "mid": {"o": "1.1015", "h": "1.1018", "l": "1.1012", "c": "1.1016"}}
			]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Token: "t"})
	require.NoError(t, err)

	candles, err := c.GetCandles(context.Background(), CandlesRequest{
		Instrument:  "EUR_USD",
		Granularity: H1,
		Count:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v3/instruments/EUR_USD/candles", gotPath)
	// Incomplete candle is skipped.
	require.Len(t, candles, 2)
	assert.InDelta(t, 1.1005, candles[0].Close, 1e-9)
	assert.InDelta(t, 1.1020, candles[1].High, 1e-9)
	assert.Equal(t, 10.0, candles[0].Volume)
}

func TestGetCandlesValidation(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://127.0.0.1:1", Token: "t"})
	require.NoError(t, err)

	_, err = c.GetCandles(context.Background(), CandlesRequest{})
	assert.Error(t, err)

	_, err = c.GetCandles(context.Background(), CandlesRequest{Instrument: "EUR_USD", Count: 9999})
	assert.Error(t, err)
}

func TestConfigBaseURL(t *testing.T) {
	base, err := Config{Env: "practice", Token: "t"}.baseURL()
	require.NoError(t, err)
	assert.Equal(t, PracticeURL, base)

	base, err = Config{Env: "live", Token: "t"}.baseURL()
	require.NoError(t, err)
	assert.Equal(t, LiveURL, base)

	_, err = Config{Env: "sandbox", Token: "t"}.baseURL()
	assert.Error(t, err)

	assert.Error(t, Config{Env: "practice"}.Validate(), "token required")
}
