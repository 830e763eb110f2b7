// Package oanda is a small client for OANDA's v20 REST API covering
// the read-only endpoints chartd proxies: candles, account summary,
// open positions, and pricing.
package oanda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rustyeddy/chartd/market"
)

// Granularity represents the time frame for candles
type Granularity string

const (
	S5  Granularity = "S5"
	S30 Granularity = "S30"
	M1  Granularity = "M1"
	M5  Granularity = "M5"
	M15 Granularity = "M15"
	M30 Granularity = "M30"
	H1  Granularity = "H1"
	H4  Granularity = "H4"
	D   Granularity = "D"
	W   Granularity = "W"
)

// Client represents an OANDA API client.
type Client struct {
	baseURL    string
	token      string
	accountID  string
	httpClient *http.Client
}

// NewClient creates a client from an explicit config.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, _ := cfg.baseURL()
	return &Client{
		baseURL:   base,
		token:     cfg.Token,
		accountID: cfg.AccountID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Response is a raw passthrough result: the upstream status code and
// body, untouched. The proxy endpoints hand these straight back to the
// caller so OANDA error payloads survive the hop.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Get performs a GET against the given API path, forwarding the query
// values and injecting the bearer token. Non-2xx upstream statuses are
// not errors here; they are part of the passthrough.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// AccountSummary fetches /v3/accounts/{id}/summary.
func (c *Client) AccountSummary(ctx context.Context, query url.Values) (*Response, error) {
	if c.accountID == "" {
		return nil, fmt.Errorf("account id is not configured")
	}
	return c.Get(ctx, "/v3/accounts/"+c.accountID+"/summary", query)
}

// OpenPositions fetches /v3/accounts/{id}/openPositions.
func (c *Client) OpenPositions(ctx context.Context, query url.Values) (*Response, error) {
	if c.accountID == "" {
		return nil, fmt.Errorf("account id is not configured")
	}
	return c.Get(ctx, "/v3/accounts/"+c.accountID+"/openPositions", query)
}

// Pricing fetches /v3/accounts/{id}/pricing. The instruments query
// parameter is required by the upstream API and forwarded as-is.
func (c *Client) Pricing(ctx context.Context, query url.Values) (*Response, error) {
	if c.accountID == "" {
		return nil, fmt.Errorf("account id is not configured")
	}
	return c.Get(ctx, "/v3/accounts/"+c.accountID+"/pricing", query)
}

// CandlesRequest represents parameters for fetching historical candles.
type CandlesRequest struct {
	Instrument  string      // Required, e.g. "EUR_USD"
	Granularity Granularity // Default S5
	Price       string      // M|B|A, default M (mid)
	Count       int         // Max 5000, mutually exclusive with From/To
	From        *time.Time
	To          *time.Time
}

// candlesResponse mirrors the candles endpoint payload.
type candlesResponse struct {
	Instrument  string              `json:"instrument"`
	Granularity string              `json:"granularity"`
	Candles     []market.WireCandle `json:"candles"`
}

// GetWireCandles fetches historical candles in wire form, skipping
// incomplete bars. The analyze path feeds these straight into the
// engine request.
func (c *Client) GetWireCandles(ctx context.Context, req CandlesRequest) ([]market.WireCandle, error) {
	if req.Instrument == "" {
		return nil, fmt.Errorf("instrument is required")
	}
	if req.Count > 5000 {
		return nil, fmt.Errorf("count cannot exceed 5000")
	}

	params := url.Values{}
	if req.Price == "" {
		req.Price = "M"
	}
	params.Set("price", req.Price)
	if req.Granularity == "" {
		req.Granularity = S5
	}
	params.Set("granularity", string(req.Granularity))
	if req.Count > 0 {
		params.Set("count", fmt.Sprintf("%d", req.Count))
	} else {
		if req.From != nil {
			params.Set("from", req.From.Format(time.RFC3339))
		}
		if req.To != nil {
			params.Set("to", req.To.Format(time.RFC3339))
		}
	}

	resp, err := c.Get(ctx, "/v3/instruments/"+req.Instrument+"/candles", params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(resp.Body))
	}

	var apiResp candlesResponse
	if err := json.Unmarshal(resp.Body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	complete := make([]market.WireCandle, 0, len(apiResp.Candles))
	for _, wc := range apiResp.Candles {
		if wc.Complete {
			complete = append(complete, wc)
		}
	}
	return complete, nil
}

// GetCandles fetches historical candles and converts them to
// market.Candle, skipping incomplete bars.
func (c *Client) GetCandles(ctx context.Context, req CandlesRequest) ([]market.Candle, error) {
	wire, err := c.GetWireCandles(ctx, req)
	if err != nil {
		return nil, err
	}

	candles := make([]market.Candle, 0, len(wire))
	for _, wc := range wire {
		candle, err := wc.Convert()
		if err != nil {
			return nil, fmt.Errorf("candle at %s: %w", wc.Time, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}
