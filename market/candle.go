// Package market holds the candle and price types shared by the
// indicator engine, the OANDA client, and the HTTP layer.
package market

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Candle represents OHLC (Open, High, Low, Close) candlestick data.
// Prices follow the mid-price convention unless the caller fetched
// bid or ask candles explicitly.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`

	Volume float64 `json:"volume,omitempty"`
}

// Finite reports whether all four prices are finite floats.
func (c Candle) Finite() bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FlexFloat decodes a JSON value that may arrive as a number or as a
// numeric string. OANDA serializes prices as strings ("1.10010") while
// most chart frontends post plain numbers.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty number")
	}
	s := string(data)
	if s == "null" {
		*f = FlexFloat(math.NaN())
		return nil
	}
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// OHLC is the raw price block of a wire candle.
type OHLC struct {
	O FlexFloat `json:"o"`
	H FlexFloat `json:"h"`
	L FlexFloat `json:"l"`
	C FlexFloat `json:"c"`
}

// WireCandle is one candle as it appears on the wire, both in OANDA
// responses and in analysis request bodies.
type WireCandle struct {
	Time     string `json:"time"`
	Complete bool   `json:"complete,omitempty"`
	Volume   int    `json:"volume,omitempty"`
	Mid      *OHLC  `json:"mid,omitempty"`
	Bid      *OHLC  `json:"bid,omitempty"`
	Ask      *OHLC  `json:"ask,omitempty"`
}

// Prices returns the candle's OHLC block, preferring mid prices.
func (w WireCandle) Prices() (OHLC, error) {
	switch {
	case w.Mid != nil:
		return *w.Mid, nil
	case w.Bid != nil:
		return *w.Bid, nil
	case w.Ask != nil:
		return *w.Ask, nil
	}
	return OHLC{}, fmt.Errorf("candle at %q has no price data", w.Time)
}

// Convert turns a wire candle into a market.Candle. The timestamp is
// parsed as RFC3339 when possible; an unparseable time is not an error
// because the engine only depends on candle order, never on wall time.
func (w WireCandle) Convert() (Candle, error) {
	p, err := w.Prices()
	if err != nil {
		return Candle{}, err
	}
	t, _ := time.Parse(time.RFC3339, w.Time)
	return Candle{
		Time:   t,
		Open:   float64(p.O),
		High:   float64(p.H),
		Low:    float64(p.L),
		Close:  float64(p.C),
		Volume: float64(w.Volume),
	}, nil
}

// Split extracts parallel open/high/low/close arrays from candles.
func Split(candles []Candle) (open, high, low, closes []float64) {
	open = make([]float64, len(candles))
	high = make([]float64, len(candles))
	low = make([]float64, len(candles))
	closes = make([]float64, len(candles))
	for i, c := range candles {
		open[i] = c.Open
		high[i] = c.High
		low[i] = c.Low
		closes[i] = c.Close
	}
	return open, high, low, closes
}
