package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/chartd/indicators"
	"github.com/rustyeddy/chartd/market"
)

func wireCandle(i int, o, h, l, c float64) market.WireCandle {
	return market.WireCandle{
		Time: fmt.Sprintf("2026-01-01T%02d:00:00Z", i%24),
		Mid: &market.OHLC{
			O: market.FlexFloat(o),
			H: market.FlexFloat(h),
			L: market.FlexFloat(l),
			C: market.FlexFloat(c),
		},
	}
}

// ascendingCandles builds a strict uptrend: close = 1.1000 + 0.0001*i.
func ascendingCandles(n int) []market.WireCandle {
	out := make([]market.WireCandle, n)
	for i := 0; i < n; i++ {
		c := 1.1 + 0.0001*float64(i)
		out[i] = wireCandle(i, c-0.00005, c+0.00005, c-0.0001, c)
	}
	return out
}

func flatCandles(n int) []market.WireCandle {
	out := make([]market.WireCandle, n)
	for i := 0; i < n; i++ {
		out[i] = wireCandle(i, 1.2, 1.2, 1.2, 1.2)
	}
	return out
}

func TestAnalyzeAscendingTrend(t *testing.T) {
	res, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(60),
	})
	require.NoError(t, err)

	assert.Equal(t, 60, res.CandleCount)
	assert.Equal(t, indicators.Standard, res.Variant)

	// Monotonic gains: RSI pinned to 100.
	assert.Equal(t, 100.0, res.Last.RSI.Float64)

	// EMAs trail the rising close from below, EMA20 above EMA50.
	lastClose := 1.1 + 0.0001*59
	ema20 := res.Last.EMA["20"]
	ema50 := res.Last.EMA["50"]
	require.True(t, ema20.Valid)
	require.True(t, ema50.Valid)
	assert.Less(t, ema20.Float64, lastClose)
	assert.Greater(t, ema20.Float64, ema50.Float64)

	// Strong unidirectional trend: ADX saturated, -DI zero.
	assert.InDelta(t, 100.0, res.Last.ADX.ADX.Float64, 1e-9)
	assert.Equal(t, 0.0, res.Last.ADX.MinusDI.Float64)

	assert.True(t, res.Last.Bollinger.Upper.Valid)
	assert.Greater(t, res.Last.Bollinger.Upper.Float64, res.Last.Bollinger.Lower.Float64)
	assert.Greater(t, res.Last.ATR.Float64, 0.0)

	// Ichimoku spans extend past the input length.
	assert.Len(t, res.Ichimoku.SpanA, 60+26)
}

func TestAnalyzeFlatCandles(t *testing.T) {
	res, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     flatCandles(60),
	})
	require.NoError(t, err)

	// Zero-loss convention.
	assert.Equal(t, 100.0, res.Last.RSI.Float64)
	// No range at all.
	assert.Equal(t, 0.0, res.Last.ATR.Float64)
	assert.Equal(t, res.Last.Bollinger.Upper.Float64, res.Last.Bollinger.Lower.Float64)
	// Flat stochastic range stays undefined, not zero.
	assert.False(t, res.Last.Stochastic.K.Valid)
	assert.False(t, res.Last.Stochastic.D.Valid)
}

func TestAnalyzeInsufficientHistory(t *testing.T) {
	_, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(10),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestAnalyzeNonFinitePrice(t *testing.T) {
	candles := ascendingCandles(60)
	candles[42].Mid.C = market.FlexFloat(nan())

	_, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     candles,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "candle 42")
}

func TestAnalyzeMissingFields(t *testing.T) {
	candles := ascendingCandles(60)

	_, err := Analyze(Request{Granularity: "H1", Candles: candles})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = Analyze(Request{Instrument: "EUR_USD", Candles: candles})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = Analyze(Request{Instrument: "EUR_USD", Granularity: "H1"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAnalyzeRejectsBadParams(t *testing.T) {
	candles := ascendingCandles(60)

	_, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     candles,
		Params:      Params{MACD: &MACDParams{Fast: 26, Slow: 12, Signal: 9}},
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     candles,
		Params:      Params{Variant: "fancy"},
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAnalyzeLargePeriodRaisesMinimum(t *testing.T) {
	// 60 candles is fine for defaults but not for an explicit EMA 200.
	_, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(60),
		Params:      Params{EMA: []int{200}},
	})
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestAnalyzeIchimokuBasePeriodRaisesMinimum(t *testing.T) {
	// The base window can exceed spanB; the gate must track the longest
	// of the three Ichimoku windows, not just spanB. 52 candles would
	// otherwise pass and yield an entirely invalid base line next to
	// valid RSI/EMA values.
	_, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(52),
		Params:      Params{Ichimoku: &IchimokuParams{Conv: 9, Base: 55, SpanB: 10, Shift: 26}},
	})
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	res, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(55),
		Params:      Params{Ichimoku: &IchimokuParams{Conv: 9, Base: 55, SpanB: 10, Shift: 26}},
	})
	require.NoError(t, err)
	assert.True(t, res.Last.Ichimoku.Base.Valid)
}

func TestAnalyzeSimplifiedVariant(t *testing.T) {
	res, err := Analyze(Request{
		Instrument:  "EUR_USD",
		Granularity: "H1",
		Candles:     ascendingCandles(60),
		Params:      Params{Variant: indicators.Simplified},
	})
	require.NoError(t, err)

	assert.Equal(t, indicators.Simplified, res.Variant)
	// Unsmoothed DX is defined a full period earlier than Wilder ADX.
	assert.True(t, res.ADX.ADX[14].Valid)
}

func TestRequiredHistoryDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	// Ichimoku spanB dominates the default configuration.
	assert.Equal(t, 52, p.requiredHistory())

	p.Ichimoku = &IchimokuParams{Conv: 9, Base: 55, SpanB: 10, Shift: 26}
	assert.Equal(t, 55, p.requiredHistory())

	p.Ichimoku = &IchimokuParams{Conv: 2, Base: 3, SpanB: 4, Shift: 2}
	p.MACD = &MACDParams{Fast: 2, Slow: 3, Signal: 2}
	p.EMA = []int{5}
	p.RSI = 5
	p.ATR = 5
	p.ADX = 5
	p.Stoch = &StochParams{K: 5, D: 2}
	// Nothing demands more than the floor now.
	assert.Equal(t, MinHistory, p.requiredHistory())
}

func nan() float64 {
	var zero float64
	return zero / zero
}
