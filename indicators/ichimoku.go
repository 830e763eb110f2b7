package indicators

// IchimokuResult holds the Ichimoku cloud lines. Conversion and Base
// are index-aligned to the input; SpanA and SpanB are plotted shift
// bars forward and are therefore len(input)+shift long. Callers must
// accept result series longer than the input.
type IchimokuResult struct {
	Conversion Series `json:"conversion"`
	Base       Series `json:"base"`
	SpanA      Series `json:"span_a"`
	SpanB      Series `json:"span_b"`
}

// Ichimoku computes the cloud from rolling highest-high/lowest-low
// midpoints: conversion over conv bars, base over base bars, spanA as
// the midpoint of those two, and spanB as the midpoint over spanB
// bars. Both spans are shifted forward by shift bars.
func Ichimoku(high, low []float64, conv, base, spanB, shift int) IchimokuResult {
	n := len(high)
	res := IchimokuResult{
		Conversion: midpointLine(high, low, conv),
		Base:       midpointLine(high, low, base),
		SpanA:      make(Series, n+shift),
		SpanB:      make(Series, n+shift),
	}

	for i := 0; i < n; i++ {
		c, b := res.Conversion[i], res.Base[i]
		if c.Valid && b.Valid {
			res.SpanA[i+shift] = Some((c.Float64 + b.Float64) / 2)
		}
	}

	spanBLine := midpointLine(high, low, spanB)
	for i := 0; i < n; i++ {
		if spanBLine[i].Valid {
			res.SpanB[i+shift] = spanBLine[i]
		}
	}

	return res
}

func midpointLine(high, low []float64, period int) Series {
	hh := rollingMax(high, period)
	ll := rollingMin(low, period)
	out := make(Series, len(high))
	for i := range out {
		if hh[i].Valid && ll[i].Valid {
			out[i] = Some((hh[i].Float64 + ll[i].Float64) / 2)
		}
	}
	return out
}
