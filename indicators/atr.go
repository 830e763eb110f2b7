package indicators

// ATR computes the Wilder-smoothed Average True Range.
//
// True range needs a previous close, so the first sample is at index 1.
// The seed is the simple mean of the first period true ranges, making
// index period the first defined output; after that each step applies
// atr = (atr*(period-1) + tr)/period. A non-finite true range carries
// the previous ATR forward unchanged.
func ATR(high, low, closes []float64, period int) Series {
	out := make(Series, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	trs := TrueRange(high, low, closes)

	sum := 0.0
	for i := 1; i <= period; i++ {
		if !isFinite(trs[i]) {
			return out
		}
		sum += trs[i]
	}
	atr := sum / float64(period)
	out[period] = Some(atr)

	for i := period + 1; i < len(trs); i++ {
		if isFinite(trs[i]) {
			atr = (atr*float64(period-1) + trs[i]) / float64(period)
		}
		out[i] = Some(atr)
	}
	return out
}
