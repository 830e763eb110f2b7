package indicators

// MACDResult holds the MACD line, its signal line, and the histogram.
// The three are computed together: the signal is an EMA of the MACD
// line itself, and the histogram is the literal difference of the two
// at each index, never an independent computation.
type MACDResult struct {
	Line      Series `json:"line"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// MACD computes EMA(fast) - EMA(slow) over closes, with the signal
// line as an EMA over the derived MACD series. The signal EMA inherits
// the package seeding rule, applied to the MACD line's first signal
// valid entries.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line := make(Series, len(closes))
	for i := range closes {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			line[i] = Some(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}

	sig := emaOver(line, signal)

	hist := make(Series, len(closes))
	for i := range closes {
		if line[i].Valid && sig[i].Valid {
			hist[i] = Some(line[i].Float64 - sig[i].Float64)
		}
	}

	return MACDResult{Line: line, Signal: sig, Histogram: hist}
}
