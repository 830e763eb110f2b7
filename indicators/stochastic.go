package indicators

// StochasticResult holds the %K and %D lines of the stochastic
// oscillator. The two are computed together because %D is a moving
// average of %K.
type StochasticResult struct {
	K Series `json:"k"`
	D Series `json:"d"`
}

// Stochastic computes %K = (close - lowestLow) / (highestHigh -
// lowestLow) * 100 over the kPeriod window, and %D as the dPeriod SMA
// of %K. A flat window (highestHigh == lowestLow) leaves the index
// invalid rather than producing a divide-by-zero artifact.
func Stochastic(high, low, closes []float64, kPeriod, dPeriod int) StochasticResult {
	hh := rollingMax(high, kPeriod)
	ll := rollingMin(low, kPeriod)

	k := make(Series, len(closes))
	for i := range closes {
		if !hh[i].Valid || !ll[i].Valid || !isFinite(closes[i]) {
			continue
		}
		rng := hh[i].Float64 - ll[i].Float64
		if rng == 0 {
			continue
		}
		k[i] = Some((closes[i] - ll[i].Float64) / rng * 100)
	}

	return StochasticResult{K: k, D: smaOver(k, dPeriod)}
}
