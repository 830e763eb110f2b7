package indicators

// BollingerResult holds the three Bollinger band lines. Upper and
// lower share the middle line's SMA and the window's standard
// deviation, so the ordering upper >= middle >= lower holds at every
// defined index for a non-negative multiplier.
type BollingerResult struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}

// Bollinger computes middle = SMA(length) and upper/lower = middle
// +/- stdMult * population stddev over the same window. All three
// lines are invalid before length values are available.
func Bollinger(closes []float64, length int, stdMult float64) BollingerResult {
	middle := SMA(closes, length)
	dev := RollingStdDev(closes, length)

	upper := make(Series, len(closes))
	lower := make(Series, len(closes))
	for i := range closes {
		if !middle[i].Valid || !dev[i].Valid {
			continue
		}
		band := stdMult * dev[i].Float64
		upper[i] = Some(middle[i].Float64 + band)
		lower[i] = Some(middle[i].Float64 - band)
	}

	return BollingerResult{Upper: upper, Middle: middle, Lower: lower}
}
