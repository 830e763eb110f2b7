package indicators

import "math"

// Series primitives. These are the leaf transforms everything else is
// built from. All of them recompute over the full input window; none
// keep state between calls. Parameter validation happens once at the
// orchestrator boundary, so a non-positive period here simply yields an
// all-invalid series rather than an error.

// SMA computes the simple moving average over a trailing window.
// A window containing any non-finite input yields an invalid entry:
// silently dropping values would corrupt the divisor.
func SMA(values []float64, period int) Series {
	out := make(Series, len(values))
	if period <= 0 {
		return out
	}
	sum := 0.0
	bad := 0
	for i, v := range values {
		if isFinite(v) {
			sum += v
		} else {
			bad++
		}
		if i >= period {
			old := values[i-period]
			if isFinite(old) {
				sum -= old
			} else {
				bad--
			}
		}
		if i >= period-1 && bad == 0 {
			out[i] = Some(sum / float64(period))
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing constant
// k = 2/(period+1), seeded with the simple average of the first period
// finite values. This matches the seeding of the Wilder-style
// indicators downstream. A non-finite input after seeding carries the
// previous EMA forward unchanged so the recursive state is never
// corrupted.
func EMA(values []float64, period int) Series {
	out := make(Series, len(values))
	if period <= 0 {
		return out
	}
	k := 2.0 / float64(period+1)

	sum := 0.0
	n := 0
	ema := 0.0
	seeded := false
	for i, v := range values {
		if !seeded {
			if isFinite(v) {
				sum += v
				n++
			}
			if n == period {
				ema = sum / float64(period)
				seeded = true
				out[i] = Some(ema)
			}
			continue
		}
		if isFinite(v) {
			ema = (v-ema)*k + ema
		}
		out[i] = Some(ema)
	}
	return out
}

// RollingStdDev computes the population standard deviation over a
// trailing window, using the window's own mean. A window containing a
// non-finite value is invalid.
func RollingStdDev(values []float64, period int) Series {
	out := make(Series, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		win := values[i-period+1 : i+1]
		mean, ok := windowMean(win)
		if !ok {
			continue
		}
		ss := 0.0
		for _, v := range win {
			d := v - mean
			ss += d * d
		}
		out[i] = Some(math.Sqrt(ss / float64(period)))
	}
	return out
}

// TrueRange computes the per-bar true range:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close and is defined as high-low.
// Non-finite inputs propagate as NaN; consumers treat those bars the
// same way they treat any other non-finite sample.
func TrueRange(high, low, closes []float64) []float64 {
	out := make([]float64, len(high))
	for i := range high {
		hl := high[i] - low[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		hc := math.Abs(high[i] - closes[i-1])
		lc := math.Abs(low[i] - closes[i-1])
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// rollingMax returns the highest value over the trailing window.
func rollingMax(values []float64, period int) Series {
	return rollingExtreme(values, period, func(a, b float64) bool { return a > b })
}

// rollingMin returns the lowest value over the trailing window.
func rollingMin(values []float64, period int) Series {
	return rollingExtreme(values, period, func(a, b float64) bool { return a < b })
}

func rollingExtreme(values []float64, period int, better func(a, b float64) bool) Series {
	out := make(Series, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		best := values[i-period+1]
		ok := isFinite(best)
		for j := i - period + 2; j <= i && ok; j++ {
			v := values[j]
			if !isFinite(v) {
				ok = false
				break
			}
			if better(v, best) {
				best = v
			}
		}
		if ok {
			out[i] = Some(best)
		}
	}
	return out
}

// smaOver averages a derived series over a trailing window. Windows
// containing an invalid entry stay invalid.
func smaOver(s Series, period int) Series {
	out := make(Series, len(s))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(s); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if !s[j].Valid {
				ok = false
				break
			}
			sum += s[j].Float64
		}
		if ok {
			out[i] = Some(sum / float64(period))
		}
	}
	return out
}

// emaOver applies the EMA recursion to a derived series, seeding with
// the simple average of the first period valid entries. Invalid entries
// after seeding carry the previous value forward, mirroring EMA's
// non-finite policy.
func emaOver(s Series, period int) Series {
	out := make(Series, len(s))
	if period <= 0 {
		return out
	}
	k := 2.0 / float64(period+1)

	sum := 0.0
	n := 0
	ema := 0.0
	seeded := false
	for i, v := range s {
		if !seeded {
			if v.Valid {
				sum += v.Float64
				n++
			}
			if n == period {
				ema = sum / float64(period)
				seeded = true
				out[i] = Some(ema)
			}
			continue
		}
		if v.Valid {
			ema = (v.Float64-ema)*k + ema
		}
		out[i] = Some(ema)
	}
	return out
}

func windowMean(win []float64) (float64, bool) {
	sum := 0.0
	for _, v := range win {
		if !isFinite(v) {
			return 0, false
		}
		sum += v
	}
	return sum / float64(len(win)), true
}
