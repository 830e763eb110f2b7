package indicators

// RSI computes the Relative Strength Index over closing prices.
//
// The Standard variant is Wilder's: the first period deltas seed the
// average gain/loss as simple means, after which each average is
// updated as avg = (avg*(period-1) + current)/period. This exponential
// update is the defining property of Wilder's RSI and is not the same
// as plain SMA averaging.
//
// The Simplified variant (Cutler's) recomputes the gain/loss averages
// as simple means over the trailing window at every index.
//
// Both variants: RS = avgGain/avgLoss, RSI = 100 - 100/(1+RS), and
// avgLoss == 0 maps to RSI 100 by convention. Output is invalid for
// indices below period.
func RSI(closes []float64, period int, variant Variant) Series {
	if variant == Simplified {
		return rsiSimplified(closes, period)
	}
	return rsiWilder(closes, period)
}

func rsiWilder(closes []float64, period int) Series {
	out := make(Series, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss, ok := delta(closes, i)
		if !ok {
			// A non-finite close poisons the seed; the series stays
			// invalid until the orchestrator-level checks catch it.
			return out
		}
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		gain, loss, ok := delta(closes, i)
		if ok {
			avgGain = (avgGain*float64(period-1) + gain) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		}
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiSimplified(closes []float64, period int) Series {
	out := make(Series, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}
	for i := period; i < len(closes); i++ {
		var sumGain, sumLoss float64
		ok := true
		for j := i - period + 1; j <= i; j++ {
			gain, loss, fin := delta(closes, j)
			if !fin {
				ok = false
				break
			}
			sumGain += gain
			sumLoss += loss
		}
		if ok {
			out[i] = rsiValue(sumGain/float64(period), sumLoss/float64(period))
		}
	}
	return out
}

func delta(closes []float64, i int) (gain, loss float64, ok bool) {
	d := closes[i] - closes[i-1]
	if !isFinite(d) {
		return 0, 0, false
	}
	if d > 0 {
		return d, 0, true
	}
	return 0, -d, true
}

func rsiValue(avgGain, avgLoss float64) Value {
	if avgLoss == 0 {
		return Some(100)
	}
	rs := avgGain / avgLoss
	return Some(100 - 100/(1+rs))
}
