package indicators

import "math"

// ADXResult holds the directional index lines. PlusDI and MinusDI are
// defined from index period; the ADX line's first defined index
// depends on the variant (see ADX).
type ADXResult struct {
	PlusDI  Series `json:"plus_di"`
	MinusDI Series `json:"minus_di"`
	ADX     Series `json:"adx"`
}

// ADX computes Wilder's Average Directional Index.
//
// Directional movement per bar: up = high[i]-high[i-1], down =
// low[i-1]-low[i]; +DM = up when up > down && up > 0, -DM = down when
// down > up && down > 0. TR, +DM and -DM are Wilder-smoothed
// independently, seeded with simple means of the first period samples.
// +DI = 100*smoothed(+DM)/smoothed(TR), -DI symmetric, and
// DX = 100*|+DI - -DI|/(+DI + -DI).
//
// Standard: ADX is the Wilder-smoothed average of DX, seeded with the
// simple mean of the first period valid DX values; first defined at
// index 2*period-1 on clean input.
//
// Simplified: ADX is the raw, unsmoothed DX at each index, defined
// from index period. It reacts a full period earlier and differs
// materially from the smoothed form near trend inflections; the two
// must never be conflated.
//
// Indices where smoothed TR or the DI sum is zero stay invalid.
func ADX(high, low, closes []float64, period int, variant Variant) ADXResult {
	n := len(closes)
	res := ADXResult{
		PlusDI:  make(Series, n),
		MinusDI: make(Series, n),
		ADX:     make(Series, n),
	}
	if period <= 0 || n <= period {
		return res
	}

	trs := TrueRange(high, low, closes)

	// Seed smoothed TR/+DM/-DM with simple means of samples 1..period.
	var smTR, smPDM, smMDM float64
	for i := 1; i <= period; i++ {
		pdm, mdm := directionalMovement(high, low, i)
		if !isFinite(trs[i]) || !isFinite(pdm) || !isFinite(mdm) {
			return res
		}
		smTR += trs[i]
		smPDM += pdm
		smMDM += mdm
	}
	smTR /= float64(period)
	smPDM /= float64(period)
	smMDM /= float64(period)

	var (
		dxSum   float64
		dxCount int
		adx     float64
		seeded  bool
	)

	for i := period; i < n; i++ {
		if i > period {
			pdm, mdm := directionalMovement(high, low, i)
			if isFinite(trs[i]) && isFinite(pdm) && isFinite(mdm) {
				smTR = (smTR*float64(period-1) + trs[i]) / float64(period)
				smPDM = (smPDM*float64(period-1) + pdm) / float64(period)
				smMDM = (smMDM*float64(period-1) + mdm) / float64(period)
			}
		}

		if smTR == 0 {
			continue
		}
		pdi := 100 * smPDM / smTR
		mdi := 100 * smMDM / smTR
		res.PlusDI[i] = Some(pdi)
		res.MinusDI[i] = Some(mdi)

		den := pdi + mdi
		if den == 0 {
			continue
		}
		dx := 100 * math.Abs(pdi-mdi) / den

		if variant == Simplified {
			res.ADX[i] = Some(dx)
			continue
		}

		if !seeded {
			dxSum += dx
			dxCount++
			if dxCount == period {
				adx = dxSum / float64(period)
				seeded = true
				res.ADX[i] = Some(adx)
			}
			continue
		}
		adx = (adx*float64(period-1) + dx) / float64(period)
		res.ADX[i] = Some(adx)
	}

	return res
}

func directionalMovement(high, low []float64, i int) (pdm, mdm float64) {
	up := high[i] - high[i-1]
	down := low[i-1] - low[i]
	if up > down && up > 0 {
		pdm = up
	}
	if down > up && down > 0 {
		mdm = down
	}
	return pdm, mdm
}
