package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMACDHistogramIdentity(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 1.1 + 0.0001*float64(i)
	}
	res := MACD(closes, 12, 26, 9)

	defined := 0
	for i := range closes {
		if !res.Histogram[i].Valid {
			continue
		}
		defined++
		assert.True(t, res.Line[i].Valid)
		assert.True(t, res.Signal[i].Valid)
		assert.InDelta(t, res.Line[i].Float64-res.Signal[i].Float64, res.Histogram[i].Float64, 1e-12)
	}
	assert.Greater(t, defined, 0)
}

func TestMACDLineIsEMADifference(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	fast := EMA(closes, 12)
	slow := EMA(closes, 26)
	res := MACD(closes, 12, 26, 9)

	for i := range closes {
		if !res.Line[i].Valid {
			continue
		}
		assert.InDelta(t, fast[i].Float64-slow[i].Float64, res.Line[i].Float64, 1e-12)
	}
	// The line starts where the slow EMA does.
	assert.False(t, res.Line[24].Valid)
	assert.True(t, res.Line[25].Valid)
}

func TestMACDSignalSeedsFromLine(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 1.2 + 0.0002*float64(i)
	}
	res := MACD(closes, 12, 26, 9)

	// Line defined from index 25; signal needs 9 valid line entries.
	assert.False(t, res.Signal[32].Valid)
	assert.True(t, res.Signal[33].Valid)
}

func TestMACDConstantSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 2.5
	}
	res := MACD(closes, 12, 26, 9)

	last := res.Line.Last()
	assert.True(t, last.Valid)
	assert.Equal(t, 0.0, last.Float64)
	assert.Equal(t, 0.0, res.Histogram.Last().Float64)
}
