package indicators

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestATRSteadyRange(t *testing.T) {
	high := []float64{10, 11, 12, 11, 12, 13}
	low := []float64{8, 9, 10, 9, 10, 11}
	closes := []float64{9, 10, 11, 10, 11, 12}

	out := ATR(high, low, closes, 3)

	// Every true range is 2, so the seed and all smoothed values are 2.
	assert.False(t, out[2].Valid)
	assert.True(t, out[3].Valid)
	assert.InDelta(t, 2.0, out[3].Float64, 1e-12)
	assert.InDelta(t, 2.0, out[5].Float64, 1e-12)
}

func TestATRNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 100
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	price := 50.0
	for i := 0; i < n; i++ {
		price += (rng.Float64() - 0.5) * 4
		spread := rng.Float64() * 2
		high[i] = price + spread
		low[i] = price - spread
		closes[i] = price
	}

	out := ATR(high, low, closes, 14)
	for i, v := range out {
		if v.Valid {
			assert.GreaterOrEqual(t, v.Float64, 0.0, "index %d", i)
		}
	}
	assert.Greater(t, out.ValidCount(), 0)
}

func TestATRFlatCandles(t *testing.T) {
	n := 30
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i], low[i], closes[i] = 1.5, 1.5, 1.5
	}

	out := ATR(high, low, closes, 14)
	last := out.Last()
	assert.True(t, last.Valid)
	assert.Equal(t, 0.0, last.Float64)
}

func TestATRTooShort(t *testing.T) {
	out := ATR([]float64{1, 2}, []float64{1, 2}, []float64{1, 2}, 14)
	assert.Equal(t, 0, out.ValidCount())
}
