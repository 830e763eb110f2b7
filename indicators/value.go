package indicators

import (
	"math"
	"strconv"
)

// Value is a single point of an indicator series. Valid is false at
// indices where the indicator is not yet computable (insufficient
// trailing history, or a numerically undefined ratio such as a flat
// stochastic range). An invalid Value marshals as JSON null, so the
// "not yet computable" state survives serialization instead of hiding
// inside a NaN.
type Value struct {
	Float64 float64
	Valid   bool
}

// Some wraps a computed float. Non-finite results are demoted to the
// invalid state so NaN and Inf never leak into output series.
func Some(v float64) Value {
	if !isFinite(v) {
		return Value{}
	}
	return Value{Float64: v, Valid: true}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.Float64, 'g', -1, 64)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Series is an ordered sequence of indicator values, index-aligned to
// the candle sequence it was computed from. Forward-shifted indicators
// (Ichimoku spans) may be longer than their input.
type Series []Value

// Last returns the most recent valid value, scanning from the tail.
func (s Series) Last() Value {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i]
		}
	}
	return Value{}
}

// ValidCount returns how many entries of the series are defined.
func (s Series) ValidCount() int {
	n := 0
	for _, v := range s {
		if v.Valid {
			n++
		}
	}
	return n
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
