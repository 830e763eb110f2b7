// Package indicators provides technical analysis indicators computed
// over full OHLC price series. Every function is pure: it recomputes
// from the complete historical window it is handed and keeps no state
// between calls, so the package is safe to use from concurrent request
// handlers without synchronization.
//
// Outputs are Series of Value entries index-aligned to the input;
// entries where an indicator lacks enough trailing history (or hits a
// numerically undefined ratio) are marked invalid rather than being
// emitted as zero or NaN.
package indicators

import "fmt"

// Variant selects between the two indicator formulations this package
// ships for RSI and ADX. Standard is the Wilder-correct form; the
// Simplified form trades fidelity for simplicity (SMA-based RSI
// averaging, unsmoothed one-shot DX instead of ADX). The two produce
// materially different values near trend inflections and are never
// interchangeable, so callers pick one explicitly.
type Variant string

const (
	Standard   Variant = "standard"
	Simplified Variant = "simplified"
)

// ParseVariant validates a variant name, defaulting empty to Standard.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "":
		return Standard, nil
	case Standard, Simplified:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown indicator variant %q (want %q or %q)", s, Standard, Simplified)
}
