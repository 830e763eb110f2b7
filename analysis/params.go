// Package analysis is the orchestrator in front of the indicators
// engine: it validates a request once at the boundary, normalizes the
// candle payload into parallel OHLC arrays, runs the configured
// indicator set, and assembles full series plus a last-value summary.
package analysis

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/chartd/indicators"
)

// MinHistory is the conservative floor on input length. Indicators
// requested for periods exceeding the available history must not
// silently return null-laden output mixed with valid-looking recent
// values, so short inputs are rejected outright.
const MinHistory = 30

var (
	// ErrBadRequest marks malformed input: missing fields, bad types,
	// non-finite prices, nonsensical parameters.
	ErrBadRequest = errors.New("bad request")

	// ErrInsufficientHistory marks inputs with fewer candles than the
	// largest configured period demands.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// MACDParams configures the MACD fast/slow/signal periods.
type MACDParams struct {
	Fast   int `json:"fast" yaml:"fast"`
	Slow   int `json:"slow" yaml:"slow"`
	Signal int `json:"signal" yaml:"signal"`
}

// BollingerParams configures the Bollinger window and band multiplier.
type BollingerParams struct {
	Length int     `json:"length" yaml:"length"`
	Std    float64 `json:"std" yaml:"std"`
}

// StochParams configures the stochastic %K and %D periods.
type StochParams struct {
	K int `json:"k" yaml:"k"`
	D int `json:"d" yaml:"d"`
}

// IchimokuParams configures the Ichimoku windows and forward shift.
type IchimokuParams struct {
	Conv  int `json:"conv" yaml:"conv"`
	Base  int `json:"base" yaml:"base"`
	SpanB int `json:"spanB" yaml:"spanB"`
	Shift int `json:"shift" yaml:"shift"`
}

// Params is the per-request indicator configuration. Every field has a
// documented default applied by withDefaults; a zero value means "use
// the default". Params are immutable after validation: withDefaults
// returns a copy and nothing mutates it afterwards.
type Params struct {
	EMA      []int              `json:"ema,omitempty" yaml:"ema,omitempty"`
	RSI      int                `json:"rsi,omitempty" yaml:"rsi,omitempty"`
	MACD     *MACDParams        `json:"macd,omitempty" yaml:"macd,omitempty"`
	BB       *BollingerParams   `json:"bb,omitempty" yaml:"bb,omitempty"`
	ATR      int                `json:"atr,omitempty" yaml:"atr,omitempty"`
	ADX      int                `json:"adx,omitempty" yaml:"adx,omitempty"`
	Stoch    *StochParams       `json:"stoch,omitempty" yaml:"stoch,omitempty"`
	Ichimoku *IchimokuParams    `json:"ichimoku,omitempty" yaml:"ichimoku,omitempty"`
	Variant  indicators.Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
}

func (p Params) withDefaults() Params {
	// 200 is a common third EMA but would push the minimum history to
	// 200 candles; callers who want it ask for it explicitly.
	if len(p.EMA) == 0 {
		p.EMA = []int{20, 50}
	}
	if p.RSI == 0 {
		p.RSI = 14
	}
	if p.MACD == nil {
		p.MACD = &MACDParams{Fast: 12, Slow: 26, Signal: 9}
	}
	if p.BB == nil {
		p.BB = &BollingerParams{Length: 20, Std: 2}
	}
	if p.ATR == 0 {
		p.ATR = 14
	}
	if p.ADX == 0 {
		p.ADX = 14
	}
	if p.Stoch == nil {
		p.Stoch = &StochParams{K: 14, D: 3}
	}
	if p.Ichimoku == nil {
		p.Ichimoku = &IchimokuParams{Conv: 9, Base: 26, SpanB: 52, Shift: 26}
	}
	if p.Variant == "" {
		p.Variant = indicators.Standard
	}
	return p
}

func (p Params) validate() error {
	for _, period := range p.EMA {
		if period <= 0 {
			return fmt.Errorf("%w: ema period must be positive, got %d", ErrBadRequest, period)
		}
	}
	if p.RSI <= 0 {
		return fmt.Errorf("%w: rsi period must be positive, got %d", ErrBadRequest, p.RSI)
	}
	if p.MACD.Fast <= 0 || p.MACD.Slow <= 0 || p.MACD.Signal <= 0 {
		return fmt.Errorf("%w: macd periods must be positive", ErrBadRequest)
	}
	if p.MACD.Fast >= p.MACD.Slow {
		return fmt.Errorf("%w: macd fast period %d must be below slow period %d",
			ErrBadRequest, p.MACD.Fast, p.MACD.Slow)
	}
	if p.BB.Length <= 0 {
		return fmt.Errorf("%w: bb length must be positive, got %d", ErrBadRequest, p.BB.Length)
	}
	if p.BB.Std < 0 {
		return fmt.Errorf("%w: bb std multiplier must be non-negative, got %g", ErrBadRequest, p.BB.Std)
	}
	if p.ATR <= 0 {
		return fmt.Errorf("%w: atr period must be positive, got %d", ErrBadRequest, p.ATR)
	}
	if p.ADX <= 0 {
		return fmt.Errorf("%w: adx period must be positive, got %d", ErrBadRequest, p.ADX)
	}
	if p.Stoch.K <= 0 || p.Stoch.D <= 0 {
		return fmt.Errorf("%w: stochastic periods must be positive", ErrBadRequest)
	}
	if p.Ichimoku.Conv <= 0 || p.Ichimoku.Base <= 0 || p.Ichimoku.SpanB <= 0 || p.Ichimoku.Shift < 0 {
		return fmt.Errorf("%w: ichimoku parameters out of range", ErrBadRequest)
	}
	if _, err := indicators.ParseVariant(string(p.Variant)); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// requiredHistory returns the minimum candle count the configured
// indicator set needs to produce at least one defined value per
// indicator, floored at MinHistory.
func (p Params) requiredHistory() int {
	need := MinHistory
	bump := func(n int) {
		if n > need {
			need = n
		}
	}
	for _, period := range p.EMA {
		bump(period)
	}
	bump(p.RSI + 1)
	bump(p.MACD.Slow + p.MACD.Signal)
	bump(p.BB.Length)
	bump(p.ATR + 1)
	if p.Variant == indicators.Simplified {
		bump(p.ADX + 1)
	} else {
		bump(2*p.ADX + 1)
	}
	bump(p.Stoch.K + p.Stoch.D - 1)
	// Each Ichimoku line has its own window; any of the three can be
	// the longest.
	bump(p.Ichimoku.Conv)
	bump(p.Ichimoku.Base)
	bump(p.Ichimoku.SpanB)
	return need
}
