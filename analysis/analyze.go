package analysis

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/chartd/indicators"
	"github.com/rustyeddy/chartd/market"
)

// Request is the analysis input: an instrument identifier, a candle
// granularity, the candle series itself, and the indicator parameter
// set. All of it is request-scoped; nothing survives the call.
type Request struct {
	Instrument  string              `json:"instrument"`
	Granularity string              `json:"granularity"`
	Candles     []market.WireCandle `json:"candles"`
	Params      Params              `json:"params"`
}

// Result carries the full per-indicator series, index-aligned to the
// input candles (Ichimoku spans run longer), plus the Last summary.
type Result struct {
	Instrument  string             `json:"instrument"`
	Granularity string             `json:"granularity"`
	CandleCount int                `json:"candle_count"`
	Variant     indicators.Variant `json:"variant"`

	EMA        map[string]indicators.Series `json:"ema"`
	RSI        indicators.Series            `json:"rsi"`
	MACD       indicators.MACDResult        `json:"macd"`
	Bollinger  indicators.BollingerResult   `json:"bb"`
	ATR        indicators.Series            `json:"atr"`
	ADX        indicators.ADXResult         `json:"adx"`
	Stochastic indicators.StochasticResult  `json:"stoch"`
	Ichimoku   indicators.IchimokuResult    `json:"ichimoku"`

	Last Summary `json:"last"`
}

// Summary holds the most recent defined value of each indicator, for
// callers that only care about the current reading.
type Summary struct {
	Close indicators.Value            `json:"close"`
	EMA   map[string]indicators.Value `json:"ema"`
	RSI   indicators.Value            `json:"rsi"`
	MACD  struct {
		Line      indicators.Value `json:"line"`
		Signal    indicators.Value `json:"signal"`
		Histogram indicators.Value `json:"histogram"`
	} `json:"macd"`
	Bollinger struct {
		Upper  indicators.Value `json:"upper"`
		Middle indicators.Value `json:"middle"`
		Lower  indicators.Value `json:"lower"`
	} `json:"bb"`
	ATR indicators.Value `json:"atr"`
	ADX struct {
		PlusDI  indicators.Value `json:"plus_di"`
		MinusDI indicators.Value `json:"minus_di"`
		ADX     indicators.Value `json:"adx"`
	} `json:"adx"`
	Stochastic struct {
		K indicators.Value `json:"k"`
		D indicators.Value `json:"d"`
	} `json:"stoch"`
	Ichimoku struct {
		Conversion indicators.Value `json:"conversion"`
		Base       indicators.Value `json:"base"`
		SpanA      indicators.Value `json:"span_a"`
		SpanB      indicators.Value `json:"span_b"`
	} `json:"ichimoku"`
}

// Analyze validates the request and computes every configured
// indicator over the candle series. Validation happens entirely up
// front: short or malformed input is rejected before any indicator
// runs, and each indicator computation is independent and
// side-effect-free, so no partial results ever escape.
func Analyze(req Request) (*Result, error) {
	params := req.Params.withDefaults()
	if err := params.validate(); err != nil {
		return nil, err
	}
	if req.Instrument == "" {
		return nil, fmt.Errorf("%w: instrument is required", ErrBadRequest)
	}
	if req.Granularity == "" {
		return nil, fmt.Errorf("%w: granularity is required", ErrBadRequest)
	}
	if len(req.Candles) == 0 {
		return nil, fmt.Errorf("%w: candles are required", ErrBadRequest)
	}

	candles := make([]market.Candle, len(req.Candles))
	for i, wc := range req.Candles {
		c, err := wc.Convert()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		candles[i] = c
	}

	if need := params.requiredHistory(); len(candles) < need {
		return nil, fmt.Errorf("%w: need at least %d candles for the requested periods, got %d",
			ErrInsufficientHistory, need, len(candles))
	}
	for i, c := range candles {
		if !c.Finite() {
			return nil, fmt.Errorf("%w: non-finite price in candle %d", ErrBadRequest, i)
		}
	}

	_, high, low, closes := market.Split(candles)

	res := &Result{
		Instrument:  req.Instrument,
		Granularity: req.Granularity,
		CandleCount: len(candles),
		Variant:     params.Variant,
		EMA:         make(map[string]indicators.Series, len(params.EMA)),
	}

	for _, period := range params.EMA {
		res.EMA[strconv.Itoa(period)] = indicators.EMA(closes, period)
	}
	res.RSI = indicators.RSI(closes, params.RSI, params.Variant)
	res.MACD = indicators.MACD(closes, params.MACD.Fast, params.MACD.Slow, params.MACD.Signal)
	res.Bollinger = indicators.Bollinger(closes, params.BB.Length, params.BB.Std)
	res.ATR = indicators.ATR(high, low, closes, params.ATR)
	res.ADX = indicators.ADX(high, low, closes, params.ADX, params.Variant)
	res.Stochastic = indicators.Stochastic(high, low, closes, params.Stoch.K, params.Stoch.D)
	res.Ichimoku = indicators.Ichimoku(high, low,
		params.Ichimoku.Conv, params.Ichimoku.Base, params.Ichimoku.SpanB, params.Ichimoku.Shift)

	res.Last = summarize(res, closes)
	return res, nil
}

func summarize(res *Result, closes []float64) Summary {
	var s Summary
	s.Close = indicators.Some(closes[len(closes)-1])

	s.EMA = make(map[string]indicators.Value, len(res.EMA))
	for period, series := range res.EMA {
		s.EMA[period] = series.Last()
	}
	s.RSI = res.RSI.Last()

	s.MACD.Line = res.MACD.Line.Last()
	s.MACD.Signal = res.MACD.Signal.Last()
	s.MACD.Histogram = res.MACD.Histogram.Last()

	s.Bollinger.Upper = res.Bollinger.Upper.Last()
	s.Bollinger.Middle = res.Bollinger.Middle.Last()
	s.Bollinger.Lower = res.Bollinger.Lower.Last()

	s.ATR = res.ATR.Last()

	s.ADX.PlusDI = res.ADX.PlusDI.Last()
	s.ADX.MinusDI = res.ADX.MinusDI.Last()
	s.ADX.ADX = res.ADX.ADX.Last()

	s.Stochastic.K = res.Stochastic.K.Last()
	s.Stochastic.D = res.Stochastic.D.Last()

	s.Ichimoku.Conversion = res.Ichimoku.Conversion.Last()
	s.Ichimoku.Base = res.Ichimoku.Base.Last()
	s.Ichimoku.SpanA = res.Ichimoku.SpanA.Last()
	s.Ichimoku.SpanB = res.Ichimoku.SpanB.Last()

	return s
}
