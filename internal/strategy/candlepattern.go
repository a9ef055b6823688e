package strategy

import (
	"quant-core/internal/market"
)

// CandlePatternStrategy looks for two classic bullish reversal shapes on the
// most recently closed candle: a hammer or a bullish engulfing. Long-only.
type CandlePatternStrategy struct {
	status string
}

func NewCandlePatternStrategy() *CandlePatternStrategy {
	return &CandlePatternStrategy{status: statusLoading}
}

func (s *CandlePatternStrategy) Name() string   { return "Candle Pattern" }
func (s *CandlePatternStrategy) Status() string { return s.status }

func (s *CandlePatternStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 3 {
		s.status = statusLoading
		return Hold
	}

	candle := candles[len(candles)-2]
	prev := candles[len(candles)-3]

	open, close := candle.OpenF(), candle.CloseF()
	body := close - open
	if body < 0 {
		body = -body
	}
	bodyLow, bodyHigh := open, close
	if close < open {
		bodyLow, bodyHigh = close, open
	}

	lowerTail := bodyLow - candle.LowF()
	upperWick := candle.HighF() - bodyHigh
	isHammer := lowerTail > body*2 && upperWick < body

	isBullishEngulfing := prev.IsBearish() &&
		candle.IsBullish() &&
		open < prev.CloseF() &&
		close > prev.OpenF()

	switch {
	case isHammer:
		s.status = "Hammer"
	case isBullishEngulfing:
		s.status = "Engulfing"
	default:
		s.status = "No Pattern"
	}

	if isHammer || isBullishEngulfing {
		return Buy
	}
	return Hold
}
