package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// SuperTrendStrategy builds ATR(10) bands around the last candle's midpoint
// and trades closes beyond them.
type SuperTrendStrategy struct {
	status string
}

func NewSuperTrendStrategy() *SuperTrendStrategy {
	return &SuperTrendStrategy{status: statusLoading}
}

func (s *SuperTrendStrategy) Name() string   { return "SuperTrend" }
func (s *SuperTrendStrategy) Status() string { return s.status }

func (s *SuperTrendStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 20 {
		s.status = statusLoading
		return Hold
	}

	atr := indicators.ATR(candles, 10)
	const multiplier = 3.0

	last := candles[len(candles)-1]
	hl2 := (last.HighF() + last.LowF()) / 2

	basicUpper := hl2 + multiplier*atr
	basicLower := hl2 - multiplier*atr

	close := last.CloseF()
	if close > basicLower {
		s.status = fmt.Sprintf("UP ($%.0f)", basicLower)
	} else {
		s.status = fmt.Sprintf("DOWN ($%.0f)", basicUpper)
	}

	if close > basicUpper {
		return Buy
	}
	if close < basicLower {
		return Sell
	}
	return Hold
}
