package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// FractalBreakoutStrategy uses the most recent Bill Williams fractals
// (5-candle local extremes) as support and resistance and trades closes
// beyond them.
type FractalBreakoutStrategy struct {
	status string
}

func NewFractalBreakoutStrategy() *FractalBreakoutStrategy {
	return &FractalBreakoutStrategy{status: statusLoading}
}

func (s *FractalBreakoutStrategy) Name() string   { return "Fractal Breakout" }
func (s *FractalBreakoutStrategy) Status() string { return s.status }

func (s *FractalBreakoutStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 10 {
		s.status = statusLoading
		return Hold
	}

	price := candles[len(candles)-1].CloseF()

	var lastFractalHigh float64
	for i := len(candles) - 3; i >= 2; i-- {
		center := candles[i]
		if center.HighF() > candles[i-1].HighF() &&
			center.HighF() > candles[i-2].HighF() &&
			center.HighF() > candles[i+1].HighF() &&
			center.HighF() > candles[i+2].HighF() {
			lastFractalHigh = center.HighF()
			break
		}
	}

	var lastFractalLow float64
	for i := len(candles) - 3; i >= 2; i-- {
		center := candles[i]
		if center.LowF() < candles[i-1].LowF() &&
			center.LowF() < candles[i-2].LowF() &&
			center.LowF() < candles[i+1].LowF() &&
			center.LowF() < candles[i+2].LowF() {
			lastFractalLow = center.LowF()
			break
		}
	}

	s.status = fmt.Sprintf("R:$%.0f S:$%.0f", lastFractalHigh, lastFractalLow)

	if lastFractalHigh > 0 && price > lastFractalHigh {
		return Buy
	}
	if lastFractalLow > 0 && price < lastFractalLow {
		return Sell
	}
	return Hold
}
