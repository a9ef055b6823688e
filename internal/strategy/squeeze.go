package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// VolatilitySqueezeStrategy trades breakouts out of Bollinger band
// compressions. When the band width drops below 1.5% the market is coiled,
// and the first directional close away from the mean picks the side.
type VolatilitySqueezeStrategy struct {
	status string
}

const (
	squeezePeriod    = 20
	squeezeThreshold = 0.015
)

func NewVolatilitySqueezeStrategy() *VolatilitySqueezeStrategy {
	return &VolatilitySqueezeStrategy{status: statusLoading}
}

func (s *VolatilitySqueezeStrategy) Name() string   { return "Volatility Squeeze" }
func (s *VolatilitySqueezeStrategy) Status() string { return s.status }

func (s *VolatilitySqueezeStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < squeezePeriod {
		s.status = statusLoading
		return Hold
	}

	mean := indicators.SMA(candles, squeezePeriod)
	stdDev := indicators.StdDev(candles, squeezePeriod)
	bandWidth := (stdDev * 4) / mean

	s.status = fmt.Sprintf("Width: %.2f%%", bandWidth*100)
	if bandWidth < squeezeThreshold {
		s.status += " (Squeeze)"

		last := candles[len(candles)-1]
		if last.CloseF() > mean && last.IsBullish() {
			return Buy
		}
		if last.CloseF() < mean && last.IsBearish() {
			return Sell
		}
	}

	return Hold
}
