package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// ZScoreStrategy fades statistically stretched closes: more than two standard
// deviations from the 20-period mean, confirmed by the candle color.
type ZScoreStrategy struct {
	status string
}

const zScorePeriod = 20

func NewZScoreStrategy() *ZScoreStrategy {
	return &ZScoreStrategy{status: statusLoading}
}

func (s *ZScoreStrategy) Name() string   { return "Z-Score" }
func (s *ZScoreStrategy) Status() string { return s.status }

func (s *ZScoreStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < zScorePeriod {
		s.status = statusLoading
		return Hold
	}

	mean := indicators.SMA(candles, zScorePeriod)
	stdDev := indicators.StdDev(candles, zScorePeriod)

	// Flat window: z is undefined, stay neutral.
	if stdDev == 0 {
		s.status = "Score: 0.00 (Normal)"
		return Hold
	}

	last := candles[len(candles)-1]
	z := (last.CloseF() - mean) / stdDev

	state := "(Normal)"
	if z > 2 {
		state = "(Over)"
	} else if z < -2 {
		state = "(Under)"
	}
	s.status = fmt.Sprintf("Score: %.2f %s", z, state)

	if z > 2.0 && last.IsBearish() {
		return Sell
	}
	if z < -2.0 && last.IsBullish() {
		return Buy
	}
	return Hold
}
