package strategy

import (
	"fmt"
	"math"

	"quant-core/internal/market"
)

// EfficiencyRatioStrategy trades only clean moves: the Kaufman efficiency
// ratio (net change over summed absolute changes) above 0.6 across 10 bars.
type EfficiencyRatioStrategy struct {
	status string
}

const efficiencyPeriod = 10

func NewEfficiencyRatioStrategy() *EfficiencyRatioStrategy {
	return &EfficiencyRatioStrategy{status: "ER: 0"}
}

func (s *EfficiencyRatioStrategy) Name() string   { return "Efficiency Ratio" }
func (s *EfficiencyRatioStrategy) Status() string { return s.status }

func (s *EfficiencyRatioStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < efficiencyPeriod+1 {
		s.status = statusLoading
		return Hold
	}

	data := candles[len(candles)-efficiencyPeriod-1:]

	netChange := math.Abs(data[len(data)-1].CloseF() - data[0].CloseF())
	var sumOfChanges float64
	for i := 1; i < len(data); i++ {
		sumOfChanges += math.Abs(data[i].CloseF() - data[i-1].CloseF())
	}

	if sumOfChanges == 0 {
		return Hold
	}

	er := netChange / sumOfChanges

	quality := "Noisy"
	if er > 0.6 {
		quality = "Clean"
	}
	s.status = fmt.Sprintf("ER: %.2f (%s)", er, quality)

	if er > 0.6 {
		if data[len(data)-1].CloseF() > data[0].CloseF() {
			return Buy
		}
		return Sell
	}
	return Hold
}
