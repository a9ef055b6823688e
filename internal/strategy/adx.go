package strategy

import (
	"fmt"
	"math"

	"quant-core/internal/market"
)

// ADXFilterStrategy measures trend strength from directional movement over
// 14 periods. It deliberately returns the raw directional index (DX) instead
// of the Wilder-smoothed ADX: the ensemble thresholds were tuned against the
// more responsive DX value, so smoothing it would change behavior downstream.
type ADXFilterStrategy struct {
	status string
}

const adxPeriod = 14

func NewADXFilterStrategy() *ADXFilterStrategy {
	return &ADXFilterStrategy{status: statusLoading}
}

func (s *ADXFilterStrategy) Name() string   { return "ADX Filter" }
func (s *ADXFilterStrategy) Status() string { return s.status }

func (s *ADXFilterStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < adxPeriod*2 {
		s.status = statusLoading
		return Hold
	}

	adx, plusDI, minusDI := directionalIndex(candles)

	trendState := "Weak"
	if adx >= 20 {
		if plusDI > minusDI {
			trendState = "Bull"
		} else if minusDI > plusDI {
			trendState = "Bear"
		}
	}
	s.status = fmt.Sprintf("ADX: %.1f (%s)", adx, trendState)

	// Below 30 the trend is too weak to trade at all.
	if adx < 30 {
		return Hold
	}

	if plusDI > minusDI && adx > 25 {
		return Buy
	}
	if minusDI > plusDI && adx > 25 {
		return Sell
	}
	return Hold
}

func directionalIndex(candles []market.Candle) (dx, plusDI, minusDI float64) {
	data := candles[len(candles)-adxPeriod-1:]

	var trSum, plusDmSum, minusDmSum float64
	for i := 1; i <= adxPeriod; i++ {
		highDiff := data[i].HighF() - data[i-1].HighF()
		lowDiff := data[i-1].LowF() - data[i].LowF()

		tr := math.Max(data[i].HighF()-data[i].LowF(),
			math.Max(math.Abs(data[i].HighF()-data[i-1].CloseF()),
				math.Abs(data[i].LowF()-data[i-1].CloseF())))

		if highDiff > lowDiff && highDiff > 0 {
			plusDmSum += highDiff
		}
		if lowDiff > highDiff && lowDiff > 0 {
			minusDmSum += lowDiff
		}
		trSum += tr
	}

	if trSum == 0 {
		return 0, 0, 0
	}

	plusDI = plusDmSum / trSum * 100
	minusDI = minusDmSum / trSum * 100

	div := plusDI + minusDI
	if div == 0 {
		return 0, plusDI, minusDI
	}
	dx = math.Abs(plusDI-minusDI) / div * 100
	return dx, plusDI, minusDI
}
