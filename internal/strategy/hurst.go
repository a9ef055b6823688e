package strategy

import (
	"fmt"
	"math"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// HurstStrategy estimates the market regime with a simplified rescaled-range
// Hurst exponent over 30 candles: trend-follow when H >= 0.6, mean-revert
// when H <= 0.4, stand aside in the random-walk band between.
type HurstStrategy struct {
	status string
}

func NewHurstStrategy() *HurstStrategy {
	return &HurstStrategy{status: "Hurst: -"}
}

func (s *HurstStrategy) Name() string   { return "Hurst Regime" }
func (s *HurstStrategy) Status() string { return s.status }

func (s *HurstStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 30 {
		s.status = statusLoading
		return Hold
	}

	h := hurstExponent(candles)

	regime := "Random"
	if h > 0.6 {
		regime = "Trend"
	} else if h < 0.4 {
		regime = "MeanRev"
	}
	s.status = fmt.Sprintf("H: %.2f (%s)", h, regime)

	if h > 0.4 && h < 0.6 {
		return Hold
	}

	last := candles[len(candles)-1]
	ma20 := indicators.SMA(candles, 20)

	if h >= 0.6 {
		if last.CloseF() > ma20 {
			return Buy
		}
		return Sell
	}

	// h <= 0.4: fade excursions beyond a 2% band around the MA.
	if last.CloseF() > ma20*1.02 {
		return Sell
	}
	if last.CloseF() < ma20*0.98 {
		return Buy
	}
	return Hold
}

// hurstExponent is a simplified R/S estimate over the last 30 candles.
func hurstExponent(candles []market.Candle) float64 {
	data := candles[len(candles)-30:]
	n := len(data)

	var mean float64
	for _, c := range data {
		mean += c.CloseF()
	}
	mean /= float64(n)

	var sumSq float64
	for _, c := range data {
		d := c.CloseF() - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(n))
	if stdDev == 0 {
		return 0.5
	}

	var maxDev, minDev, currentDev float64
	for _, c := range data {
		currentDev += c.CloseF() - mean
		if currentDev > maxDev {
			maxDev = currentDev
		}
		if currentDev < minDev {
			minDev = currentDev
		}
	}

	rs := (maxDev - minDev) / stdDev
	return math.Log(rs) / math.Log(float64(n)/2.0)
}
