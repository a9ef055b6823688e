package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// RSIDivergenceStrategy hunts reversals: a 5-candle price extreme that is
// not confirmed by the RSI extreme of the prior 15 candles.
type RSIDivergenceStrategy struct {
	status string
}

const rsiDivPeriod = 14

func NewRSIDivergenceStrategy() *RSIDivergenceStrategy {
	return &RSIDivergenceStrategy{status: "RSI: -"}
}

func (s *RSIDivergenceStrategy) Name() string   { return "RSI Divergence" }
func (s *RSIDivergenceStrategy) Status() string { return s.status }

func (s *RSIDivergenceStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 30 {
		s.status = statusLoading
		return Hold
	}

	rsiValues := indicators.RSISeries(candles, rsiDivPeriod)
	currentRSI := rsiValues[len(rsiValues)-1]
	s.status = fmt.Sprintf("RSI: %.1f", currentRSI)

	const lookback = 5

	prevRSI := prevWindow(rsiValues, lookback, 15)

	lastPriceLow := indicators.LowestLow(candles, lookback)
	lastRSILow := minOf(rsiValues[len(rsiValues)-lookback:])

	prevPriceLow := indicators.LowestLow(candles[:len(candles)-lookback], 15)
	prevRSILow := minOf(prevRSI)

	// Bullish divergence: price lower low, RSI higher low, still oversold.
	if lastPriceLow < prevPriceLow && lastRSILow > prevRSILow && lastRSILow < 40 {
		s.status = fmt.Sprintf("Bull Div (RSI %.0f)", currentRSI)
		return Buy
	}

	lastPriceHigh := indicators.HighestHigh(candles, lookback)
	lastRSIHigh := maxOf(rsiValues[len(rsiValues)-lookback:])

	prevPriceHigh := indicators.HighestHigh(candles[:len(candles)-lookback], 15)
	prevRSIHigh := maxOf(prevRSI)

	if lastPriceHigh > prevPriceHigh && lastRSIHigh < prevRSIHigh && lastRSIHigh > 60 {
		s.status = fmt.Sprintf("Bear Div (RSI %.0f)", currentRSI)
		return Sell
	}

	return Hold
}

// prevWindow slices the size-candle stretch preceding the last skip
// values, clamped so short series still yield a usable window.
func prevWindow(values []float64, skip, size int) []float64 {
	lo := len(values) - skip - size
	if lo < 0 {
		lo = 0
	}
	hi := lo + size
	if hi > len(values) {
		hi = len(values)
	}
	return values[lo:hi]
}

func minOf(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
