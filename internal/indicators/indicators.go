// Package indicators provides the statistical building blocks shared by the
// signal generators and the feature engine. All functions are pure; any
// degenerate input (zero variance, zero volume, short series) yields a
// neutral value instead of an error.
package indicators

import (
	"math"

	"quant-core/internal/market"
)

// ATR returns the average true range over the last period candles.
// Returns 0 when fewer than period+1 candles are available.
func ATR(candles []market.Candle, period int) float64 {
	if len(candles) <= period {
		return 0
	}
	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		h, l, pc := candles[i].HighF(), candles[i].LowF(), candles[i-1].CloseF()
		tr := math.Max(h-l, math.Max(math.Abs(h-pc), math.Abs(l-pc)))
		sum += tr
	}
	return sum / float64(period)
}

// SMA returns the simple average of the last period closes.
func SMA(candles []market.Candle, period int) float64 {
	if len(candles) < period || period <= 0 {
		return 0
	}
	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += candles[i].CloseF()
	}
	return sum / float64(period)
}

// StdDev returns the population standard deviation of the last period closes.
func StdDev(candles []market.Candle, period int) float64 {
	if len(candles) < period || period <= 0 {
		return 0
	}
	mean := SMA(candles, period)
	sumSq := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		d := candles[i].CloseF() - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(period))
}

// HighestHigh returns the maximum high over the last period candles.
func HighestHigh(candles []market.Candle, period int) float64 {
	max := math.Inf(-1)
	for i := len(candles) - period; i < len(candles); i++ {
		if h := candles[i].HighF(); h > max {
			max = h
		}
	}
	return max
}

// LowestLow returns the minimum low over the last period candles.
func LowestLow(candles []market.Candle, period int) float64 {
	min := math.Inf(1)
	for i := len(candles) - period; i < len(candles); i++ {
		if l := candles[i].LowF(); l < min {
			min = l
		}
	}
	return min
}

// Slope returns the least-squares slope of the last n closes with prices
// normalized to percent of the first close, so the threshold is scale free.
func Slope(candles []market.Candle, n int) float64 {
	if len(candles) < n || n < 2 {
		return 0
	}
	data := candles[len(candles)-n:]
	baseline := data[0].CloseF()
	if baseline == 0 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := (data[i].CloseF() - baseline) / baseline * 100
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	den := float64(n)*sumX2 - sumX*sumX
	if den == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / den
}
