package pattern

import (
	"math"
	"time"

	"quant-core/internal/market"
)

// FeaturePoint is one candle summarized as a fixed-width vector plus the
// forward return label used for neighbor voting.
type FeaturePoint struct {
	Time         time.Time
	Vector       []float64
	FutureReturn float64
}

// Feature windows. Points are only emitted where every window is filled and
// the forward label horizon still fits inside the series.
const (
	returnWindow  = 20
	volWindow     = 20
	zScoreWindow  = 20
	rsiWindow     = 14
	futureHorizon = 4
)

// BuildFeatures converts a candle series into labeled feature points. Each
// vector holds, in order: cumulative log return, volume deviation ratio,
// price z-score, log-return volatility, MA gap, RSI. Windows without enough
// history substitute neutral values (0, or 50 for RSI).
func BuildFeatures(candles []market.Candle) []FeaturePoint {
	n := len(candles)
	if n == 0 {
		return nil
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.CloseF()
		volumes[i] = c.VolumeF()
	}

	logRets := logReturns(closes)
	volStd := rollingStd(logRets, volWindow)
	priceStd := rollingStd(closes, zScoreWindow)
	priceSma := rollingMean(closes, zScoreWindow)
	volSma := rollingMean(volumes, zScoreWindow)
	rsi := wilderRSI(closes, rsiWindow)

	minIdx := returnWindow
	if volWindow > minIdx {
		minIdx = volWindow
	}
	if zScoreWindow > minIdx {
		minIdx = zScoreWindow
	}
	lastIdx := n - futureHorizon - 1

	var points []FeaturePoint
	for i := minIdx; i <= lastIdx; i++ {
		sumRet := 0.0
		for j := i - returnWindow + 1; j <= i; j++ {
			sumRet += logRets[j]
		}

		volDev := 0.0
		if !math.IsNaN(volSma[i]) {
			volDev = (volumes[i] - volSma[i]) / (volSma[i] + 1e-9)
		}

		priceZ := 0.0
		if !math.IsNaN(priceSma[i]) && !math.IsNaN(priceStd[i]) && priceStd[i] != 0 {
			priceZ = (closes[i] - priceSma[i]) / priceStd[i]
		}

		volatility := 0.0
		if !math.IsNaN(volStd[i]) {
			volatility = volStd[i]
		}

		maGap := 0.0
		if !math.IsNaN(priceSma[i]) && priceSma[i] != 0 {
			maGap = closes[i]/priceSma[i] - 1.0
		}

		rsiVal := 50.0
		if !math.IsNaN(rsi[i]) {
			rsiVal = rsi[i]
		}

		futureRet := 0.0
		for j := i + 1; j <= i+futureHorizon; j++ {
			futureRet += logRets[j]
		}

		points = append(points, FeaturePoint{
			Time:         candles[i].OpenTime,
			Vector:       []float64{sumRet, volDev, priceZ, volatility, maGap, rsiVal},
			FutureReturn: futureRet,
		})
	}
	return points
}

func logReturns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		out[i] = math.Log(closes[i] / closes[i-1])
	}
	return out
}

func rollingMean(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func rollingStd(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		mean := 0.0
		for j := i - period + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(period)

		sumSq := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := values[j] - mean
			sumSq += diff * diff
		}
		out[i] = math.Sqrt(sumSq / float64(period))
	}
	return out
}

// wilderRSI returns the full RSI series; indices before the first complete
// period are NaN.
func wilderRSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	for i := 0; i < period && i < n; i++ {
		out[i] = math.NaN()
	}
	if n <= period {
		return out
	}

	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	gain /= float64(period)
	loss /= float64(period)

	if loss == 0 {
		out[period] = 100
	} else {
		out[period] = 100 - 100/(1+gain/loss)
	}

	for i := period + 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		up, down := math.Max(change, 0), math.Max(-change, 0)
		gain = (gain*float64(period-1) + up) / float64(period)
		loss = (loss*float64(period-1) + down) / float64(period)
		if loss == 0 {
			out[i] = 100
		} else {
			out[i] = 100 - 100/(1+gain/loss)
		}
	}
	return out
}
