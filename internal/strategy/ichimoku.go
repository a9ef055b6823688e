package strategy

import (
	"fmt"
	"math"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// IchimokuCloudStrategy compares the close against the cloud built from the
// 9/26 midprice lines and the 52-period span.
type IchimokuCloudStrategy struct {
	status string
}

func NewIchimokuCloudStrategy() *IchimokuCloudStrategy {
	return &IchimokuCloudStrategy{status: statusLoading}
}

func (s *IchimokuCloudStrategy) Name() string   { return "Ichimoku Cloud" }
func (s *IchimokuCloudStrategy) Status() string { return s.status }

func (s *IchimokuCloudStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 52 {
		s.status = statusLoading
		return Hold
	}

	tenkan := (indicators.HighestHigh(candles, 9) + indicators.LowestLow(candles, 9)) / 2
	kijun := (indicators.HighestHigh(candles, 26) + indicators.LowestLow(candles, 26)) / 2
	spanA := (tenkan + kijun) / 2
	spanB := (indicators.HighestHigh(candles, 52) + indicators.LowestLow(candles, 52)) / 2

	close := candles[len(candles)-1].CloseF()
	cloudTop := math.Max(spanA, spanB)
	cloudBottom := math.Min(spanA, spanB)

	switch {
	case close > cloudTop:
		diff := (close - cloudTop) / cloudTop * 100
		s.status = fmt.Sprintf("Above (+%.2f%%)", diff)
	case close < cloudBottom:
		diff := (cloudBottom - close) / cloudBottom * 100
		s.status = fmt.Sprintf("Below (-%.2f%%)", diff)
	default:
		s.status = "In Cloud"
	}

	if close > cloudTop && tenkan > kijun {
		return Buy
	}
	if close < cloudBottom && tenkan < kijun {
		return Sell
	}
	return Hold
}
