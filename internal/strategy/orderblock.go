package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// OrderBlockStrategy scans the 30-candle lookback for an engulfing reversal
// pair with a 1.5x volume expansion and fires when price retests the block
// candle's body range.
type OrderBlockStrategy struct {
	status string
}

func NewOrderBlockStrategy() *OrderBlockStrategy {
	return &OrderBlockStrategy{status: statusLoading}
}

func (s *OrderBlockStrategy) Name() string   { return "Order Block" }
func (s *OrderBlockStrategy) Status() string { return s.status }

func (s *OrderBlockStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 50 {
		s.status = statusLoading
		return Hold
	}

	price := candles[len(candles)-1].CloseF()
	obFound := false

	for i := len(candles) - 5; i >= len(candles)-30; i-- {
		candle := candles[i]
		next := candles[i+1]

		// Bullish block: bearish candle engulfed by a high-volume bullish one.
		isBullishOB := candle.IsBearish() &&
			next.CloseF() > candle.OpenF() &&
			next.VolumeF() > candle.VolumeF()*1.5

		if isBullishOB {
			obUpper := candle.OpenF()
			obLower := candle.CloseF()

			s.status = fmt.Sprintf("Bull OB $%.0f", obLower)
			obFound = true

			if price <= obUpper && price >= obLower {
				return Buy
			}
		}

		isBearishOB := candle.IsBullish() &&
			next.CloseF() < candle.OpenF() &&
			next.VolumeF() > candle.VolumeF()*1.5

		if isBearishOB {
			obLower := candle.OpenF()
			obUpper := candle.CloseF()

			s.status = fmt.Sprintf("Bear OB $%.0f", obUpper)
			obFound = true

			if price >= obLower && price <= obUpper {
				return Sell
			}
		}
	}

	if !obFound {
		s.status = "No Active OB"
	}
	return Hold
}
