package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// MACrossStrategy trades the close against the 20-period average.
type MACrossStrategy struct {
	status string
}

func NewMACrossStrategy() *MACrossStrategy {
	return &MACrossStrategy{status: statusLoading}
}

func (s *MACrossStrategy) Name() string   { return "MA Cross" }
func (s *MACrossStrategy) Status() string { return s.status }

func (s *MACrossStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 20 {
		s.status = statusLoading
		return Hold
	}

	ma20 := indicators.SMA(candles, 20)
	price := candles[len(candles)-1].CloseF()

	// Positive gap means price above the average.
	if ma20 != 0 {
		gap := (price - ma20) / ma20 * 100
		s.status = fmt.Sprintf("Gap: %.2f%%", gap)
	}

	if price > ma20 {
		return Buy
	}
	if price < ma20 {
		return Sell
	}
	return Hold
}
