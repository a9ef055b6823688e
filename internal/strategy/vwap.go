package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// VWAPReversionStrategy fades large disparities between the close and the
// volume-weighted typical price of the last 24 candles.
type VWAPReversionStrategy struct {
	status string
}

const vwapPeriod = 24

func NewVWAPReversionStrategy() *VWAPReversionStrategy {
	return &VWAPReversionStrategy{status: statusLoading}
}

func (s *VWAPReversionStrategy) Name() string   { return "VWAP Reversion" }
func (s *VWAPReversionStrategy) Status() string { return s.status }

func (s *VWAPReversionStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < vwapPeriod {
		s.status = statusLoading
		return Hold
	}

	var totalPV, totalVolume float64
	for _, c := range candles[len(candles)-vwapPeriod:] {
		typical := (c.HighF() + c.LowF() + c.CloseF()) / 3
		totalPV += typical * c.VolumeF()
		totalVolume += c.VolumeF()
	}

	if totalVolume == 0 {
		return Hold
	}

	vwap := totalPV / totalVolume
	last := candles[len(candles)-1]
	disparity := (last.CloseF() - vwap) / vwap * 100

	s.status = fmt.Sprintf("Disp: %.2f%%", disparity)

	if disparity < -3.0 && last.IsBullish() {
		return Buy
	}
	if disparity > 3.0 && last.IsBearish() {
		return Sell
	}
	return Hold
}
