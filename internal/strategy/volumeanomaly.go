package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// VolumeAnomalyStrategy detects absorption: a volume spike above 3x the
// 20-period average while the candle range stays below average, read as
// quiet accumulation when price also holds above the 20-period MA.
type VolumeAnomalyStrategy struct {
	status string
}

func NewVolumeAnomalyStrategy() *VolumeAnomalyStrategy {
	return &VolumeAnomalyStrategy{status: statusLoading}
}

func (s *VolumeAnomalyStrategy) Name() string   { return "Volume Anomaly" }
func (s *VolumeAnomalyStrategy) Status() string { return s.status }

func (s *VolumeAnomalyStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 21 {
		s.status = statusLoading
		return Hold
	}

	last := candles[len(candles)-1]
	prev := candles[len(candles)-21 : len(candles)-1]

	var avgVolume, avgRange, avgClose float64
	for _, c := range prev {
		avgVolume += c.VolumeF()
		avgRange += c.HighF() - c.LowF()
		avgClose += c.CloseF()
	}
	avgVolume /= 20
	avgRange /= 20
	avgClose /= 20

	if avgVolume == 0 {
		avgVolume = 1
	}
	s.status = fmt.Sprintf("Vol Spike: %.1fx", last.VolumeF()/avgVolume)

	currentRange := last.HighF() - last.LowF()

	if last.VolumeF() > avgVolume*3 && currentRange < avgRange {
		if last.CloseF() > avgClose {
			return Buy
		}
	}
	return Hold
}
