package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// TakerFlowStrategy reads aggression from the taker buy/sell volume split of
// the last candle. Thin candles (volume below 100) are ignored since the
// ratio is meaningless there.
type TakerFlowStrategy struct {
	status string
}

func NewTakerFlowStrategy() *TakerFlowStrategy {
	return &TakerFlowStrategy{status: "Vol: Low"}
}

func (s *TakerFlowStrategy) Name() string   { return "Taker Flow" }
func (s *TakerFlowStrategy) Status() string { return s.status }

func (s *TakerFlowStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 5 {
		s.status = statusLoading
		return Hold
	}

	last := candles[len(candles)-1]
	if last.VolumeF() < 100 {
		s.status = "Vol: Low"
		return Hold
	}

	buyVol := last.TakerBuyBaseVolume.InexactFloat64()
	sellVol := last.VolumeF() - buyVol
	if sellVol == 0 {
		sellVol = 1
	}
	s.status = fmt.Sprintf("BuyRatio: %.2fx", buyVol/sellVol)

	aggressiveBuy := buyVol > sellVol*1.5
	panicSell := sellVol > buyVol*1.5

	if aggressiveBuy && last.IsBullish() {
		return Buy
	}
	if panicSell && last.IsBearish() {
		return Sell
	}
	return Hold
}
