package strategy

import (
	"quant-core/internal/market"
)

// DeltaDivergenceStrategy compares the taker buy/sell volume delta of the
// last 5 candles against the price extremes: new price highs on falling
// delta (or lows on rising delta) are traded as exhaustion.
type DeltaDivergenceStrategy struct {
	status string
}

func NewDeltaDivergenceStrategy() *DeltaDivergenceStrategy {
	return &DeltaDivergenceStrategy{status: "Neutral"}
}

func (s *DeltaDivergenceStrategy) Name() string   { return "Delta Divergence" }
func (s *DeltaDivergenceStrategy) Status() string { return s.status }

func (s *DeltaDivergenceStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 10 {
		s.status = statusLoading
		return Hold
	}

	data := candles[len(candles)-5:]
	deltas := make([]float64, 0, len(data))
	for _, c := range data {
		buy := c.TakerBuyBaseVolume.InexactFloat64()
		deltas = append(deltas, buy-(c.VolumeF()-buy))
	}

	first, last := data[0], data[len(data)-1]
	firstDelta, lastDelta := deltas[0], deltas[len(deltas)-1]

	priceHigherHigh := last.HighF() > first.HighF()
	deltaLowerHigh := lastDelta < firstDelta

	priceLowerLow := last.LowF() < first.LowF()
	deltaHigherLow := lastDelta > firstDelta

	switch {
	case priceHigherHigh && deltaLowerHigh:
		s.status = "Bear Div (Sell)"
		return Sell
	case priceLowerLow && deltaHigherLow:
		s.status = "Bull Div (Buy)"
		return Buy
	default:
		if lastDelta > 0 {
			s.status = "Delta +"
		} else {
			s.status = "Delta -"
		}
	}
	return Hold
}
