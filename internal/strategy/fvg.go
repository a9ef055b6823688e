package strategy

import (
	"fmt"

	"quant-core/internal/market"
)

// FairValueGapStrategy looks for a 3-candle imbalance in the last 10 bars
// (candle[i-2].high below candle[i].low, or the inverse) and fires when the
// current price re-enters the unfilled gap.
type FairValueGapStrategy struct {
	status string
}

func NewFairValueGapStrategy() *FairValueGapStrategy {
	return &FairValueGapStrategy{status: "No Gap"}
}

func (s *FairValueGapStrategy) Name() string   { return "Fair Value Gap" }
func (s *FairValueGapStrategy) Status() string { return s.status }

func (s *FairValueGapStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 5 {
		s.status = statusLoading
		return Hold
	}

	price := candles[len(candles)-1].CloseF()
	gapFound := false

	lo := len(candles) - 10
	if lo < 2 {
		lo = 2
	}
	for i := len(candles) - 2; i >= lo; i-- {
		c1 := candles[i-2]
		c3 := candles[i]

		// Bullish gap.
		if c1.HighF() < c3.LowF() {
			gapTop := c3.LowF()
			gapBottom := c1.HighF()

			s.status = fmt.Sprintf("Bull Gap $%.0f", gapBottom)
			gapFound = true

			if price <= gapTop && price >= gapBottom {
				return Buy
			}
		}

		// Bearish gap.
		if c1.LowF() > c3.HighF() {
			gapTop := c1.LowF()
			gapBottom := c3.HighF()

			s.status = fmt.Sprintf("Bear Gap $%.0f", gapTop)
			gapFound = true

			if price <= gapTop && price >= gapBottom {
				return Sell
			}
		}
	}

	if !gapFound {
		s.status = "No Gap"
	}
	return Hold
}
