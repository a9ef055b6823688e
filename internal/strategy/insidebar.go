package strategy

import (
	"quant-core/internal/market"
)

// InsideBarStrategy trades the classic mother/inside/breakout triplet:
// a candle fully contained by its predecessor, resolved by a close beyond
// the mother bar's range.
type InsideBarStrategy struct {
	status string
}

func NewInsideBarStrategy() *InsideBarStrategy {
	return &InsideBarStrategy{status: "No Pattern"}
}

func (s *InsideBarStrategy) Name() string   { return "Inside Bar" }
func (s *InsideBarStrategy) Status() string { return s.status }

func (s *InsideBarStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < 3 {
		s.status = statusLoading
		return Hold
	}

	motherBar := candles[len(candles)-3]
	insideBar := candles[len(candles)-2]
	breakCandle := candles[len(candles)-1]

	isInside := insideBar.HighF() < motherBar.HighF() &&
		insideBar.LowF() > motherBar.LowF()

	if !isInside {
		s.status = "No Pattern"
		return Hold
	}
	s.status = "Inside Formed"

	if breakCandle.CloseF() > motherBar.HighF() {
		s.status = "Breakout UP"
		return Buy
	}
	if breakCandle.CloseF() < motherBar.LowF() {
		s.status = "Breakout DOWN"
		return Sell
	}
	return Hold
}
