package strategy

import (
	"fmt"

	"quant-core/internal/indicators"
	"quant-core/internal/market"
)

// LinRegStrategy combines a normalized regression slope of the last 20
// closes with Wilder RSI(14): trend entries are allowed only while RSI is
// not already stretched in the trade direction.
type LinRegStrategy struct {
	status string
}

const (
	linRegLookback  = 20
	linRegSlopeMin  = 0.15
	linRegRSIPeriod = 14
)

func NewLinRegStrategy() *LinRegStrategy {
	return &LinRegStrategy{status: statusLoading}
}

func (s *LinRegStrategy) Name() string   { return "LinReg + RSI" }
func (s *LinRegStrategy) Status() string { return s.status }

func (s *LinRegStrategy) Analyze(candles []market.Candle) Signal {
	if len(candles) < linRegLookback+linRegRSIPeriod {
		s.status = statusLoading
		return Hold
	}

	slope := indicators.Slope(candles, linRegLookback)
	rsi := indicators.RSI(candles, linRegRSIPeriod)

	s.status = fmt.Sprintf("Slope: %.2f | RSI: %.0f", slope, rsi)

	if slope > linRegSlopeMin && rsi < 70 {
		return Buy
	}
	if slope < -linRegSlopeMin && rsi > 30 {
		return Sell
	}
	return Hold
}
