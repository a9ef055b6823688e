package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quant-core/internal/market"
)

func candleSeries(closes ...float64) []market.Candle {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		out[i] = market.Candle{
			OpenTime: base.Add(time.Duration(i) * 5 * time.Minute),
			Open:     price,
			High:     price.Add(decimal.NewFromFloat(0.5)),
			Low:      price.Sub(decimal.NewFromFloat(0.5)),
			Close:    price,
			Volume:   decimal.NewFromInt(100),
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	candles := candleSeries(1, 2, 3, 4, 5)
	if got := SMA(candles, 5); !almostEqual(got, 3) {
		t.Fatalf("SMA = %v, want 3", got)
	}
	if got := SMA(candles, 2); !almostEqual(got, 4.5) {
		t.Fatalf("SMA last 2 = %v, want 4.5", got)
	}
	if got := SMA(candles, 10); got != 0 {
		t.Fatalf("SMA short window = %v, want 0", got)
	}
}

func TestStdDevFlatSeries(t *testing.T) {
	candles := candleSeries(7, 7, 7, 7, 7)
	if got := StdDev(candles, 5); got != 0 {
		t.Fatalf("StdDev flat = %v, want 0", got)
	}
}

func TestStdDev(t *testing.T) {
	candles := candleSeries(2, 4, 4, 4, 5, 5, 7, 9)
	if got := StdDev(candles, 8); !almostEqual(got, 2) {
		t.Fatalf("StdDev = %v, want 2", got)
	}
}

func TestATR(t *testing.T) {
	// Fixed 1.0 high-low range and small close steps keep H-L the true range.
	candles := candleSeries(10, 10.1, 10.2, 10.1, 10)
	got := ATR(candles, 4)
	if !almostEqual(got, 1.0) {
		t.Fatalf("ATR = %v, want 1.0", got)
	}
	if v := ATR(candles, 10); v != 0 {
		t.Fatalf("ATR short window = %v, want 0", v)
	}
}

func TestHighestLowest(t *testing.T) {
	candles := candleSeries(3, 9, 5, 1, 6)
	if got := HighestHigh(candles, 5); !almostEqual(got, 9.5) {
		t.Fatalf("HighestHigh = %v, want 9.5", got)
	}
	if got := LowestLow(candles, 5); !almostEqual(got, 0.5) {
		t.Fatalf("LowestLow = %v, want 0.5", got)
	}
}

func TestSlope(t *testing.T) {
	// Perfect linear ramp: 100, 101, ... normalized slope is 1%/step.
	candles := candleSeries(100, 101, 102, 103, 104)
	if got := Slope(candles, 5); !almostEqual(got, 1) {
		t.Fatalf("Slope = %v, want 1", got)
	}

	flat := candleSeries(50, 50, 50, 50)
	if got := Slope(flat, 4); got != 0 {
		t.Fatalf("Slope flat = %v, want 0", got)
	}
}

func TestRSINeutralOnShortWindow(t *testing.T) {
	candles := candleSeries(1, 2, 3)
	if got := RSI(candles, 14); got != 50 {
		t.Fatalf("RSI short window = %v, want 50", got)
	}
}

func TestRSIMonotonicSeries(t *testing.T) {
	up := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	if got := RSI(candleSeries(up...), 14); got != 100 {
		t.Fatalf("RSI all gains = %v, want 100", got)
	}

	down := make([]float64, 30)
	for i := range down {
		down[i] = 100 - float64(i)
	}
	if got := RSI(candleSeries(down...), 14); got != 0 {
		t.Fatalf("RSI all losses = %v, want 0", got)
	}
}

func TestRSISeriesLength(t *testing.T) {
	candles := candleSeries(make([]float64, 40)...)
	for i := range candles {
		candles[i].Close = decimal.NewFromFloat(100 + math.Sin(float64(i)))
	}
	series := RSISeries(candles, 14)
	if len(series) != len(candles)-14 {
		t.Fatalf("series len = %d, want %d", len(series), len(candles)-14)
	}
	for i, v := range series {
		if v < 0 || v > 100 {
			t.Fatalf("series[%d] = %v out of range", i, v)
		}
	}
}
