package market

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MockSource generates a deterministic synthetic candle series for local
// development and tests. The same parameters always produce the same series,
// which keeps offline backtests reproducible.
type MockSource struct {
	StartPrice float64
	Amplitude  float64
	BaseVolume float64
	Base       time.Time
}

func NewMockSource() *MockSource {
	return &MockSource{
		StartPrice: 100.0,
		Amplitude:  2.0,
		BaseVolume: 500.0,
		Base:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// FetchRecent returns the last limit candles of the synthetic series.
func (m *MockSource) FetchRecent(ctx context.Context, symbol, interval string, limit int) ([]Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.series(interval, 0, limit), nil
}

// FetchRange returns synthetic candles covering [start, end).
func (m *MockSource) FetchRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	step := IntervalDuration(interval)
	n := int(end.Sub(start) / step)
	if n < 0 {
		n = 0
	}
	return m.series(interval, 0, n), nil
}

func (m *MockSource) series(interval string, offset, n int) []Candle {
	step := IntervalDuration(interval)
	out := make([]Candle, 0, n)
	for i := 0; i < n; i++ {
		idx := offset + i
		// Slow sine drift plus a faster oscillation; no randomness.
		mid := m.StartPrice + m.Amplitude*math.Sin(float64(idx)/25.0) + 0.4*math.Sin(float64(idx)/7.0)
		open := mid - 0.1
		close := mid + 0.1
		high := math.Max(open, close) + 0.15
		low := math.Min(open, close) - 0.15
		vol := m.BaseVolume + 50.0*math.Abs(math.Sin(float64(idx)/13.0))

		out = append(out, Candle{
			OpenTime:           m.Base.Add(time.Duration(idx) * step),
			Open:               decimal.NewFromFloat(open),
			High:               decimal.NewFromFloat(high),
			Low:                decimal.NewFromFloat(low),
			Close:              decimal.NewFromFloat(close),
			Volume:             decimal.NewFromFloat(vol),
			QuoteVolume:        decimal.NewFromFloat(vol * mid),
			TradeCount:         100,
			TakerBuyBaseVolume: decimal.NewFromFloat(vol * 0.5),
		})
	}
	return out
}
