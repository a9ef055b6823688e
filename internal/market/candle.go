package market

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Candle is a single closed OHLCV candle. Values are immutable once built.
type Candle struct {
	OpenTime           time.Time
	Open               decimal.Decimal
	High               decimal.Decimal
	Low                decimal.Decimal
	Close              decimal.Decimal
	Volume             decimal.Decimal
	QuoteVolume        decimal.Decimal
	TradeCount         int
	TakerBuyBaseVolume decimal.Decimal
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool { return c.Close.GreaterThan(c.Open) }

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool { return c.Close.LessThan(c.Open) }

// Range returns high minus low.
func (c Candle) Range() decimal.Decimal { return c.High.Sub(c.Low) }

// Float accessors for statistical indicator math.
func (c Candle) OpenF() float64   { f, _ := c.Open.Float64(); return f }
func (c Candle) HighF() float64   { f, _ := c.High.Float64(); return f }
func (c Candle) LowF() float64    { f, _ := c.Low.Float64(); return f }
func (c Candle) CloseF() float64  { f, _ := c.Close.Float64(); return f }
func (c Candle) VolumeF() float64 { f, _ := c.Volume.Float64(); return f }

// Source supplies time-ordered, duplicate-free candle sequences.
type Source interface {
	// FetchRecent returns up to limit most recent candles, oldest first.
	// The last candle may still be in progress.
	FetchRecent(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)

	// FetchRange returns the full candle history between start and end,
	// deduplicated and sorted by open time.
	FetchRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]Candle, error)
}

// SortDedupe orders candles by open time and drops duplicates in place.
// Paginated range fetches can overlap at page boundaries.
func SortDedupe(candles []Candle) []Candle {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].OpenTime.Before(candles[j].OpenTime)
	})
	out := candles[:0]
	var last time.Time
	for _, c := range candles {
		if len(out) > 0 && c.OpenTime.Equal(last) {
			continue
		}
		out = append(out, c)
		last = c.OpenTime
	}
	return out
}

// IntervalDuration maps a kline interval string to its duration.
func IntervalDuration(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	default:
		return 5 * time.Minute
	}
}
