package binance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"quant-core/internal/market"
)

// Source adapts the REST client to the market.Source interface.
type Source struct {
	client *Client
}

func NewSource(testnet bool) *Source {
	return &Source{client: NewClient(testnet)}
}

// FetchRecent returns up to limit most recent candles, oldest first.
func (s *Source) FetchRecent(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	klines, err := s.client.Klines(ctx, symbol, interval, limit, 0, 0)
	if err != nil {
		return nil, err
	}
	return toCandles(klines), nil
}

// FetchRange downloads the candle history between start and end in pages of
// 1000 and returns the deduplicated, time-sorted result.
func (s *Source) FetchRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]market.Candle, error) {
	const pageLimit = 1000
	step := market.IntervalDuration(interval)

	var all []market.Candle
	cursor := start
	for cursor.Before(end) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageEnd := cursor.Add(step * pageLimit)
		if pageEnd.After(end) {
			pageEnd = end
		}

		klines, err := s.client.Klines(ctx, symbol, interval, pageLimit, cursor.UnixMilli(), pageEnd.UnixMilli())
		if err != nil {
			return nil, err
		}
		if len(klines) == 0 {
			break
		}

		all = append(all, toCandles(klines)...)
		cursor = time.UnixMilli(klines[len(klines)-1].OpenTime).Add(step)
	}

	return market.SortDedupe(all), nil
}

func toCandles(klines []Kline) []market.Candle {
	out := make([]market.Candle, 0, len(klines))
	for _, k := range klines {
		out = append(out, market.Candle{
			OpenTime:           time.UnixMilli(k.OpenTime).UTC(),
			Open:               parseDecimal(k.Open),
			High:               parseDecimal(k.High),
			Low:                parseDecimal(k.Low),
			Close:              parseDecimal(k.Close),
			Volume:             parseDecimal(k.Volume),
			QuoteVolume:        parseDecimal(k.QuoteVolume),
			TradeCount:         k.NumberOfTrades,
			TakerBuyBaseVolume: parseDecimal(k.TakerBuyBaseVolume),
		})
	}
	return out
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
