// Package data loads offline candle corpora from disk.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"quant-core/internal/market"
)

// ErrEmptyFile marks a candle CSV without even a header row.
var ErrEmptyFile = errors.New("empty candle csv")

// timestamp layouts accepted in column 0, tried in order.
var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// LoadCandlesCSV reads a candle CSV exported by the klines downloader
// (timestamp,open,high,low,close,volume,quote_volume,trade_count). The
// header row is required; data rows that are short or unparseable are
// skipped. An empty file is an error.
func LoadCandlesCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candle csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var candles []market.Candle
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(row) < 8 {
			continue
		}
		c, ok := parseRow(row)
		if !ok {
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseRow(row []string) (market.Candle, bool) {
	ts, ok := parseTimestamp(row[0])
	if !ok {
		return market.Candle{}, false
	}

	fields := make([]decimal.Decimal, 6)
	for i := 0; i < 6; i++ {
		d, err := decimal.NewFromString(row[i+1])
		if err != nil {
			return market.Candle{}, false
		}
		fields[i] = d
	}

	tradeCount, err := strconv.Atoi(row[7])
	if err != nil {
		return market.Candle{}, false
	}

	return market.Candle{
		OpenTime:    ts,
		Open:        fields[0],
		High:        fields[1],
		Low:         fields[2],
		Close:       fields[3],
		Volume:      fields[4],
		QuoteVolume: fields[5],
		TradeCount:  tradeCount,
	}, true
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	// Millisecond epoch, as the raw Binance export writes it.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}
