package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCandlesCSV(t *testing.T) {
	path := writeTemp(t,
		"timestamp,open,high,low,close,volume,quote_volume,trade_count\n"+
			"2025-01-01 00:00:00,100.5,101,99.9,100.8,523.1,52700.2,843\n"+
			"2025-01-01 00:05:00,100.8,102,100.1,101.9,611.4,62100.9,901\n")

	candles, err := LoadCandlesCSV(path)
	if err != nil {
		t.Fatalf("LoadCandlesCSV: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("candle count = %d, want 2", len(candles))
	}
	if got := candles[0].Close.String(); got != "100.8" {
		t.Fatalf("close = %s, want 100.8", got)
	}
	if candles[1].TradeCount != 901 {
		t.Fatalf("trade count = %d, want 901", candles[1].TradeCount)
	}
	if candles[0].OpenTime.Hour() != 0 || candles[1].OpenTime.Minute() != 5 {
		t.Fatalf("timestamps parsed wrong: %v %v", candles[0].OpenTime, candles[1].OpenTime)
	}
}

func TestLoadCandlesCSVSkipsBadRows(t *testing.T) {
	path := writeTemp(t,
		"timestamp,open,high,low,close,volume,quote_volume,trade_count\n"+
			"2025-01-01 00:00:00,100,101,99,100,500,50000,800\n"+
			"2025-01-01 00:05:00,broken,101,99,100,500,50000,800\n"+
			"short,row\n"+
			"2025-01-01 00:10:00,101,102,100,101,500,50500,820\n")

	candles, err := LoadCandlesCSV(path)
	if err != nil {
		t.Fatalf("LoadCandlesCSV: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("candle count = %d, want 2", len(candles))
	}
}

func TestLoadCandlesCSVEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	if _, err := LoadCandlesCSV(path); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("err = %v, want ErrEmptyFile", err)
	}
}

func TestLoadCandlesCSVHeaderOnly(t *testing.T) {
	path := writeTemp(t, "timestamp,open,high,low,close,volume,quote_volume,trade_count\n")
	candles, err := LoadCandlesCSV(path)
	if err != nil {
		t.Fatalf("LoadCandlesCSV: %v", err)
	}
	if len(candles) != 0 {
		t.Fatalf("candle count = %d, want 0", len(candles))
	}
}
