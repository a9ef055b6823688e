package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *Queries {
	t.Helper()
	database, err := New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := ApplyMigrations(database); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return database.Queries()
}

func TestTradeRoundTrip(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	trade := Trade{
		ID:         "t-1",
		Symbol:     "BTCUSDT",
		Interval:   "5m",
		Side:       "BUY",
		EntryPrice: decimal.RequireFromString("64250.50"),
		ExitPrice:  decimal.RequireFromString("64893.01"),
		Amount:     decimal.RequireFromString("0.015"),
		Pnl:        decimal.RequireFromString("9.6376"),
		Roe:        decimal.RequireFromString("9.0"),
		Score:      8,
		Reason:     "Auto TP (+1.00%)",
		OpenedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		ClosedAt:   time.Date(2025, 6, 1, 10, 25, 0, 0, time.UTC),
	}
	if err := q.InsertTrade(ctx, trade); err != nil {
		t.Fatalf("InsertTrade: %v", err)
	}

	trades, err := q.ListTrades(ctx, 10)
	if err != nil {
		t.Fatalf("ListTrades: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("trade count = %d, want 1", len(trades))
	}
	got := trades[0]
	if !got.EntryPrice.Equal(trade.EntryPrice) || !got.Pnl.Equal(trade.Pnl) {
		t.Fatalf("decimal fields lost precision: %+v", got)
	}
	if got.Reason != trade.Reason || got.Score != trade.Score {
		t.Fatalf("metadata mismatch: %+v", got)
	}
}

func TestListTradesNewestFirst(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		trade := Trade{
			ID: id, Symbol: "ETHUSDT", Interval: "5m", Side: "SELL",
			EntryPrice: decimal.NewFromInt(3000), ExitPrice: decimal.NewFromInt(2990),
			Amount: decimal.NewFromInt(1), Pnl: decimal.NewFromInt(10),
			Roe: decimal.NewFromInt(3), Reason: "Trailing Stop",
			OpenedAt: base, ClosedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := q.InsertTrade(ctx, trade); err != nil {
			t.Fatalf("InsertTrade %s: %v", id, err)
		}
	}

	trades, err := q.ListTrades(ctx, 2)
	if err != nil {
		t.Fatalf("ListTrades: %v", err)
	}
	if len(trades) != 2 || trades[0].ID != "new" || trades[1].ID != "mid" {
		t.Fatalf("wrong order/limit: %+v", trades)
	}
}

func TestBacktestRunRoundTrip(t *testing.T) {
	q := openTestDB(t)
	ctx := context.Background()

	run := BacktestRun{
		ID:           "run-1",
		Symbol:       "BTCUSDT",
		Interval:     "15m",
		Leverage:     decimal.NewFromInt(10),
		StartBalance: decimal.NewFromInt(10000),
		FinalBalance: decimal.RequireFromString("11834.22"),
		TotalTrades:  42,
		Wins:         25,
		Losses:       17,
		MaxDrawdown:  decimal.RequireFromString("12.4"),
		Report:       "=== Backtest ===",
		CreatedAt:    time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	if err := q.InsertBacktestRun(ctx, run); err != nil {
		t.Fatalf("InsertBacktestRun: %v", err)
	}

	got, err := q.GetBacktestRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetBacktestRun: %v", err)
	}
	if !got.FinalBalance.Equal(run.FinalBalance) || got.TotalTrades != 42 || got.Bankrupt {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	runs, err := q.ListBacktestRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListBacktestRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("run count = %d, want 1", len(runs))
	}
}

func TestGetBacktestRunNotFound(t *testing.T) {
	q := openTestDB(t)
	if _, err := q.GetBacktestRun(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
