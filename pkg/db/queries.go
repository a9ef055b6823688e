// Package db persists closed trades and backtest runs to SQLite.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound marks a lookup that matched no row.
var ErrNotFound = errors.New("record not found")

// Queries wraps the trade and backtest statements.
type Queries struct {
	db *sql.DB
}

// Queries returns the statement wrapper bound to this database.
func (d *Database) Queries() *Queries {
	return &Queries{db: d.DB}
}

// InsertTrade records a closed trade.
func (q *Queries) InsertTrade(ctx context.Context, t Trade) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO trades (id, symbol, interval, side, entry_price, exit_price,
			amount, pnl, roe, score, reason, opened_at, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Symbol, t.Interval, t.Side,
		t.EntryPrice.String(), t.ExitPrice.String(), t.Amount.String(),
		t.Pnl.String(), t.Roe.String(), t.Score, t.Reason, t.OpenedAt, t.ClosedAt)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// ListTrades returns the most recently closed trades, newest first.
func (q *Queries) ListTrades(ctx context.Context, limit int) ([]Trade, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, symbol, interval, side, entry_price, exit_price,
			amount, pnl, roe, score, reason, opened_at, closed_at
		FROM trades
		ORDER BY closed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		var t Trade
		var entry, exit, amount, pnl, roe string
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Interval, &t.Side,
			&entry, &exit, &amount, &pnl, &roe,
			&t.Score, &t.Reason, &t.OpenedAt, &t.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		if t.EntryPrice, err = decimal.NewFromString(entry); err != nil {
			return nil, fmt.Errorf("decode entry price: %w", err)
		}
		if t.ExitPrice, err = decimal.NewFromString(exit); err != nil {
			return nil, fmt.Errorf("decode exit price: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount: %w", err)
		}
		if t.Pnl, err = decimal.NewFromString(pnl); err != nil {
			return nil, fmt.Errorf("decode pnl: %w", err)
		}
		if t.Roe, err = decimal.NewFromString(roe); err != nil {
			return nil, fmt.Errorf("decode roe: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// InsertBacktestRun records a finished simulator run.
func (q *Queries) InsertBacktestRun(ctx context.Context, r BacktestRun) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO backtest_runs (id, symbol, interval, leverage, start_balance,
			final_balance, total_trades, wins, losses, max_drawdown, bankrupt,
			report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Symbol, r.Interval, r.Leverage.String(),
		r.StartBalance.String(), r.FinalBalance.String(),
		r.TotalTrades, r.Wins, r.Losses, r.MaxDrawdown.String(),
		r.Bankrupt, r.Report, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert backtest run: %w", err)
	}
	return nil
}

// GetBacktestRun loads one run by ID.
func (q *Queries) GetBacktestRun(ctx context.Context, id string) (BacktestRun, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, symbol, interval, leverage, start_balance, final_balance,
			total_trades, wins, losses, max_drawdown, bankrupt, report, created_at
		FROM backtest_runs
		WHERE id = ?
	`, id)

	r, err := scanBacktestRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return BacktestRun{}, ErrNotFound
	}
	return r, err
}

// ListBacktestRuns returns recent runs, newest first.
func (q *Queries) ListBacktestRuns(ctx context.Context, limit int) ([]BacktestRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, symbol, interval, leverage, start_balance, final_balance,
			total_trades, wins, losses, max_drawdown, bankrupt, report, created_at
		FROM backtest_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query backtest runs: %w", err)
	}
	defer rows.Close()

	var runs []BacktestRun
	for rows.Next() {
		r, err := scanBacktestRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanBacktestRun(scan func(dest ...any) error) (BacktestRun, error) {
	var r BacktestRun
	var leverage, start, final, mdd string
	err := scan(&r.ID, &r.Symbol, &r.Interval, &leverage, &start, &final,
		&r.TotalTrades, &r.Wins, &r.Losses, &mdd, &r.Bankrupt, &r.Report, &r.CreatedAt)
	if err != nil {
		return BacktestRun{}, err
	}
	if r.Leverage, err = decimal.NewFromString(leverage); err != nil {
		return BacktestRun{}, fmt.Errorf("decode leverage: %w", err)
	}
	if r.StartBalance, err = decimal.NewFromString(start); err != nil {
		return BacktestRun{}, fmt.Errorf("decode start balance: %w", err)
	}
	if r.FinalBalance, err = decimal.NewFromString(final); err != nil {
		return BacktestRun{}, fmt.Errorf("decode final balance: %w", err)
	}
	if r.MaxDrawdown, err = decimal.NewFromString(mdd); err != nil {
		return BacktestRun{}, fmt.Errorf("decode max drawdown: %w", err)
	}
	return r, nil
}
