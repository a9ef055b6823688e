package db

import "fmt"

// Monetary values are stored as TEXT so decimal amounts round-trip exactly.
const schema = `
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS trades (
    id TEXT PRIMARY KEY,
    symbol TEXT NOT NULL,
    interval TEXT NOT NULL,
    side TEXT NOT NULL,
    entry_price TEXT NOT NULL,
    exit_price TEXT NOT NULL,
    amount TEXT NOT NULL,
    pnl TEXT NOT NULL,
    roe TEXT NOT NULL,
    score INTEGER NOT NULL,
    reason TEXT NOT NULL,
    opened_at DATETIME NOT NULL,
    closed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol_closed
    ON trades(symbol, closed_at DESC);

CREATE TABLE IF NOT EXISTS backtest_runs (
    id TEXT PRIMARY KEY,
    symbol TEXT NOT NULL,
    interval TEXT NOT NULL,
    leverage TEXT NOT NULL,
    start_balance TEXT NOT NULL,
    final_balance TEXT NOT NULL,
    total_trades INTEGER NOT NULL,
    wins INTEGER NOT NULL,
    losses INTEGER NOT NULL,
    max_drawdown TEXT NOT NULL,
    bankrupt INTEGER NOT NULL DEFAULT 0,
    report TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backtest_runs_created
    ON backtest_runs(created_at DESC);
`

// ApplyMigrations bootstraps the schema. Statements are idempotent so this
// runs at every startup.
func ApplyMigrations(d *Database) error {
	if _, err := d.DB.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
