package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one closed position, live or simulated.
type Trade struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Interval   string          `json:"interval"`
	Side       string          `json:"side"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	ExitPrice  decimal.Decimal `json:"exit_price"`
	Amount     decimal.Decimal `json:"amount"`
	Pnl        decimal.Decimal `json:"pnl"`
	Roe        decimal.Decimal `json:"roe"`
	Score      int             `json:"score"`
	Reason     string          `json:"reason"`
	OpenedAt   time.Time       `json:"opened_at"`
	ClosedAt   time.Time       `json:"closed_at"`
}

// BacktestRun is the persisted outcome of one simulator run.
type BacktestRun struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Interval     string          `json:"interval"`
	Leverage     decimal.Decimal `json:"leverage"`
	StartBalance decimal.Decimal `json:"start_balance"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	TotalTrades  int             `json:"total_trades"`
	Wins         int             `json:"wins"`
	Losses       int             `json:"losses"`
	MaxDrawdown  decimal.Decimal `json:"max_drawdown"`
	Bankrupt     bool            `json:"bankrupt"`
	Report       string          `json:"report"`
	CreatedAt    time.Time       `json:"created_at"`
}
