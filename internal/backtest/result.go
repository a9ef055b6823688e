package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"quant-core/pkg/db"
)

// Result summarizes one simulation run.
type Result struct {
	RunID        string          `json:"run_id"`
	Symbol       string          `json:"symbol"`
	Interval     string          `json:"interval"`
	Leverage     decimal.Decimal `json:"leverage"`
	StartBalance decimal.Decimal `json:"start_balance"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	TotalPnL     decimal.Decimal `json:"total_pnl"`
	MaxDrawdown  decimal.Decimal `json:"max_drawdown"`
	WinCount     int             `json:"win_count"`
	LossCount    int             `json:"loss_count"`
	Bankrupt     bool            `json:"bankrupt"`
	Report       string          `json:"report"`
	FinishedAt   time.Time       `json:"finished_at"`
}

// Run converts the result into its persistence row.
func (r Result) Run() db.BacktestRun {
	return db.BacktestRun{
		ID:           r.RunID,
		Symbol:       r.Symbol,
		Interval:     r.Interval,
		Leverage:     r.Leverage,
		StartBalance: r.StartBalance,
		FinalBalance: r.FinalBalance,
		TotalTrades:  r.WinCount + r.LossCount,
		Wins:         r.WinCount,
		Losses:       r.LossCount,
		MaxDrawdown:  r.MaxDrawdown,
		Bankrupt:     r.Bankrupt,
		Report:       r.Report,
		CreatedAt:    r.FinishedAt,
	}
}
