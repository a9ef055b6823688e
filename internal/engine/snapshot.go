package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"quant-core/internal/strategy"
)

// Snapshot is the engine state after one decision cycle, published on the
// event bus and served over the API and websocket.
type Snapshot struct {
	Time     time.Time `json:"time"`
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"`

	Price   decimal.Decimal `json:"price"`
	Balance decimal.Decimal `json:"balance"`
	Equity  decimal.Decimal `json:"equity"`

	Score    int               `json:"score"`
	Filter   string            `json:"filter"`
	VetoPass bool              `json:"veto_pass"`
	Results  []strategy.Result `json:"results"`

	Position       string          `json:"position"`
	EntryPrice     decimal.Decimal `json:"entry_price"`
	PositionAmount decimal.Decimal `json:"position_amount"`
	NetRoe         decimal.Decimal `json:"net_roe"`

	CooldownSeconds float64 `json:"cooldown_seconds"`
	LastExitReason  string  `json:"last_exit_reason,omitempty"`
}
