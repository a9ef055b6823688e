package risk

import "github.com/shopspring/decimal"

// ExitAction is the verdict of one exit evaluation.
type ExitAction int

const (
	Hold ExitAction = iota
	CloseAll
	ClosePartial
)

func (a ExitAction) String() string {
	switch a {
	case CloseAll:
		return "CLOSE_ALL"
	case ClosePartial:
		return "CLOSE_PARTIAL"
	default:
		return "HOLD"
	}
}

// ExitSignal carries the action plus the human-readable reason shown in the
// trade ledger. AmountRatio is only set for partial closes.
type ExitSignal struct {
	Action      ExitAction
	Reason      string
	AmountRatio decimal.Decimal
}

// Settings is the resolved stop/target geometry for the active position,
// all values in percent of entry price.
type Settings struct {
	StopLossPct    decimal.Decimal
	TakeProfitPct  decimal.Decimal
	TrailingGapPct decimal.Decimal
}
