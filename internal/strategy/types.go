package strategy

import "quant-core/internal/market"

// Signal is the tri-state decision emitted by a generator.
type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Sign maps Buy to +1, Sell to -1 and Hold to 0.
func (s Signal) Sign() int {
	switch s {
	case Buy:
		return 1
	case Sell:
		return -1
	default:
		return 0
	}
}

// Strategy is a single signal generator. Analyze is a pure function of the
// trailing closed-candle window; Status returns the human-readable indicator
// state computed by the most recent Analyze call (display only, it carries no
// decision state between calls).
type Strategy interface {
	Name() string
	Analyze(candles []market.Candle) Signal
	Status() string
}

// Result pairs a generator's signal with its status line for reporting.
type Result struct {
	Name   string `json:"name"`
	Signal Signal `json:"signal"`
	Status string `json:"status"`
}

const statusLoading = "Loading..."
