package risk

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"quant-core/internal/strategy"
)

// FeeRate is the taker fee applied per side.
var FeeRate = decimal.RequireFromString("0.0005")

var (
	hundred        = decimal.NewFromInt(100)
	two            = decimal.NewFromInt(2)
	half           = decimal.RequireFromString("0.5")
	trailingFactor = decimal.RequireFromString("0.6")
	breakevenPad   = decimal.RequireFromString("2.5")
	liqSafety      = decimal.RequireFromString("0.8")
	dampFloor      = decimal.RequireFromString("0.2")
)

// Manager owns the per-position exit state machine: dynamic stop geometry
// derived from interval, leverage and symbol tier, a one-shot partial take
// profit, and a peak-anchored trailing stop that clamps to breakeven once
// the partial has fired.
type Manager struct {
	mu sync.RWMutex

	settings      Settings
	peakPrice     decimal.Decimal
	partialClosed bool
}

func NewManager() *Manager {
	return &Manager{}
}

// Settings returns the currently resolved stop geometry.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// OnEntry resets the position state: the trailing peak starts at the entry
// price and the partial take profit is re-armed.
func (m *Manager) OnEntry(entryPrice decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partialClosed = false
	m.peakPrice = entryPrice
}

// UpdateDynamicSettings recomputes the stop geometry from the candle
// interval, the leverage and the symbol's volatility tier.
func (m *Manager) UpdateDynamicSettings(interval string, leverage decimal.Decimal, symbol string) {
	var baseVol decimal.Decimal
	switch interval {
	case "1m":
		baseVol = decimal.RequireFromString("0.3")
	case "5m":
		baseVol = decimal.RequireFromString("0.5")
	case "15m":
		baseVol = decimal.RequireFromString("0.8")
	case "1h":
		baseVol = decimal.RequireFromString("1.5")
	case "4h":
		baseVol = decimal.RequireFromString("3.0")
	default:
		baseVol = decimal.RequireFromString("0.8")
	}

	baseVol = baseVol.Mul(symbolTier(symbol))

	// Higher leverage shrinks the stop quadratically. 10x is the neutral
	// point; the factor is clamped so extreme leverage still leaves room.
	damp := decimal.NewFromFloat(math.Sqrt(10.0) / math.Sqrt(leverage.InexactFloat64()))
	if damp.GreaterThan(decimal.NewFromInt(1)) {
		damp = decimal.NewFromInt(1)
	}
	if damp.LessThan(dampFloor) {
		damp = dampFloor
	}

	sl := baseVol.Mul(damp)
	tp := sl.Mul(two)
	trail := sl.Mul(trailingFactor)

	// Keep the stop inside 80% of the liquidation distance.
	liqLimit := hundred.Div(leverage).Mul(liqSafety)
	if sl.GreaterThan(liqLimit) {
		sl = liqLimit
		trail = sl.Mul(half)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = Settings{StopLossPct: sl, TakeProfitPct: tp, TrailingGapPct: trail}
}

func symbolTier(symbol string) decimal.Decimal {
	switch symbol {
	case "BTCUSDT":
		return decimal.RequireFromString("1.0")
	case "ETHUSDT", "BNBUSDT", "XRPUSDT", "ADAUSDT":
		return decimal.RequireFromString("1.2")
	case "SOLUSDT", "AVAXUSDT":
		return decimal.RequireFromString("1.3")
	default:
		return decimal.RequireFromString("1.6")
	}
}

// AnalyzeExit advances the trailing peak and evaluates, in order: hard stop
// loss, the one-shot partial take profit, and the trailing stop.
func (m *Manager) AnalyzeExit(position strategy.Signal, entryPrice, currentPrice decimal.Decimal) ExitSignal {
	m.mu.Lock()
	defer m.mu.Unlock()

	if position == strategy.Buy && currentPrice.GreaterThan(m.peakPrice) {
		m.peakPrice = currentPrice
	}
	if position == strategy.Sell && currentPrice.LessThan(m.peakPrice) {
		m.peakPrice = currentPrice
	}

	changePct := currentPrice.Sub(entryPrice).Div(entryPrice).Abs().Mul(hundred)

	pnlDir := currentPrice.Sub(entryPrice)
	if position == strategy.Sell {
		pnlDir = entryPrice.Sub(currentPrice)
	}

	if pnlDir.IsNegative() && changePct.GreaterThanOrEqual(m.settings.StopLossPct) {
		return ExitSignal{Action: CloseAll, Reason: "Auto SL (-" + changePct.StringFixed(2) + "%)"}
	}

	if !m.partialClosed && pnlDir.IsPositive() && changePct.GreaterThanOrEqual(m.settings.TakeProfitPct) {
		m.partialClosed = true
		return ExitSignal{
			Action:      ClosePartial,
			AmountRatio: half,
			Reason:      "Auto TP (+" + changePct.StringFixed(2) + "%)",
		}
	}

	gap := m.settings.TrailingGapPct.Div(hundred)
	hitStop := false
	if position == strategy.Buy {
		trailing := m.peakPrice.Mul(decimal.NewFromInt(1).Sub(gap))
		if m.partialClosed {
			// After banking half, never give back more than the fees.
			breakeven := entryPrice.Mul(decimal.NewFromInt(1).Add(FeeRate.Mul(breakevenPad)))
			if trailing.LessThan(breakeven) {
				trailing = breakeven
			}
		}
		hitStop = currentPrice.LessThan(trailing)
	} else {
		trailing := m.peakPrice.Mul(decimal.NewFromInt(1).Add(gap))
		if m.partialClosed {
			breakeven := entryPrice.Mul(decimal.NewFromInt(1).Sub(FeeRate.Mul(breakevenPad)))
			if trailing.GreaterThan(breakeven) {
				trailing = breakeven
			}
		}
		hitStop = currentPrice.GreaterThan(trailing)
	}

	if hitStop {
		return ExitSignal{Action: CloseAll, Reason: "Trailing Stop"}
	}
	return ExitSignal{Action: Hold}
}

// NetRoe returns the leveraged return on equity after both-side fees,
// in percent.
func NetRoe(entry, current decimal.Decimal, position strategy.Signal, leverage decimal.Decimal) decimal.Decimal {
	if entry.IsZero() {
		return decimal.Zero
	}
	rawChange := current.Sub(entry).Div(entry)
	if position == strategy.Sell {
		rawChange = rawChange.Neg()
	}
	grossRoe := rawChange.Mul(leverage)
	totalFee := FeeRate.Add(FeeRate).Mul(leverage)
	return grossRoe.Sub(totalFee).Mul(hundred)
}
