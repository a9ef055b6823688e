package risk

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"quant-core/internal/strategy"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUpdateDynamicSettingsBaseline(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")

	s := m.Settings()
	if !s.StopLossPct.Equal(d("0.5")) {
		t.Fatalf("StopLossPct = %s, want 0.5", s.StopLossPct)
	}
	if !s.TakeProfitPct.Equal(d("1")) {
		t.Fatalf("TakeProfitPct = %s, want 1", s.TakeProfitPct)
	}
	if !s.TrailingGapPct.Equal(d("0.3")) {
		t.Fatalf("TrailingGapPct = %s, want 0.3", s.TrailingGapPct)
	}
}

func TestUpdateDynamicSettingsLiquidationCap(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("4h", d("100"), "DOGEUSDT")

	s := m.Settings()
	if !s.StopLossPct.Equal(d("0.8")) {
		t.Fatalf("capped StopLossPct = %s, want 0.8", s.StopLossPct)
	}
	if !s.TrailingGapPct.Equal(d("0.4")) {
		t.Fatalf("capped TrailingGapPct = %s, want 0.4", s.TrailingGapPct)
	}
}

func TestAnalyzeExitStopLoss(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")
	m.OnEntry(d("100"))

	sig := m.AnalyzeExit(strategy.Buy, d("100"), d("99.50"))
	if sig.Action != CloseAll {
		t.Fatalf("action = %v, want CloseAll", sig.Action)
	}
	if sig.Reason != "Auto SL (-0.50%)" {
		t.Fatalf("reason = %q", sig.Reason)
	}
}

func TestAnalyzeExitPartialTakeProfitOnce(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")
	m.OnEntry(d("100"))

	sig := m.AnalyzeExit(strategy.Buy, d("100"), d("101"))
	if sig.Action != ClosePartial {
		t.Fatalf("action = %v, want ClosePartial", sig.Action)
	}
	if !sig.AmountRatio.Equal(d("0.5")) {
		t.Fatalf("ratio = %s, want 0.5", sig.AmountRatio)
	}
	if sig.Reason != "Auto TP (+1.00%)" {
		t.Fatalf("reason = %q", sig.Reason)
	}

	// The partial is one-shot: the same price again falls through to the
	// trailing check and holds.
	sig = m.AnalyzeExit(strategy.Buy, d("100"), d("101"))
	if sig.Action != Hold {
		t.Fatalf("second evaluation action = %v, want Hold", sig.Action)
	}
}

func TestAnalyzeExitTrailingStop(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")
	m.OnEntry(d("100"))

	if sig := m.AnalyzeExit(strategy.Buy, d("100"), d("101")); sig.Action != ClosePartial {
		t.Fatalf("setup partial failed: %v", sig.Action)
	}

	// Peak 101, gap 0.3% -> trailing at 100.697.
	if sig := m.AnalyzeExit(strategy.Buy, d("100"), d("100.80")); sig.Action != Hold {
		t.Fatalf("above trailing price, action = %v, want Hold", sig.Action)
	}
	sig := m.AnalyzeExit(strategy.Buy, d("100"), d("100.60"))
	if sig.Action != CloseAll || sig.Reason != "Trailing Stop" {
		t.Fatalf("below trailing price, got %v %q", sig.Action, sig.Reason)
	}
}

func TestAnalyzeExitBreakevenClampAfterPartial(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")
	m.OnEntry(d("100"))

	if sig := m.AnalyzeExit(strategy.Buy, d("100"), d("101")); sig.Action != ClosePartial {
		t.Fatalf("setup partial failed: %v", sig.Action)
	}

	// Widen the gap so the raw trailing price would sit below entry; the
	// breakeven clamp (entry * 1.00125) must take over.
	m.UpdateDynamicSettings("4h", d("1"), "DOGEUSDT")

	if sig := m.AnalyzeExit(strategy.Buy, d("100"), d("100.15")); sig.Action != Hold {
		t.Fatalf("above breakeven, action = %v, want Hold", sig.Action)
	}
	sig := m.AnalyzeExit(strategy.Buy, d("100"), d("100.10"))
	if sig.Action != CloseAll || sig.Reason != "Trailing Stop" {
		t.Fatalf("below breakeven, got %v %q", sig.Action, sig.Reason)
	}
}

func TestAnalyzeExitShortSide(t *testing.T) {
	m := NewManager()
	m.UpdateDynamicSettings("5m", d("10"), "BTCUSDT")
	m.OnEntry(d("100"))

	sig := m.AnalyzeExit(strategy.Sell, d("100"), d("100.50"))
	if sig.Action != CloseAll || !strings.HasPrefix(sig.Reason, "Auto SL") {
		t.Fatalf("short stop loss, got %v %q", sig.Action, sig.Reason)
	}
}

func TestTradePnL(t *testing.T) {
	pnl := TradePnL(d("100"), d("101"), d("1"), strategy.Buy)
	if !pnl.Equal(d("0.8995")) {
		t.Fatalf("long pnl = %s, want 0.8995", pnl)
	}

	pnl = TradePnL(d("100"), d("101"), d("1"), strategy.Sell)
	if !pnl.Equal(d("-1.1005")) {
		t.Fatalf("short pnl = %s, want -1.1005", pnl)
	}
}

func TestPositionSize(t *testing.T) {
	balance := decimal.NewFromInt(10000)
	price := decimal.NewFromInt(100)
	lev := decimal.NewFromInt(10)

	// 2% of 10000 = 200 risked over a 0.5 stop distance.
	qty := PositionSize(balance, price, lev, d("0.5"))
	if !qty.Equal(d("400")) {
		t.Fatalf("qty = %s, want 400", qty)
	}

	// Tight stop wants more size than margin allows; capped at balance*lev.
	qty = PositionSize(balance, price, lev, d("0.1"))
	if !qty.Equal(d("1000")) {
		t.Fatalf("capped qty = %s, want 1000", qty)
	}

	// Tiny balance floors at the exchange minimum notional.
	qty = PositionSize(decimal.NewFromInt(1), price, decimal.NewFromInt(1), d("0.5"))
	if !qty.Mul(price).Equal(d("10")) {
		t.Fatalf("floored notional = %s, want 10", qty.Mul(price))
	}

	if !PositionSize(balance, decimal.Zero, lev, d("1")).IsZero() {
		t.Fatal("zero price must size to zero")
	}
}

func TestNetRoe(t *testing.T) {
	got := NetRoe(d("100"), d("101"), strategy.Buy, d("10"))
	if !got.Equal(d("9")) {
		t.Fatalf("NetRoe = %s, want 9", got)
	}

	got = NetRoe(d("100"), d("101"), strategy.Sell, d("10"))
	if !got.Equal(d("-11")) {
		t.Fatalf("short NetRoe = %s, want -11", got)
	}

	if !NetRoe(decimal.Zero, d("101"), strategy.Buy, d("10")).IsZero() {
		t.Fatal("zero entry must yield zero ROE")
	}
}
