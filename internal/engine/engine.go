// Package engine runs the live decision loop: fetch candles, evaluate the
// ensemble, and manage the virtual position through the risk manager.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quant-core/internal/events"
	"quant-core/internal/market"
	"quant-core/internal/monitor"
	"quant-core/internal/risk"
	"quant-core/internal/strategy"
	"quant-core/pkg/db"
)

const (
	cycleInterval   = time.Second
	fetchLimit      = 1000
	minCandles      = 100
	reentryCooldown = 60 * time.Second
)

// Config wires the engine's collaborators and trading target.
type Config struct {
	Symbol         string
	Interval       string
	Leverage       decimal.Decimal
	InitialBalance decimal.Decimal

	Source   market.Source
	Ensemble *strategy.Ensemble
	Risk     *risk.Manager
	Bus      *events.Bus
	Queries  *db.Queries
	Metrics  *monitor.Metrics
	Log      *zap.Logger
}

// Engine is the single-goroutine live loop. All trading state is owned by
// the loop; Snapshot reads go through a lock so the API can observe it.
type Engine struct {
	cfg Config

	mu             sync.RWMutex
	balance        decimal.Decimal
	position       strategy.Signal
	entryPrice     decimal.Decimal
	positionAmount decimal.Decimal
	entryScore     int
	openedAt       time.Time
	lastExit       time.Time
	lastExitReason string
	lastSnapshot   Snapshot
}

func New(cfg Config) *Engine {
	e := &Engine{
		cfg:      cfg,
		balance:  cfg.InitialBalance,
		position: strategy.Hold,
	}
	cfg.Risk.UpdateDynamicSettings(cfg.Interval, cfg.Leverage, cfg.Symbol)
	return e
}

// Snapshot returns the state published after the most recent cycle.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshot
}

// Run drives the decision loop until the context is canceled.
func (e *Engine) Run(ctx context.Context) error {
	e.cfg.Log.Info("engine started",
		zap.String("symbol", e.cfg.Symbol),
		zap.String("interval", e.cfg.Interval),
		zap.String("leverage", e.cfg.Leverage.String()))

	ticker := time.NewTicker(cycleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.cfg.Log.Info("engine stopped")
			return ctx.Err()
		case <-ticker.C:
			e.runCycle(ctx)
		}
	}
}

// runCycle performs one fetch-evaluate-act pass. Any fetch problem skips
// the cycle; the loop itself never dies on market data errors.
func (e *Engine) runCycle(ctx context.Context) {
	started := time.Now()

	candles, err := e.cfg.Source.FetchRecent(ctx, e.cfg.Symbol, e.cfg.Interval, fetchLimit)
	if err != nil {
		e.cfg.Log.Warn("fetch failed, skipping cycle", zap.Error(err))
		e.cfg.Metrics.RecordSkippedCycle()
		return
	}
	if len(candles) < minCandles {
		e.cfg.Log.Warn("not enough candles, skipping cycle", zap.Int("count", len(candles)))
		e.cfg.Metrics.RecordSkippedCycle()
		return
	}

	price := candles[len(candles)-1].Close
	closed := candles[:len(candles)-1]

	ev := e.cfg.Ensemble.Evaluate(closed)

	if e.position == strategy.Hold {
		if time.Since(e.lastExit) >= reentryCooldown {
			switch {
			case ev.LongEntry():
				e.enter(strategy.Buy, price, ev.Score)
			case ev.ShortEntry():
				e.enter(strategy.Sell, price, ev.Score)
			}
		}
	} else {
		e.manageExit(ctx, ev, price)
	}

	e.publishSnapshot(ev, price)
	e.cfg.Metrics.RecordCycle(time.Since(started))
}

func (e *Engine) enter(side strategy.Signal, price decimal.Decimal, score int) {
	e.mu.Lock()
	e.position = side
	e.entryPrice = price
	e.positionAmount = risk.PositionSize(e.balance, price, e.cfg.Leverage, e.cfg.Risk.Settings().StopLossPct)
	e.entryScore = score
	e.openedAt = time.Now().UTC()
	e.mu.Unlock()

	e.cfg.Risk.OnEntry(price)
	e.cfg.Risk.UpdateDynamicSettings(e.cfg.Interval, e.cfg.Leverage, e.cfg.Symbol)
	e.cfg.Metrics.RecordEntry()

	e.cfg.Log.Info("position opened",
		zap.String("side", side.String()),
		zap.String("price", price.String()),
		zap.String("amount", e.positionAmount.String()),
		zap.Int("score", score))
}

func (e *Engine) manageExit(ctx context.Context, ev strategy.Evaluation, price decimal.Decimal) {
	exit := e.cfg.Risk.AnalyzeExit(e.position, e.entryPrice, price)

	reversed := (e.position == strategy.Buy && ev.Score <= -strategy.EntryThreshold) ||
		(e.position == strategy.Sell && ev.Score >= strategy.EntryThreshold)
	if reversed {
		exit = risk.ExitSignal{Action: risk.CloseAll, Reason: "Signal Reversal"}
	}

	switch exit.Action {
	case risk.CloseAll:
		e.closePosition(ctx, price, e.positionAmount, exit.Reason, true)
	case risk.ClosePartial:
		closeAmount := e.positionAmount.Mul(exit.AmountRatio)
		e.closePosition(ctx, price, closeAmount, "PARTIAL: "+exit.Reason, false)
	}
}

// closePosition realizes pnl on amount units. A full close flattens the
// position and starts the re-entry cooldown; a partial close keeps the
// remainder running.
func (e *Engine) closePosition(ctx context.Context, price, amount decimal.Decimal, reason string, full bool) {
	pnl := risk.TradePnL(e.entryPrice, price, amount, e.position)
	netRoe := risk.NetRoe(e.entryPrice, price, e.position, e.cfg.Leverage)

	trade := db.Trade{
		ID:         uuid.NewString(),
		Symbol:     e.cfg.Symbol,
		Interval:   e.cfg.Interval,
		Side:       e.position.String(),
		EntryPrice: e.entryPrice,
		ExitPrice:  price,
		Amount:     amount,
		Pnl:        pnl,
		Roe:        netRoe,
		Score:      e.entryScore,
		Reason:     reason,
		OpenedAt:   e.openedAt,
		ClosedAt:   time.Now().UTC(),
	}

	e.mu.Lock()
	e.balance = e.balance.Add(pnl)
	if full {
		e.position = strategy.Hold
		e.positionAmount = decimal.Zero
		e.lastExit = time.Now()
		e.lastExitReason = reason
	} else {
		e.positionAmount = e.positionAmount.Sub(amount)
	}
	e.mu.Unlock()

	if e.cfg.Queries != nil {
		if err := e.cfg.Queries.InsertTrade(ctx, trade); err != nil {
			e.cfg.Log.Warn("persist trade failed", zap.String("trade_id", trade.ID), zap.Error(err))
		}
	}

	e.cfg.Bus.Publish(events.EventTradeClosed, trade)
	if strings.HasPrefix(reason, "Auto SL") || reason == "Trailing Stop" {
		e.cfg.Bus.Publish(events.EventRiskAlert, reason+" on "+e.cfg.Symbol)
	}
	if full {
		e.cfg.Metrics.RecordExit()
	}

	e.cfg.Log.Info("position closed",
		zap.String("reason", reason),
		zap.String("pnl", pnl.StringFixed(2)),
		zap.String("balance", e.balance.StringFixed(2)),
		zap.Bool("full", full))
}

func (e *Engine) publishSnapshot(ev strategy.Evaluation, price decimal.Decimal) {
	e.mu.Lock()

	equity := e.balance
	netRoe := decimal.Zero
	if e.position != strategy.Hold {
		equity = equity.Add(risk.TradePnL(e.entryPrice, price, e.positionAmount, e.position))
		netRoe = risk.NetRoe(e.entryPrice, price, e.position, e.cfg.Leverage)
	}

	cooldown := 0.0
	if e.position == strategy.Hold {
		if left := reentryCooldown - time.Since(e.lastExit); left > 0 {
			cooldown = left.Seconds()
		}
	}

	snap := Snapshot{
		Time:            time.Now().UTC(),
		Symbol:          e.cfg.Symbol,
		Interval:        e.cfg.Interval,
		Price:           price,
		Balance:         e.balance,
		Equity:          equity,
		Score:           ev.Score,
		Filter:          ev.Filter.String(),
		VetoPass:        ev.VetoPass,
		Results:         ev.Results,
		Position:        e.position.String(),
		EntryPrice:      e.entryPrice,
		PositionAmount:  e.positionAmount,
		NetRoe:          netRoe,
		CooldownSeconds: cooldown,
		LastExitReason:  e.lastExitReason,
	}
	e.lastSnapshot = snap
	e.mu.Unlock()

	e.cfg.Bus.Publish(events.EventSnapshot, snap)
}
