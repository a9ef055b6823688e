// Package backtest replays the live decision stack over historical candles.
package backtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quant-core/internal/market"
	"quant-core/internal/risk"
	"quant-core/internal/strategy"
	"quant-core/pkg/db"
)

const (
	warmupCandles = 100
	minHistory    = 200
	historyDays   = 365
)

// Params configures one simulation run.
type Params struct {
	Symbol       string          `json:"symbol"`
	Interval     string          `json:"interval"`
	StartBalance decimal.Decimal `json:"start_balance"`
	Leverage     decimal.Decimal `json:"leverage"`
}

func (p *Params) applyDefaults() {
	if p.StartBalance.IsZero() {
		p.StartBalance = decimal.NewFromInt(10000)
	}
	if p.Leverage.IsZero() {
		p.Leverage = decimal.NewFromInt(10)
	}
	if p.Interval == "" {
		p.Interval = "5m"
	}
}

// Simulator replays the ensemble plus risk manager over a year of candles.
// Persistence is optional: with a nil queries handle results are only
// returned, never stored.
type Simulator struct {
	source  market.Source
	queries *db.Queries
	log     *zap.Logger
}

func NewSimulator(source market.Source, queries *db.Queries, log *zap.Logger) *Simulator {
	return &Simulator{source: source, queries: queries, log: log}
}

// Run fetches history and steps candle by candle. The context is honored
// between candles, so a canceled run returns promptly with ctx.Err().
func (s *Simulator) Run(ctx context.Context, p Params) (Result, error) {
	p.applyDefaults()

	end := time.Now().UTC()
	history, err := s.source.FetchRange(ctx, p.Symbol, p.Interval, end.AddDate(0, 0, -historyDays), end)
	if err != nil {
		return Result{}, fmt.Errorf("fetch history: %w", err)
	}

	result := Result{
		RunID:        uuid.NewString(),
		Symbol:       p.Symbol,
		Interval:     p.Interval,
		Leverage:     p.Leverage,
		StartBalance: p.StartBalance,
		FinalBalance: p.StartBalance,
	}

	if len(history) < minHistory {
		result.Report = fmt.Sprintf("Insufficient data: need at least %d candles, got %d", minHistory, len(history))
		result.FinishedAt = time.Now().UTC()
		return result, nil
	}

	// Fresh decision stack per run; generator state never leaks between runs.
	ensemble := strategy.NewEnsemble(s.log, nil)
	riskMgr := risk.NewManager()
	riskMgr.UpdateDynamicSettings(p.Interval, p.Leverage, p.Symbol)

	balance := p.StartBalance
	peakBalance := p.StartBalance
	maxDd := decimal.Zero

	position := strategy.Hold
	entryPrice := decimal.Zero
	posAmount := decimal.Zero

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== BACKTEST REPORT ===\n")
	fmt.Fprintf(&sb, "Target: %s | Interval: %s | Leverage: %sx\n", p.Symbol, p.Interval, p.Leverage)
	fmt.Fprintf(&sb, "Data Range: %s ~ %s (%d Candles)\n",
		history[0].OpenTime.Format(time.RFC3339),
		history[len(history)-1].OpenTime.Format(time.RFC3339),
		len(history))
	sb.WriteString("------------------------------------------------------------------\n")

	for i := warmupCandles; i < len(history); i++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		window := history[i-warmupCandles : i]
		current := history[i]

		ev := ensemble.Evaluate(window)

		// Within one candle prices are replayed worst-case for the open
		// position: longs see the low before the high, shorts the high
		// before the low. Flat, only the close matters.
		var ticks []decimal.Decimal
		switch position {
		case strategy.Buy:
			ticks = []decimal.Decimal{current.Open, current.Low, current.High, current.Close}
		case strategy.Sell:
			ticks = []decimal.Decimal{current.Open, current.High, current.Low, current.Close}
		default:
			ticks = []decimal.Decimal{current.Close}
		}

		for _, price := range ticks {
			if position == strategy.Hold {
				switch {
				case ev.LongEntry():
					position = strategy.Buy
				case ev.ShortEntry():
					position = strategy.Sell
				default:
					continue
				}
				entryPrice = price
				posAmount = risk.PositionSize(balance, price, p.Leverage, riskMgr.Settings().StopLossPct)
				riskMgr.OnEntry(entryPrice)
				continue
			}

			exit := riskMgr.AnalyzeExit(position, entryPrice, price)

			// The ensemble flipping hard against the position overrides
			// whatever the risk manager said.
			reversed := (position == strategy.Buy && ev.Score <= -strategy.EntryThreshold) ||
				(position == strategy.Sell && ev.Score >= strategy.EntryThreshold)
			if reversed {
				exit = risk.ExitSignal{Action: risk.CloseAll, Reason: "Signal Reversal"}
			}

			// Partial take profits collapse to full closes here; only the
			// live loop models scaling out.
			if exit.Action == risk.CloseAll || exit.Action == risk.ClosePartial {
				pnl := risk.TradePnL(entryPrice, price, posAmount, position)
				balance = balance.Add(pnl)

				verdict := "LOSS"
				if pnl.IsPositive() {
					verdict = "WIN"
					result.WinCount++
				} else {
					result.LossCount++
				}
				fmt.Fprintf(&sb, "[%s] EXIT (%s) | %s | PnL: $%s | Bal: $%s\n",
					current.OpenTime.Format("01-02 15:04"), exit.Reason, verdict,
					pnl.StringFixed(2), balance.StringFixed(0))

				position = strategy.Hold
				break
			}
		}

		if balance.GreaterThan(peakBalance) {
			peakBalance = balance
		}
		dd := peakBalance.Sub(balance).Div(peakBalance).Mul(decimal.NewFromInt(100))
		if dd.GreaterThan(maxDd) {
			maxDd = dd
		}

		if balance.LessThanOrEqual(decimal.Zero) {
			sb.WriteString("!!! BANKRUPTCY !!!\n")
			result.Bankrupt = true
			break
		}
	}

	result.FinalBalance = balance
	result.TotalPnL = balance.Sub(p.StartBalance)
	result.MaxDrawdown = maxDd
	result.Report = sb.String()
	result.FinishedAt = time.Now().UTC()

	if s.queries != nil {
		if err := s.queries.InsertBacktestRun(ctx, result.Run()); err != nil {
			s.log.Warn("persist backtest run failed", zap.String("run_id", result.RunID), zap.Error(err))
		}
	}

	s.log.Info("backtest finished",
		zap.String("run_id", result.RunID),
		zap.String("symbol", p.Symbol),
		zap.String("final_balance", balance.StringFixed(2)),
		zap.Int("wins", result.WinCount),
		zap.Int("losses", result.LossCount))

	return result, nil
}
