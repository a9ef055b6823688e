package strategy

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"quant-core/internal/market"
)

// EntryThreshold is the absolute ensemble score required to open a position.
const EntryThreshold = 7

// member pairs a generator with its vote weight. Exactly one member is the
// regime filter: it never votes, it gates and dampens the summed score.
type member struct {
	strategy Strategy
	weight   int
	filter   bool
	disabled bool
}

// Evaluation is the outcome of one full ensemble pass over a candle window.
type Evaluation struct {
	Results  []Result
	Score    int
	Filter   Signal
	VetoPass bool
}

// LongEntry reports whether the pass produced a valid long entry.
func (e Evaluation) LongEntry() bool { return e.Score >= EntryThreshold && e.VetoPass }

// ShortEntry reports whether the pass produced a valid short entry.
func (e Evaluation) ShortEntry() bool { return e.Score <= -EntryThreshold && e.VetoPass }

// Ensemble runs the generator roster in registration order and folds the
// individual votes into a single conviction score.
type Ensemble struct {
	members []member
	log     *zap.Logger
}

// NewEnsemble builds the default roster of 20 generators plus the ADX regime
// filter. Names listed in disabled stay in the roster for display but are
// never evaluated and never vote.
func NewEnsemble(log *zap.Logger, disabled map[string]bool) *Ensemble {
	e := &Ensemble{log: log}
	add := func(s Strategy, weight int, filter bool) {
		e.members = append(e.members, member{
			strategy: s,
			weight:   weight,
			filter:   filter,
			disabled: disabled[s.Name()],
		})
	}

	add(NewSuperTrendStrategy(), 2, false)
	add(NewIchimokuCloudStrategy(), 2, false)
	add(NewMACrossStrategy(), 1, false)
	add(NewLinRegStrategy(), 1, false)
	add(NewADXFilterStrategy(), 0, true)
	add(NewOrderBlockStrategy(), 3, false)
	add(NewFairValueGapStrategy(), 2, false)
	add(NewVWAPReversionStrategy(), 2, false)
	add(NewTakerFlowStrategy(), 3, false)
	add(NewVolumeAnomalyStrategy(), 2, false)
	add(NewZScoreStrategy(), 1, false)
	add(NewHurstStrategy(), 0, false)
	add(NewEfficiencyRatioStrategy(), 1, false)
	add(NewVectorPatternStrategy(), 3, false)
	add(NewDeltaDivergenceStrategy(), 2, false)
	add(NewInsideBarStrategy(), 2, false)
	add(NewFractalBreakoutStrategy(), 2, false)
	add(NewRSIDivergenceStrategy(), 2, false)
	add(NewVolatilitySqueezeStrategy(), 3, false)
	add(NewCandlePatternStrategy(), 2, false)

	return e
}

// Evaluate runs every enabled generator over the candle window and scores
// the votes. A panicking generator is treated as a Hold vote with an error
// status; the remaining generators still run.
func (e *Ensemble) Evaluate(candles []market.Candle) Evaluation {
	ev := Evaluation{
		Results:  make([]Result, 0, len(e.members)),
		VetoPass: true,
	}

	for _, m := range e.members {
		if m.disabled {
			ev.Results = append(ev.Results, Result{
				Name:   m.strategy.Name(),
				Signal: Hold,
				Status: "Disabled",
			})
			continue
		}

		sig, status := e.analyzeOne(m.strategy, candles)
		ev.Results = append(ev.Results, Result{
			Name:   m.strategy.Name(),
			Signal: sig,
			Status: status,
		})

		if m.filter {
			ev.Filter = sig
			continue
		}
		ev.Score += m.weight * sig.Sign()
	}

	// A trendless regime halves conviction; the truncation toward zero is
	// load-bearing for the entry thresholds.
	if ev.Filter == Hold {
		ev.Score = int(float64(ev.Score) * 0.5)
	}

	// Veto: never trade against a directional regime call.
	if ev.Score > 0 && ev.Filter == Sell {
		ev.VetoPass = false
	}
	if ev.Score < 0 && ev.Filter == Buy {
		ev.VetoPass = false
	}

	return ev
}

func (e *Ensemble) analyzeOne(s Strategy, candles []market.Candle) (sig Signal, status string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("strategy panic",
				zap.String("strategy", s.Name()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			sig = Hold
			status = fmt.Sprintf("error: %v", r)
		}
	}()
	sig = s.Analyze(candles)
	status = s.Status()
	return sig, status
}
