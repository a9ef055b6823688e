package strategy

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quant-core/internal/market"
)

type stubStrategy struct {
	name string
	sig  Signal
}

func (s stubStrategy) Name() string                   { return s.name }
func (s stubStrategy) Analyze([]market.Candle) Signal { return s.sig }
func (s stubStrategy) Status() string                 { return "stub" }

type panicStrategy struct{}

func (panicStrategy) Name() string                   { return "Panic" }
func (panicStrategy) Analyze([]market.Candle) Signal { panic("boom") }
func (panicStrategy) Status() string                 { return "never" }

func testCandle(t time.Time, o, h, l, c, v float64) market.Candle {
	return market.Candle{
		OpenTime:           t,
		Open:               decimal.NewFromFloat(o),
		High:               decimal.NewFromFloat(h),
		Low:                decimal.NewFromFloat(l),
		Close:              decimal.NewFromFloat(c),
		Volume:             decimal.NewFromFloat(v),
		QuoteVolume:        decimal.NewFromFloat(v * c),
		TradeCount:         100,
		TakerBuyBaseVolume: decimal.NewFromFloat(v / 2),
	}
}

func flatCandles(n int, price float64) []market.Candle {
	out := make([]market.Candle, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = testCandle(base.Add(time.Duration(i)*time.Minute), price, price, price, price, 500)
	}
	return out
}

func waveCandles(n int) []market.Candle {
	out := make([]market.Candle, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		mid := 100 + 2*math.Sin(float64(i)/7)
		o := mid - 0.3
		c := mid + 0.3
		out[i] = testCandle(base.Add(time.Duration(i)*time.Minute), o, c+0.2, o-0.2, c, 500+50*math.Sin(float64(i)/3))
	}
	return out
}

func allGenerators() []Strategy {
	return []Strategy{
		NewSuperTrendStrategy(),
		NewIchimokuCloudStrategy(),
		NewMACrossStrategy(),
		NewLinRegStrategy(),
		NewADXFilterStrategy(),
		NewOrderBlockStrategy(),
		NewFairValueGapStrategy(),
		NewVWAPReversionStrategy(),
		NewTakerFlowStrategy(),
		NewVolumeAnomalyStrategy(),
		NewZScoreStrategy(),
		NewHurstStrategy(),
		NewEfficiencyRatioStrategy(),
		NewVectorPatternStrategy(),
		NewDeltaDivergenceStrategy(),
		NewInsideBarStrategy(),
		NewFractalBreakoutStrategy(),
		NewRSIDivergenceStrategy(),
		NewVolatilitySqueezeStrategy(),
		NewCandlePatternStrategy(),
	}
}

func TestGeneratorsHoldOnShortHistory(t *testing.T) {
	candles := flatCandles(2, 100)
	for _, s := range allGenerators() {
		if got := s.Analyze(candles); got != Hold {
			t.Errorf("%s: short history signal = %v, want Hold", s.Name(), got)
		}
		if s.Status() != "Loading..." {
			t.Errorf("%s: short history status = %q", s.Name(), s.Status())
		}
	}
}

func TestGeneratorsDeterministic(t *testing.T) {
	candles := waveCandles(120)
	first := make([]Signal, 0, 20)
	for _, s := range allGenerators() {
		first = append(first, s.Analyze(candles))
	}
	for i, s := range allGenerators() {
		if got := s.Analyze(candles); got != first[i] {
			t.Errorf("%s: signal changed across identical runs: %v then %v", s.Name(), first[i], got)
		}
	}
}

func TestZScoreFlatWindow(t *testing.T) {
	s := NewZScoreStrategy()
	if got := s.Analyze(flatCandles(25, 100)); got != Hold {
		t.Fatalf("flat window signal = %v, want Hold", got)
	}
	if s.Status() != "Score: 0.00 (Normal)" {
		t.Fatalf("flat window status = %q", s.Status())
	}
}

func TestSqueezeFlatWindow(t *testing.T) {
	s := NewVolatilitySqueezeStrategy()
	if got := s.Analyze(flatCandles(25, 100)); got != Hold {
		t.Fatalf("flat window signal = %v, want Hold", got)
	}
	if !strings.Contains(s.Status(), "(Squeeze)") {
		t.Fatalf("flat window status = %q, want squeeze marker", s.Status())
	}
}

func TestEnsemblePanicIsolation(t *testing.T) {
	e := &Ensemble{log: zap.NewNop()}
	sig, status := e.analyzeOne(panicStrategy{}, nil)
	if sig != Hold {
		t.Fatalf("panicking generator signal = %v, want Hold", sig)
	}
	if !strings.HasPrefix(status, "error:") {
		t.Fatalf("panicking generator status = %q, want error status", status)
	}
}

func TestEnsembleScoring(t *testing.T) {
	build := func(filterSig Signal) *Ensemble {
		return &Ensemble{
			log: zap.NewNop(),
			members: []member{
				{strategy: stubStrategy{"a", Buy}, weight: 3},
				{strategy: stubStrategy{"b", Sell}, weight: 2},
				{strategy: stubStrategy{"c", Buy}, weight: 1},
				{strategy: stubStrategy{"adx", filterSig}, filter: true},
			},
		}
	}

	ev := build(Buy).Evaluate(nil)
	if ev.Score != 2 {
		t.Fatalf("score = %d, want 2", ev.Score)
	}
	if !ev.VetoPass {
		t.Fatal("aligned filter must not veto")
	}

	// Trendless regime halves the score with truncation toward zero.
	ev = build(Hold).Evaluate(nil)
	if ev.Score != 1 {
		t.Fatalf("halved score = %d, want 1", ev.Score)
	}

	// Opposing regime call vetoes entries without zeroing the score.
	ev = build(Sell).Evaluate(nil)
	if ev.Score != 2 || ev.VetoPass {
		t.Fatalf("vetoed evaluation = %+v, want score 2 with veto", ev)
	}
}

func TestEnsembleHalvingTruncation(t *testing.T) {
	e := &Ensemble{
		log: zap.NewNop(),
		members: []member{
			{strategy: stubStrategy{"a", Buy}, weight: 3},
			{strategy: stubStrategy{"b", Buy}, weight: 2},
			{strategy: stubStrategy{"c", Buy}, weight: 2},
			{strategy: stubStrategy{"adx", Hold}, filter: true},
		},
	}
	ev := e.Evaluate(nil)
	if ev.Score != 3 {
		t.Fatalf("score = %d, want 3 (7 halved, truncated)", ev.Score)
	}
	if ev.LongEntry() {
		t.Fatal("halved score below threshold must not open long")
	}
}

func TestEnsembleDisabledGenerator(t *testing.T) {
	e := NewEnsemble(zap.NewNop(), map[string]bool{"Z-Score": true})
	ev := e.Evaluate(waveCandles(120))
	found := false
	for _, r := range ev.Results {
		if r.Name == "Z-Score" {
			found = true
			if r.Status != "Disabled" || r.Signal != Hold {
				t.Fatalf("disabled generator result = %+v", r)
			}
		}
	}
	if !found {
		t.Fatal("disabled generator missing from results")
	}
}

func TestEnsembleRosterOrderStable(t *testing.T) {
	e := NewEnsemble(zap.NewNop(), nil)
	candles := waveCandles(120)
	a := e.Evaluate(candles)
	b := e.Evaluate(candles)
	if len(a.Results) != 21 {
		t.Fatalf("roster size = %d, want 21", len(a.Results))
	}
	if a.Score != b.Score || a.Filter != b.Filter {
		t.Fatalf("evaluation not deterministic: %d/%v then %d/%v", a.Score, a.Filter, b.Score, b.Filter)
	}
	for i := range a.Results {
		if a.Results[i].Name != b.Results[i].Name {
			t.Fatalf("roster order changed at %d: %s vs %s", i, a.Results[i].Name, b.Results[i].Name)
		}
	}
}
