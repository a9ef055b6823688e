package pattern

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quant-core/internal/market"
	"quant-core/internal/strategy"
)

func priceCandles(closes []float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		out[i] = market.Candle{
			OpenTime: base.Add(time.Duration(i) * time.Minute),
			Open:     d, High: d, Low: d, Close: d,
			Volume: decimal.NewFromInt(500),
		}
	}
	return out
}

func TestEuclideanDistance(t *testing.T) {
	if got := EuclideanDistance([]float64{0, 0}, []float64{3, 4}); got != 5 {
		t.Fatalf("distance = %v, want 5", got)
	}
	if got := EuclideanDistance([]float64{1, 2, 3}, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("identity distance = %v, want 0", got)
	}
}

func TestNearestNeighborsIdentity(t *testing.T) {
	history := []FeaturePoint{
		{Vector: []float64{5, 5}},
		{Vector: []float64{1, 1}},
		{Vector: []float64{9, 9}},
	}
	got := NearestNeighbors(FeaturePoint{Vector: []float64{1, 1}}, history, 1)
	if len(got) != 1 {
		t.Fatalf("neighbor count = %d, want 1", len(got))
	}
	if got[0].Distance != 0 {
		t.Fatalf("nearest distance = %v, want 0", got[0].Distance)
	}
}

func TestNearestNeighborsStableOnTies(t *testing.T) {
	history := []FeaturePoint{
		{Vector: []float64{1, 0}, FutureReturn: 1},
		{Vector: []float64{-1, 0}, FutureReturn: 2},
		{Vector: []float64{0, 1}, FutureReturn: 3},
	}
	got := NearestNeighbors(FeaturePoint{Vector: []float64{0, 0}}, history, 3)
	for i, want := range []float64{1, 2, 3} {
		if got[i].Point.FutureReturn != want {
			t.Fatalf("tie order broken at %d: got label %v, want %v", i, got[i].Point.FutureReturn, want)
		}
	}
}

func TestBuildFeaturesWindowAndLabels(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.1
	}
	points := BuildFeatures(priceCandles(closes))

	// Emission starts after the 20-candle windows fill and stops where the
	// 4-candle label horizon no longer fits.
	if len(points) != 6 {
		t.Fatalf("point count = %d, want 6", len(points))
	}
	for _, p := range points {
		if len(p.Vector) != 6 {
			t.Fatalf("vector width = %d, want 6", len(p.Vector))
		}
	}

	// Rising closes label positive forward returns.
	if points[0].FutureReturn <= 0 {
		t.Fatalf("forward label = %v, want > 0", points[0].FutureReturn)
	}
	wantLabel := 0.0
	for j := 21; j <= 24; j++ {
		wantLabel += math.Log(closes[j] / closes[j-1])
	}
	if diff := math.Abs(points[0].FutureReturn - wantLabel); diff > 1e-12 {
		t.Fatalf("forward label = %v, want %v", points[0].FutureReturn, wantLabel)
	}
}

func TestBuildFeaturesFlatSeriesNeutral(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	points := BuildFeatures(priceCandles(closes))
	if len(points) == 0 {
		t.Fatal("no points emitted")
	}
	p := points[0]
	// sumRet, volDev, priceZ, volatility, maGap all neutral on a flat tape.
	for i := 0; i < 5; i++ {
		if p.Vector[i] != 0 {
			t.Fatalf("vector[%d] = %v, want 0", i, p.Vector[i])
		}
	}
	if p.FutureReturn != 0 {
		t.Fatalf("flat forward label = %v, want 0", p.FutureReturn)
	}
}

func TestClassifyVotesByAverageForwardReturn(t *testing.T) {
	mk := func(labels ...float64) *Matcher {
		history := make([]FeaturePoint, len(labels))
		for i, l := range labels {
			history[i] = FeaturePoint{Vector: []float64{0, 0, 0, 0, 0, 50}, FutureReturn: l}
		}
		return &Matcher{history: history, k: DefaultK, threshold: DefaultThreshold}
	}
	query := FeaturePoint{Vector: []float64{0, 0, 0, 0, 0, 50}}

	if got := mk(0.01, 0.02).classify(query); got != strategy.Buy {
		t.Fatalf("positive labels vote = %v, want Buy", got)
	}
	if got := mk(-0.01, -0.02).classify(query); got != strategy.Sell {
		t.Fatalf("negative labels vote = %v, want Sell", got)
	}
	if got := mk(0.0005, -0.0005).classify(query); got != strategy.Hold {
		t.Fatalf("balanced labels vote = %v, want Hold", got)
	}
	if got := (&Matcher{k: DefaultK, threshold: DefaultThreshold}).classify(query); got != strategy.Hold {
		t.Fatalf("empty corpus vote = %v, want Hold", got)
	}
}

func TestDecideNeedsEnoughHistory(t *testing.T) {
	m := NewMatcher(priceCandles([]float64{100, 101, 102}), 0, 0)
	if got := m.Decide(priceCandles([]float64{100, 101})); got != strategy.Hold {
		t.Fatalf("short window vote = %v, want Hold", got)
	}
	if m.HistorySize() != 0 {
		t.Fatalf("tiny corpus size = %d, want 0", m.HistorySize())
	}
}
