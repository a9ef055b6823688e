// Package pattern implements a k-nearest-neighbor pattern matcher: recent
// market state is summarized as a feature vector and compared against a
// labeled historical corpus to vote on the likely forward return.
package pattern

import (
	"quant-core/internal/market"
	"quant-core/internal/strategy"
)

// Matcher defaults.
const (
	DefaultK         = 20
	DefaultThreshold = 0.001
)

// Matcher votes Buy/Sell/Hold by averaging the forward returns of the k
// historical feature points closest to the current one.
type Matcher struct {
	history   []FeaturePoint
	k         int
	threshold float64
}

// NewMatcher builds the historical feature corpus once; Decide reuses it for
// every query. k and threshold fall back to the defaults when non-positive.
func NewMatcher(historical []market.Candle, k int, threshold float64) *Matcher {
	if k <= 0 {
		k = DefaultK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		history:   BuildFeatures(historical),
		k:         k,
		threshold: threshold,
	}
}

// HistorySize reports how many labeled points the corpus holds.
func (m *Matcher) HistorySize() int { return len(m.history) }

// Decide featurizes the recent window and votes on its last point.
func (m *Matcher) Decide(recent []market.Candle) strategy.Signal {
	if len(recent) == 0 {
		return strategy.Hold
	}
	points := BuildFeatures(recent)
	if len(points) == 0 {
		return strategy.Hold
	}
	return m.classify(points[len(points)-1])
}

func (m *Matcher) classify(current FeaturePoint) strategy.Signal {
	nearest := NearestNeighbors(current, m.history, m.k)

	sum := 0.0
	count := 0
	for _, n := range nearest {
		sum += n.Point.FutureReturn
		count++
	}
	if count == 0 {
		return strategy.Hold
	}

	avg := sum / float64(count)
	if avg > m.threshold {
		return strategy.Buy
	}
	if avg < -m.threshold {
		return strategy.Sell
	}
	return strategy.Hold
}
