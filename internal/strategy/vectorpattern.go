package strategy

import (
	"fmt"
	"math"

	"quant-core/internal/market"
)

// VectorPatternStrategy compares the last 10 percent-changes against a fixed
// V-shape template (sharp drop then recovery) using cosine similarity.
type VectorPatternStrategy struct {
	status string
}

// Template: capitulation into a V-shaped rebound.
var vectorTarget = [10]float64{-0.5, -0.8, -1.0, -0.2, 0.1, 0.5, 0.8, 1.0, 1.2, 0.5}

func NewVectorPatternStrategy() *VectorPatternStrategy {
	return &VectorPatternStrategy{status: "Sim: 0%"}
}

func (s *VectorPatternStrategy) Name() string   { return "Vector Pattern" }
func (s *VectorPatternStrategy) Status() string { return s.status }

func (s *VectorPatternStrategy) Analyze(candles []market.Candle) Signal {
	size := len(vectorTarget)
	if len(candles) < size+1 {
		s.status = statusLoading
		return Hold
	}

	recent := candles[len(candles)-size-1:]
	var current [10]float64
	for i := 0; i < size; i++ {
		prev := recent[i].CloseF()
		if prev == 0 {
			current[i] = 0
			continue
		}
		current[i] = (recent[i+1].CloseF() - prev) / prev * 100
	}

	similarity := cosineSimilarity(current[:], vectorTarget[:])
	s.status = fmt.Sprintf("Match: %.0f%%", similarity*100)

	if similarity > 0.85 {
		return Buy
	}
	return Hold
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
