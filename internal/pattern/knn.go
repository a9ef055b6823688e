package pattern

import (
	"math"
	"sort"
)

// Neighbor pairs a historical feature point with its distance to the query.
type Neighbor struct {
	Point    FeaturePoint
	Distance float64
}

// EuclideanDistance assumes equal-length vectors.
func EuclideanDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// NearestNeighbors returns the k closest history points, ascending by
// distance. The sort is stable so ties resolve in history order.
func NearestNeighbors(current FeaturePoint, history []FeaturePoint, k int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(history))
	for _, p := range history {
		neighbors = append(neighbors, Neighbor{Point: p, Distance: EuclideanDistance(current.Vector, p.Vector)})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}
