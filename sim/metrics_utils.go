// sim/metrics_utils.go
package sim

import (
	"math"
	"slices"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// Distribution summarizes a per-process quantity across a run.
type Distribution struct {
	Min  float64
	Mean float64
	P50  float64
	P90  float64
	Max  float64
}

// NewDistribution computes the distribution of data. The input is not modified.
// Empty input yields the zero Distribution.
func NewDistribution[T IntOrFloat64](data []T) Distribution {
	if len(data) == 0 {
		return Distribution{}
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	return Distribution{
		Min:  float64(sorted[0]),
		Mean: CalculateMean(sorted),
		P50:  CalculatePercentile(sorted, 50),
		P90:  CalculatePercentile(sorted, 90),
		Max:  float64(sorted[len(sorted)-1]),
	}
}

// CalculatePercentile returns the p-th percentile of sorted data using linear
// interpolation between closest ranks. Returns 0 for empty input.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, or 0 for empty input.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}
