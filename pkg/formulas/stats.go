package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// MeanAbs calculates the mean of absolute values. Used to aggregate
// signed basis-point deltas into one impact magnitude.
func MeanAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	abs := make([]float64, len(data))
	for i, v := range data {
		abs[i] = math.Abs(v)
	}
	return stat.Mean(abs, nil)
}

// SumAbs adds the absolute values of a series.
func SumAbs(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += math.Abs(v)
	}
	return total
}
