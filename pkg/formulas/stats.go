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

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Clamp limits value to the [min, max] range
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// Round2 rounds to two decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
