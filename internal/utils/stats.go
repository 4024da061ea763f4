package utils

import (
	"math"
)

// RoundFloat rounds val to precision decimal places, halves away from zero.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// SampleStats returns the mean and sample standard deviation of values,
// both rounded to 4 places. Fewer than two values give a deviation of 0.
func SampleStats(values []float64) (mean, stdDev float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)
	if n == 1 {
		return RoundFloat(mean, 4), 0
	}

	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}
	stdDev = math.Sqrt(squares / float64(n-1))
	return RoundFloat(mean, 4), RoundFloat(stdDev, 4)
}
