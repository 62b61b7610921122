package domain

import "math"

// StatSummary holds descriptive statistics over one variable's present
// values within a cohort. SampleSize distinguishes "all zeros because the
// sample was empty" from a genuine zero-valued summary; the zero-value
// default for empty samples mirrors the upstream contract and is relied on
// by callers.
type StatSummary struct {
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	SampleSize int     `json:"sample_size"`
}

// Summarize computes mean, sample standard deviation, min, and max over the
// given values. Absent values must already be excluded by the caller; an
// empty slice yields the all-zero summary. Std uses the n−1 sample formula
// and is defined as 0 for a single value.
func Summarize(values []float64) StatSummary {
	if len(values) == 0 {
		return StatSummary{}
	}

	sum := 0.0
	minV := values[0]
	maxV := values[0]
	for _, v := range values {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / float64(len(values))

	std := 0.0
	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(len(values)-1))
	}

	return StatSummary{
		Mean:       mean,
		Std:        std,
		Min:        minV,
		Max:        maxV,
		SampleSize: len(values),
	}
}

// round1 rounds to one decimal place, the precision used for probabilities,
// thresholds, and most reported averages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places, used for precipitation averages where
// daily totals are often well under a millimeter.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
