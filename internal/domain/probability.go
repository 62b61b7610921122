package domain

import "fmt"

// Comparator selects the comparison direction for a probability count.
// It is a closed enumeration so new directions cannot appear without the
// switch in Probability being extended.
type Comparator int

const (
	CompareGTE Comparator = iota
	CompareLTE
	CompareGT
	CompareLT
)

func (c Comparator) String() string {
	switch c {
	case CompareGTE:
		return ">="
	case CompareLTE:
		return "<="
	case CompareGT:
		return ">"
	case CompareLT:
		return "<"
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// Probability returns the percentage of values satisfying the comparison
// against the threshold, rounded to one decimal place. Absent values must
// already be excluded by the caller. An empty sample yields 0.0 rather than
// an error: an empty cohort is caught upstream by Analyze, so an empty
// sample here only means one variable was missing across an otherwise
// populated cohort.
func Probability(values []float64, threshold float64, cmp Comparator) float64 {
	if len(values) == 0 {
		return 0.0
	}

	count := 0
	for _, v := range values {
		var match bool
		switch cmp {
		case CompareGTE:
			match = v >= threshold
		case CompareLTE:
			match = v <= threshold
		case CompareGT:
			match = v > threshold
		case CompareLT:
			match = v < threshold
		}
		if match {
			count++
		}
	}

	return round1(float64(count) / float64(len(values)) * 100)
}
