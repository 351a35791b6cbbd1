package analytics

import "math"

// PercentChange returns the change from previous to current in percent.
//
// Negative values are assisted weights (help subtracted), so crossing zero is not a
// plain signed ratio: going from assisted to weighted reads as a gain bigger than
// 100%, and the other way around as a loss bigger than 100%.
func PercentChange(previous, current float64) float64 {
	switch {
	case previous == 0:
		if current == 0 {
			return 0
		}
		if current > 0 {
			return 100
		}
		return -100
	case previous < 0:
		if current < 0 {
			// assisted -> assisted: less help is progress
			return (current - previous) / math.Abs(previous) * 100
		}
		// assisted -> weighted
		return (math.Abs(previous) + current) / math.Abs(previous) * 100
	default:
		if current < 0 {
			// weighted -> assisted
			return -((previous + math.Abs(current)) / previous) * 100
		}
		return (current - previous) / previous * 100
	}
}
