package analysis

import "math"

// Round2 rounds v to two decimal places: multiply by 100, round to the
// nearest integer with halves away from zero (math.Round), divide by 100.
//
// Every value produced by this package goes through Round2, so results are
// reproducible across callers. Infinities and NaN pass through unchanged.
// Small negatives that round to zero return +0, never -0.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
