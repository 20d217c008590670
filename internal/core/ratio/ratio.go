// Package ratio holds the percentage rules shared by every aggregation
package ratio

import "math"

// Percent returns num/den*100, or 0 when the ratio is undefined
// a zero (or non finite) denominator never yields NaN or Inf
func Percent(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	v := num / den * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Change returns the percentage change from prev to cur, 0 when prev is 0
func Change(cur, prev float64) float64 { return Percent(cur-prev, prev) }
