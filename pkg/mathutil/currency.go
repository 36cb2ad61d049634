// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Interpolate returns the point at fraction t between lo and hi.
func Interpolate(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
