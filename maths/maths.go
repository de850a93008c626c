// Package maths holds the epsilon-aware comparisons shape setters use to
// decide whether a value actually changed.
package maths

import "math"

// EqualTo reports whether a and b differ by no more than epsilon. Two NaNs
// are equal so that a setter never reports NaN replacing NaN as a change.
func EqualTo(a, b, epsilon float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	return math.Abs(a-b) <= epsilon
}

// GreaterThan reports whether a exceeds b by more than epsilon.
func GreaterThan(a, b, epsilon float64) bool {
	return a-b > epsilon
}

// LessThan reports whether b exceeds a by more than epsilon.
func LessThan(a, b, epsilon float64) bool {
	return b-a > epsilon
}

// IsZero reports whether a is within epsilon of zero.
func IsZero(a, epsilon float64) bool {
	return EqualTo(a, 0, epsilon)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
