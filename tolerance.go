// Package tilemm tolerance-based verification for floating-point comparisons
package tilemm

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison.
// Two values are close when |actual - expected| <= AbsTol + RelTol*|expected|.
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float64

	// RelTol is the relative tolerance as a fraction of the expected value
	RelTol float64

	// EqualNaN treats two NaNs as equal
	EqualNaN bool
}

// DefaultTolerance returns tolerances suitable for float32 results.
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-8,
		RelTol: 1e-5,
	}
}

// HalfTolerance returns tolerances for results stored in Float16.
func HalfTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: HalfAbsTol,
		RelTol: HalfRelTol,
	}
}

// ExactTolerance requires bit-for-bit equal values.
func ExactTolerance() ToleranceConfig {
	return ToleranceConfig{}
}

// IsClose checks if actual is within tolerance of expected
func IsClose(expected, actual float64, tol ToleranceConfig) bool {
	if math.IsNaN(expected) || math.IsNaN(actual) {
		return tol.EqualNaN && math.IsNaN(expected) && math.IsNaN(actual)
	}

	// Exact equality also covers matching infinities
	if expected == actual {
		return true
	}
	if math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return false
	}

	return math.Abs(actual-expected) <= tol.AbsTol+tol.RelTol*math.Abs(expected)
}

// VerificationResult summarizes an element-wise comparison
type VerificationResult struct {
	MaxAbsError float64
	MaxRelError float64
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// Verify compares two arrays and returns detailed results
func Verify(expected, actual []float64, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
	}

	if len(expected) != len(actual) {
		// Arrays have different lengths
		result.NumErrors = max(len(expected), len(actual))
		result.FirstError = min(len(expected), len(actual))
		return result
	}

	for i := range expected {
		absDiff := math.Abs(expected[i] - actual[i])
		if !math.IsNaN(absDiff) && absDiff > result.MaxAbsError {
			result.MaxAbsError = absDiff
		}
		if expected[i] != 0 {
			relDiff := absDiff / math.Abs(expected[i])
			if !math.IsNaN(relDiff) && relDiff > result.MaxRelError {
				result.MaxRelError = relDiff
			}
		}

		if !IsClose(expected[i], actual[i], tol) {
			result.NumErrors++
			if result.FirstError == -1 {
				result.FirstError = i
			}
		}
	}

	return result
}

// VerifyMatrix compares a computed matrix with a row-major expected result.
func VerifyMatrix[T Element](expected []float64, actual Matrix[T], tol ToleranceConfig) VerificationResult {
	return Verify(expected, actual.Float64s(), tol)
}

// AllClose reports whether every element of actual is close to expected.
func AllClose(expected, actual []float64, tol ToleranceConfig) bool {
	return Verify(expected, actual, tol).Passed()
}

// Passed returns true if no element was outside tolerance
func (r VerificationResult) Passed() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return fmt.Sprintf("PASS: all %d values match within tolerance (max abs error %e)",
			r.TotalItems, r.MaxAbsError)
	}

	errorRate := 100.0
	if r.TotalItems > 0 {
		errorRate = float64(r.NumErrors) / float64(r.TotalItems) * 100
	}
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max relative error: %e\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError,
		r.FirstError)
}
