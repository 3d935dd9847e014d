// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-simulator/pkg/constants"
)

// Round rounds a value to whole cents.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero reports whether val is within one cent of zero.
func IsZero(val float64) bool {
	return WithinTolerance(val, 0, constants.CurrencyTolerance)
}

// SnapToZero returns 0 when the magnitude of val is strictly below tolerance.
func SnapToZero(val, tolerance float64) float64 {
	if math.Abs(val) < tolerance {
		return 0
	}
	return val
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// MonthlyRateFromAnnual converts an effective annual rate into the equivalent
// compound monthly rate.
func MonthlyRateFromAnnual(annual float64) float64 {
	if annual == 0 {
		return 0
	}
	return math.Pow(1+annual, 1.0/constants.MonthsPerYear) - 1
}
