// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for display only, never inside the model.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// RelativeError returns |actual-expected| / |expected|, or the absolute
// difference when expected is zero.
func RelativeError(actual, expected float64) float64 {
	if expected == 0 {
		return math.Abs(actual)
	}
	return math.Abs(actual-expected) / math.Abs(expected)
}

// PositivePart returns val when positive and 0 otherwise.
func PositivePart(val float64) float64 {
	return math.Max(val, 0)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// Compound grows value by rate for the given number of periods.
func Compound(value, rate float64, periods int) float64 {
	return value * math.Pow(1+rate, float64(periods))
}
