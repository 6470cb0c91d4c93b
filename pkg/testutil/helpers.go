// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"github.com/iwvelando/property-forecast/pkg/property"
)

// RelativeTolerance is the accepted relative error against reference figures.
const RelativeTolerance = 1e-6

// ReferenceProperty is a 35 m² resale unit at R60,000/m².
func ReferenceProperty() property.Input {
	return property.Input{
		PurchasePrice: 60000 * 35,
		SizeSqm:       35,
		PurchaseType:  property.Resale,
	}
}

// ReferenceProfile is the rental profile paired with ReferenceProperty.
func ReferenceProfile() property.RentalProfile {
	return property.RentalProfile{
		LongTermRentPerSqm: 550,
		AirbnbNightlyRate:  1200,
		AirbnbOccupancyPct: 65,
		Zone:               "atlantic_seaboard",
	}
}

// ReferenceFinancing is a cash purchase at the default rate.
func ReferenceFinancing() property.Financing {
	return property.Financing{
		LoanToValue:        0,
		AnnualInterestRate: 0.11,
		TermYears:          20,
	}
}

// AssertClose fails the test when actual deviates from expected by more
// than RelativeTolerance.
func AssertClose(t testing.TB, name string, actual, expected float64) {
	t.Helper()
	if mathutil.RelativeError(actual, expected) > RelativeTolerance {
		t.Errorf("%s = %.10f, expected %.10f", name, actual, expected)
	}
}
