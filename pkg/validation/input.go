package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/property"
)

// ErrInvalidInput is returned for non-numeric or out-of-range inputs.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateProperty checks a property after defaults have been applied.
func ValidateProperty(in property.Input) error {
	if !finite(in.PurchasePrice) || in.PurchasePrice <= 0 {
		return invalid("purchase price must be positive, got %v", in.PurchasePrice)
	}
	if !finite(in.SizeSqm) || in.SizeSqm <= 0 {
		return invalid("size must be positive, got %v", in.SizeSqm)
	}
	if !in.PurchaseType.IsValid() {
		return invalid("unknown purchase type %q", in.PurchaseType)
	}
	return nil
}

// ValidateProfile checks a neighborhood rental profile.
func ValidateProfile(p property.RentalProfile) error {
	if !finite(p.LongTermRentPerSqm) || p.LongTermRentPerSqm <= 0 {
		return invalid("long-term rent per m² must be positive, got %v", p.LongTermRentPerSqm)
	}
	if !finite(p.AirbnbNightlyRate) || p.AirbnbNightlyRate <= 0 {
		return invalid("airbnb nightly rate must be positive, got %v", p.AirbnbNightlyRate)
	}
	if !finite(p.AirbnbOccupancyPct) || p.AirbnbOccupancyPct < 0 || p.AirbnbOccupancyPct > constants.PercentageMultiplier {
		return invalid("airbnb occupancy must be between 0 and 100, got %v", p.AirbnbOccupancyPct)
	}
	return nil
}

// ValidateFinancing checks bond terms after defaults have been applied.
func ValidateFinancing(f property.Financing) error {
	if !finite(f.LoanToValue) || f.LoanToValue < 0 || f.LoanToValue > 1 {
		return invalid("loan-to-value must be between 0 and 1, got %v", f.LoanToValue)
	}
	if !finite(f.AnnualInterestRate) || f.AnnualInterestRate < 0 {
		return invalid("interest rate must not be negative, got %v", f.AnnualInterestRate)
	}
	if f.TermYears != constants.MortgageTermYears {
		return invalid("mortgage term is fixed at %d years, got %d", constants.MortgageTermYears, f.TermYears)
	}
	return nil
}

// ValidateAssumptions checks the projection growth rates after defaults
// have been applied. Negative rates model decline and are allowed, but not
// below -100%. Unset or NaN rates never reach this check as negatives: they
// resolve to constants.DefaultAppreciation and constants.DefaultRentIncrease
// through property.Assumptions.AppreciationRate and RentIncreaseRate.
func ValidateAssumptions(a property.Assumptions) error {
	appreciation := a.AppreciationRate()
	if !finite(appreciation) || appreciation <= -1 {
		return invalid("appreciation rate must be greater than -1, got %v", appreciation)
	}
	rentIncrease := a.RentIncreaseRate()
	if !finite(rentIncrease) || rentIncrease <= -1 {
		return invalid("rent increase rate must be greater than -1, got %v", rentIncrease)
	}
	return nil
}
