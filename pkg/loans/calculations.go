// Package loans provides fixed-rate bond amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// YearStep holds the values for one year of repayments.
type YearStep struct {
	Year             int     `json:"year"`
	OpeningBalance   float64 `json:"openingBalance"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	Paid             float64 `json:"paid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// MonthlyPayment calculates the monthly instalment using the standard
// amortization formula. Rates are fractions (0.11 for 11%).
func MonthlyPayment(loan, annualInterestRate float64, termYears int) float64 {
	if loan <= 0 || termYears <= 0 {
		return 0
	}

	termMonths := float64(termYears * constants.MonthsPerYear)
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return loan / termMonths
	}

	periodicInterestRate := annualInterestRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicInterestRate, termMonths)
	return loan * periodicInterestRate * power / (power - 1.00)
}

// AnnualPayment is twelve monthly instalments.
func AnnualPayment(loan, annualInterestRate float64, termYears int) float64 {
	return MonthlyPayment(loan, annualInterestRate, termYears) * constants.MonthsPerYear
}

// Step advances a balance by one year. Interest accrues on the opening
// balance at the annual rate and the rest of the payment reduces principal.
// The balance never goes below zero.
func Step(remainingBalance, annualInterestRate, annualPayment float64) YearStep {
	interest := remainingBalance * annualInterestRate
	principal := annualPayment - interest
	newBalance := mathutil.PositivePart(remainingBalance - principal)

	paid := annualPayment
	if remainingBalance-principal < 0 {
		// Final year: only what was still owed is paid.
		paid = remainingBalance + interest
	}

	return YearStep{
		OpeningBalance:   remainingBalance,
		Interest:         interest,
		Principal:        principal,
		Paid:             paid,
		RemainingBalance: newBalance,
	}
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule returns the per-year interest and principal split for the
// full term of a loan. A zero loan yields an empty schedule.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan, annualInterestRate float64, termYears int) ([]YearStep, error) {
	if loan < 0 {
		return nil, fmt.Errorf("loan amount must not be negative, got %.2f", loan)
	}
	if termYears <= 0 {
		return nil, fmt.Errorf("loan term must be positive, got %d", termYears)
	}
	if loan == 0 {
		return nil, nil
	}

	annualPayment := AnnualPayment(loan, annualInterestRate, termYears)
	schedule := make([]YearStep, 0, termYears)
	balance := loan
	for year := 1; year <= termYears; year++ {
		step := Step(balance, annualInterestRate, annualPayment)
		step.Year = year
		schedule = append(schedule, step)
		balance = step.RemainingBalance

		if mathutil.IsZero(balance) {
			g.logger.Debug(fmt.Sprintf("loan of %.2f settled in year %d", loan, year),
				zap.String("op", "loans.GenerateSchedule"),
			)
			break
		}
	}

	return schedule, nil
}
