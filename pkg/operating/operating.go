// Package operating calculates the current-year revenue, expenses and net
// income of a property under each operating strategy.
package operating

import (
	"fmt"

	"github.com/iwvelando/property-forecast/pkg/acquisition"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
)

// Revenue lines. Fields that do not apply to a strategy are zero.
type Revenue struct {
	MonthlyRent      float64 `json:"monthlyRent,omitempty"`
	NightsPerYear    float64 `json:"nightsPerYear,omitempty"`
	Turnovers        float64 `json:"turnovers,omitempty"`
	Gross            float64 `json:"gross"`
	EffectiveRevenue float64 `json:"effectiveRevenue"`
}

// Expenses lines. Levy, rates and insurance are common to both strategies.
type Expenses struct {
	Levy        float64 `json:"levy"`
	Rates       float64 `json:"rates"`
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
	PlatformFee float64 `json:"platformFee,omitempty"`
	Cleaning    float64 `json:"cleaning,omitempty"`
	Utilities   float64 `json:"utilities,omitempty"`
	Management  float64 `json:"management,omitempty"`
}

// Total sums every expense line.
func (e Expenses) Total() float64 {
	return e.Levy + e.Rates + e.Insurance + e.Maintenance +
		e.PlatformFee + e.Cleaning + e.Utilities + e.Management
}

// Breakdown is one strategy's annual operating result.
type Breakdown struct {
	Strategy        property.Strategy `json:"strategy"`
	Revenue         Revenue           `json:"revenue"`
	Expenses        Expenses          `json:"expenses"`
	TotalExpenses   float64           `json:"totalExpenses"`
	NetPreTax       float64           `json:"netPreTax"`
	IncomeTax       float64           `json:"incomeTax"`
	NetAfterTax     float64           `json:"netAfterTax"`
	TotalInvestment float64           `json:"totalInvestment"`
	NetYieldPercent float64           `json:"netYieldPercent"`
}

// sharedExpenses are owner costs that do not depend on how the unit is let.
func sharedExpenses(in property.Input) Expenses {
	return Expenses{
		Levy:      in.SizeSqm * constants.LevyPerSqmMonthly * constants.MonthsPerYear,
		Rates:     in.PurchasePrice * constants.MunicipalRatesRate,
		Insurance: in.PurchasePrice * constants.InsuranceRate,
	}
}

// IncomeTax is the flat rate on positive net income. Losses carry no tax.
func IncomeTax(netPreTax float64) float64 {
	return mathutil.PositivePart(netPreTax * constants.IncomeTaxRate)
}

// LongTerm calculates a long-term lease at the fixed occupancy.
func LongTerm(in property.Input, profile property.RentalProfile) Breakdown {
	monthlyRent := profile.LongTermRentPerSqm * in.SizeSqm
	gross := monthlyRent * constants.MonthsPerYear
	effective := gross * constants.LongTermOccupancy

	expenses := sharedExpenses(in)
	expenses.Maintenance = effective * constants.LongTermMaintenanceRate

	return finish(property.LongTerm, in, Revenue{
		MonthlyRent:      monthlyRent,
		Gross:            gross,
		EffectiveRevenue: effective,
	}, expenses)
}

// Airbnb calculates short-term letting at the neighborhood occupancy.
func Airbnb(in property.Input, profile property.RentalProfile) Breakdown {
	nights := constants.DaysPerYear * profile.OccupancyFraction()
	turnovers := nights / constants.AverageStayNights
	gross := profile.AirbnbNightlyRate * nights

	expenses := sharedExpenses(in)
	expenses.PlatformFee = gross * constants.AirbnbPlatformFeeRate
	expenses.Cleaning = turnovers * constants.CleaningCostPerTurnover
	expenses.Utilities = in.SizeSqm * constants.UtilitiesPerSqmMonthly * constants.MonthsPerYear
	expenses.Maintenance = gross * constants.AirbnbMaintenanceRate
	expenses.Management = (gross - expenses.PlatformFee) * constants.AirbnbManagementFeeRate

	return finish(property.Airbnb, in, Revenue{
		NightsPerYear:    nights,
		Turnovers:        turnovers,
		Gross:            gross,
		EffectiveRevenue: gross,
	}, expenses)
}

func finish(strategy property.Strategy, in property.Input, revenue Revenue, expenses Expenses) Breakdown {
	total := expenses.Total()
	netPreTax := revenue.EffectiveRevenue - total
	tax := IncomeTax(netPreTax)
	netAfterTax := netPreTax - tax
	investment := in.PurchasePrice + acquisition.AcquisitionCost(in.PurchasePrice)

	return Breakdown{
		Strategy:        strategy,
		Revenue:         revenue,
		Expenses:        expenses,
		TotalExpenses:   total,
		NetPreTax:       netPreTax,
		IncomeTax:       tax,
		NetAfterTax:     netAfterTax,
		TotalInvestment: investment,
		NetYieldPercent: mathutil.CalculatePercentage(netAfterTax, investment),
	}
}

// Calculate dispatches to the model for strategy.
func Calculate(strategy property.Strategy, in property.Input, profile property.RentalProfile) (Breakdown, error) {
	switch strategy {
	case property.LongTerm:
		return LongTerm(in, profile), nil
	case property.Airbnb:
		return Airbnb(in, profile), nil
	default:
		return Breakdown{}, fmt.Errorf("%w: unknown strategy %q", validation.ErrInvalidInput, strategy)
	}
}
