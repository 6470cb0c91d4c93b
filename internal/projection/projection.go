// Package projection simulates ten years of ownership under each operating
// strategy: cash flow, equity, return on equity and the return realised if
// the property were sold at the end of each year.
package projection

import (
	"fmt"

	"github.com/iwvelando/property-forecast/pkg/acquisition"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/loans"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"github.com/iwvelando/property-forecast/pkg/operating"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Params are the resolved inputs shared by every strategy's projection.
type Params struct {
	Property    property.Input
	Financing   property.Financing
	Assumptions property.Assumptions
}

// Year is one point of the projection. Year 0 is the purchase date.
type Year struct {
	Year                 int     `json:"year"`
	OperatingIncome      float64 `json:"operatingIncome"`
	DebtService          float64 `json:"debtService"`
	Reserve              float64 `json:"reserve"`
	IncomeTax            float64 `json:"incomeTax"`
	NetIncome            float64 `json:"netIncome"`
	CashFlowCumulative   float64 `json:"cashFlowCumulative"`
	PropertyValue        float64 `json:"propertyValue"`
	RemainingLoanBalance float64 `json:"remainingLoanBalance"`
	Equity               float64 `json:"equity"`
	ROEPercent           float64 `json:"roePercent"`
	TotalROIIfSoldNow    float64 `json:"totalRoiIfSoldNow"`
}

// Summary holds the milestones of a projection. Nil years were not reached
// within the horizon.
type Summary struct {
	BreakEvenYear  *int    `json:"breakEvenYear"`
	SellSignalYear *int    `json:"sellSignalYear"`
	Year10Profit   float64 `json:"year10Profit"`
}

// Projection is the full series for one strategy.
type Projection struct {
	Strategy property.Strategy `json:"strategy"`
	Years    []Year            `json:"years"`
	Summary  Summary           `json:"summary"`
}

// Debt describes the bond every strategy is financed with.
type Debt struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	AnnualPayment  float64 `json:"annualPayment"`
	EquityRequired float64 `json:"equityRequired"`
}

// NewDebt sizes the bond and the cash the buyer must bring.
func NewDebt(p Params) Debt {
	price := p.Property.PurchasePrice
	loan := p.Financing.LoanAmount(price)
	monthly := loans.MonthlyPayment(loan, p.Financing.AnnualInterestRate, p.Financing.TermYears)
	return Debt{
		LoanAmount:     loan,
		MonthlyPayment: monthly,
		AnnualPayment:  monthly * constants.MonthsPerYear,
		EquityRequired: price + acquisition.AcquisitionCost(price) - loan,
	}
}

// Project runs the simulation for one strategy starting from its current-year
// operating breakdown.
func Project(logger *zap.Logger, p Params, debt Debt, base operating.Breakdown) (Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !base.Strategy.IsValid() {
		return Projection{}, fmt.Errorf("%w: unknown strategy %q", validation.ErrInvalidInput, base.Strategy)
	}

	price := p.Property.PurchasePrice
	rate := p.Financing.AnnualInterestRate
	appreciation := p.Assumptions.AppreciationRate()
	rentIncrease := p.Assumptions.RentIncreaseRate()

	cashFlow := -debt.EquityRequired
	value := price
	balance := debt.LoanAmount
	income := base.NetPreTax
	gross := base.Revenue.Gross

	years := make([]Year, 0, constants.ProjectionYears+1)
	years = append(years, point(Year{
		Year:                 0,
		CashFlowCumulative:   cashFlow,
		PropertyValue:        value,
		RemainingLoanBalance: balance,
	}, price))

	for year := 1; year <= constants.ProjectionYears; year++ {
		step := loans.Step(balance, rate, debt.AnnualPayment)
		balance = step.RemainingBalance

		var reserve float64
		if base.Strategy == property.Airbnb {
			reserve = gross * constants.AirbnbReserveRate
		}

		afterDebt := income - step.Paid - reserve
		tax := operating.IncomeTax(afterDebt)
		net := afterDebt - tax
		cashFlow += net
		value *= 1 + appreciation

		years = append(years, point(Year{
			Year:                 year,
			OperatingIncome:      income,
			DebtService:          step.Paid,
			Reserve:              reserve,
			IncomeTax:            tax,
			NetIncome:            net,
			CashFlowCumulative:   cashFlow,
			PropertyValue:        value,
			RemainingLoanBalance: balance,
		}, price))

		income *= 1 + rentIncrease
		gross *= 1 + rentIncrease
	}

	summary := summarize(years)
	logger.Debug(fmt.Sprintf("projected %s over %d years, year 10 profit %.2f",
		base.Strategy, constants.ProjectionYears, summary.Year10Profit),
		zap.String("op", "projection.Project"),
	)

	return Projection{
		Strategy: base.Strategy,
		Years:    years,
		Summary:  summary,
	}, nil
}

// ProjectAll projects every supplied strategy against one shared bond.
func ProjectAll(logger *zap.Logger, p Params, bases ...operating.Breakdown) ([]Projection, error) {
	debt := NewDebt(p)
	projections := make([]Projection, 0, len(bases))
	for _, base := range bases {
		projection, err := Project(logger, p, debt, base)
		if err != nil {
			return nil, err
		}
		projections = append(projections, projection)
	}
	return projections, nil
}

// point fills in the derived columns of a year.
func point(y Year, purchasePrice float64) Year {
	y.Equity = y.PropertyValue - y.RemainingLoanBalance
	if y.Equity > 0 {
		y.ROEPercent = mathutil.CalculatePercentage(y.NetIncome, y.Equity)
	}
	y.TotalROIIfSoldNow = y.CashFlowCumulative + y.Equity - acquisition.SaleCost(y.PropertyValue, purchasePrice)
	return y
}

// summarize finds the milestones. Year 0 has no income, so it cannot raise
// a sell signal.
func summarize(years []Year) Summary {
	var s Summary
	for i := range years {
		y := years[i].Year
		if s.BreakEvenYear == nil && years[i].TotalROIIfSoldNow >= 0 {
			s.BreakEvenYear = &y
		}
		if s.SellSignalYear == nil && y > 0 && years[i].ROEPercent < constants.SellSignalROEPercent {
			s.SellSignalYear = &y
		}
	}
	if len(years) > 0 {
		s.Year10Profit = years[len(years)-1].TotalROIIfSoldNow
	}
	return s
}
