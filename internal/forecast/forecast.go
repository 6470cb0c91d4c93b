// Package forecast composes the acquisition, operating, mortgage, projection,
// tax and recommendation components into a single evaluation of a property.
package forecast

import (
	"fmt"
	"reflect"

	"github.com/iwvelando/property-forecast/internal/projection"
	"github.com/iwvelando/property-forecast/internal/recommend"
	"github.com/iwvelando/property-forecast/pkg/acquisition"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/loans"
	"github.com/iwvelando/property-forecast/pkg/operating"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/tax"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Request is everything needed to evaluate one property.
type Request struct {
	Property    property.Input         `json:"property" yaml:"property"`
	Profile     property.RentalProfile `json:"profile" yaml:"profile"`
	Financing   property.Financing     `json:"financing" yaml:"financing"`
	Assumptions property.Assumptions   `json:"assumptions" yaml:"assumptions"`
}

// Mortgage describes the bond and its full repayment schedule.
type Mortgage struct {
	projection.Debt
	AnnualInterestRate float64          `json:"annualInterestRate"`
	TermYears          int              `json:"termYears"`
	Schedule           []loans.YearStep `json:"schedule"`
}

// Taxes holds the recurring and point-of-sale estimates.
type Taxes struct {
	Recurring tax.Recurring `json:"recurring"`
	AtSale    tax.AtSale    `json:"atSale"`
}

// Result is the complete evaluation handed to a renderer. Inputs are echoed
// with defaults applied.
type Result struct {
	Request        Request                  `json:"request"`
	Acquisition    acquisition.Breakdown    `json:"acquisition"`
	LongTerm       operating.Breakdown      `json:"longTerm"`
	Airbnb         operating.Breakdown      `json:"airbnb"`
	Mortgage       Mortgage                 `json:"mortgage"`
	Projections    []projection.Projection  `json:"projections"`
	Taxes          Taxes                    `json:"taxes"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}

// Projection returns the projection for a strategy.
func (r Result) Projection(strategy property.Strategy) (projection.Projection, bool) {
	for _, p := range r.Projections {
		if p.Strategy == strategy {
			return p, true
		}
	}
	return projection.Projection{}, false
}

// Engine evaluates requests. It holds no state that changes between calls
// and is safe for concurrent use.
type Engine struct {
	logger *zap.Logger
	rules  recommend.Rules
}

// NewEngine creates an engine that annotates recommendations with rules.
func NewEngine(logger *zap.Logger, rules recommend.Rules) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, rules: rules}
}

// Evaluate runs the full model with the default recommendation rules.
func Evaluate(logger *zap.Logger, in property.Input, profile property.RentalProfile,
	financing property.Financing, assumptions property.Assumptions) (Result, error) {
	return NewEngine(logger, recommend.DefaultRules()).Recompute(Request{
		Property:    in,
		Profile:     profile,
		Financing:   financing,
		Assumptions: assumptions,
	})
}

// Normalize applies the documented defaults and validates the request.
func Normalize(req Request) (Request, error) {
	req.Property = req.Property.WithDefaults()
	req.Financing = req.Financing.WithDefaults()
	req.Assumptions = req.Assumptions.WithDefaults()

	if err := validation.ValidateProperty(req.Property); err != nil {
		return req, err
	}
	if err := validation.ValidateProfile(req.Profile); err != nil {
		return req, err
	}
	if err := validation.ValidateFinancing(req.Financing); err != nil {
		return req, err
	}
	if err := validation.ValidateAssumptions(req.Assumptions); err != nil {
		return req, err
	}
	return req, nil
}

// Recompute evaluates a request. Either a complete result or an error is
// returned, never a partial result.
func (e *Engine) Recompute(req Request) (Result, error) {
	req, err := Normalize(req)
	if err != nil {
		return Result{}, err
	}

	in := req.Property
	price := in.PurchasePrice
	longTerm := operating.LongTerm(in, req.Profile)
	airbnb := operating.Airbnb(in, req.Profile)

	params := projection.Params{
		Property:    in,
		Financing:   req.Financing,
		Assumptions: req.Assumptions,
	}
	debt := projection.NewDebt(params)

	schedule, err := loans.NewAmortizationScheduleGenerator(e.logger).
		GenerateSchedule(debt.LoanAmount, req.Financing.AnnualInterestRate, req.Financing.TermYears)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate amortization schedule: %w", err)
	}

	projections, err := projection.ProjectAll(e.logger, params, longTerm, airbnb)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Request:     req,
		Acquisition: acquisition.Acquire(price),
		LongTerm:    longTerm,
		Airbnb:      airbnb,
		Mortgage: Mortgage{
			Debt:               debt,
			AnnualInterestRate: req.Financing.AnnualInterestRate,
			TermYears:          req.Financing.TermYears,
			Schedule:           schedule,
		},
		Projections: projections,
		Taxes: Taxes{
			Recurring: tax.EstimateRecurring(price, longTerm.NetPreTax, airbnb.NetPreTax),
			AtSale:    tax.EstimateAtSale(price, req.Assumptions.AppreciationRate(), constants.ProjectionYears),
		},
		Recommendation: e.rules.Recommend(longTerm.NetYieldPercent, airbnb.NetYieldPercent,
			req.Profile.OccupancyFraction(), req.Profile.Zone),
	}

	// Inputs that pass range checks can still overflow, e.g. a rate large
	// enough that the payment formula divides infinity by infinity.
	if path := nonFinite(reflect.ValueOf(result), "result"); path != "" {
		return Result{}, fmt.Errorf("%w: inputs overflow the model at %s", validation.ErrInvalidInput, path)
	}

	e.logger.Debug(fmt.Sprintf("evaluated %.2f property: long-term yield %.4f%%, airbnb yield %.4f%%, %s",
		price, longTerm.NetYieldPercent, airbnb.NetYieldPercent, result.Recommendation.Category),
		zap.String("op", "forecast.Recompute"),
	)

	return result, nil
}
