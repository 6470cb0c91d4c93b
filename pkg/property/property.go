// Package property defines the request-scoped value types consumed by the
// forecasting engine and the documented defaults applied to them.
package property

import (
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
)

// PurchaseType distinguishes new developments from resale stock.
type PurchaseType string

const (
	Resale PurchaseType = "resale"
	New    PurchaseType = "new"
)

// IsValid checks if a purchase type is recognized.
func (t PurchaseType) IsValid() bool {
	return t == Resale || t == New
}

// Strategy is an operating strategy for the property.
type Strategy string

const (
	LongTerm Strategy = "longTerm"
	Airbnb   Strategy = "airbnb"
)

// Strategies lists every strategy in evaluation order.
var Strategies = []Strategy{LongTerm, Airbnb}

// IsValid checks if a strategy is recognized.
func (s Strategy) IsValid() bool {
	return s == LongTerm || s == Airbnb
}

// Label returns a human-readable label for the strategy.
func (s Strategy) Label() string {
	switch s {
	case LongTerm:
		return "Long-term lease"
	case Airbnb:
		return "Airbnb"
	default:
		return string(s)
	}
}

// Input describes the property being evaluated.
type Input struct {
	PurchasePrice float64      `json:"purchasePrice" yaml:"purchasePrice"`
	SizeSqm       float64      `json:"sizeSqm" yaml:"sizeSqm"`
	PurchaseType  PurchaseType `json:"purchaseType" yaml:"purchaseType"`
}

// RentalProfile is a neighborhood's rental-market profile.
type RentalProfile struct {
	LongTermRentPerSqm float64 `json:"longTermRentPerSqm" yaml:"longTermRentPerSqm"`
	AirbnbNightlyRate  float64 `json:"airbnbNightlyRate" yaml:"airbnbNightlyRate"`
	AirbnbOccupancyPct float64 `json:"airbnbOccupancyPct" yaml:"airbnbOccupancyPct"` // 0-100
	Zone               string  `json:"zone,omitempty" yaml:"zone,omitempty"`
}

// OccupancyFraction returns the Airbnb occupancy as a fraction of the year.
func (p RentalProfile) OccupancyFraction() float64 {
	return p.AirbnbOccupancyPct / constants.PercentageMultiplier
}

// Financing holds the bond terms.
type Financing struct {
	LoanToValue        float64 `json:"loanToValue" yaml:"loanToValue"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"`
	TermYears          int     `json:"termYears,omitempty" yaml:"termYears,omitempty"`
}

// LoanAmount is the financed portion of price.
func (f Financing) LoanAmount(price float64) float64 {
	return price * f.LoanToValue
}

// Assumptions are the caller-tunable growth rates of the projection. Nil
// means unset so that an explicit zero rate is still honoured.
type Assumptions struct {
	Appreciation *float64 `json:"appreciation,omitempty" yaml:"appreciation,omitempty"`
	RentIncrease *float64 `json:"rentIncrease,omitempty" yaml:"rentIncrease,omitempty"`
}

// Rate returns a pointer to v, for building Assumptions literals.
func Rate(v float64) *float64 {
	return &v
}

// AppreciationRate returns the resolved appreciation rate.
func (a Assumptions) AppreciationRate() float64 {
	if a.Appreciation == nil || math.IsNaN(*a.Appreciation) {
		return constants.DefaultAppreciation
	}
	return *a.Appreciation
}

// RentIncreaseRate returns the resolved rent escalation rate.
func (a Assumptions) RentIncreaseRate() float64 {
	if a.RentIncrease == nil || math.IsNaN(*a.RentIncrease) {
		return constants.DefaultRentIncrease
	}
	return *a.RentIncrease
}

// WithDefaults returns a copy with unset or NaN size replaced.
func (in Input) WithDefaults() Input {
	if in.SizeSqm == 0 || math.IsNaN(in.SizeSqm) {
		in.SizeSqm = constants.DefaultSizeSqm
	}
	if in.PurchaseType == "" {
		in.PurchaseType = Resale
	}
	return in
}

// WithDefaults returns a copy with unset, zero or NaN rate and term replaced.
func (f Financing) WithDefaults() Financing {
	if f.AnnualInterestRate == 0 || math.IsNaN(f.AnnualInterestRate) {
		f.AnnualInterestRate = constants.DefaultInterestRate
	}
	if f.TermYears == 0 {
		f.TermYears = constants.MortgageTermYears
	}
	return f
}

// WithDefaults returns a copy with both growth rates resolved.
func (a Assumptions) WithDefaults() Assumptions {
	return Assumptions{
		Appreciation: Rate(a.AppreciationRate()),
		RentIncrease: Rate(a.RentIncreaseRate()),
	}
}
