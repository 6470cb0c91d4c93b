package property

import (
	"math"
	"testing"
)

func TestInputWithDefaults(t *testing.T) {
	in := Input{PurchasePrice: 1000000, SizeSqm: math.NaN()}.WithDefaults()
	if in.SizeSqm != 35 {
		t.Errorf("expected NaN size to resolve to 35, got %v", in.SizeSqm)
	}
	if in.PurchaseType != Resale {
		t.Errorf("expected empty purchase type to resolve to resale, got %q", in.PurchaseType)
	}

	kept := Input{PurchasePrice: 1000000, SizeSqm: 60, PurchaseType: New}.WithDefaults()
	if kept.SizeSqm != 60 || kept.PurchaseType != New {
		t.Errorf("explicit values were overwritten: %+v", kept)
	}
}

func TestFinancingWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected float64
	}{
		{"zero rate", 0, 0.11},
		{"NaN rate", math.NaN(), 0.11},
		{"explicit rate", 0.1175, 0.1175},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Financing{LoanToValue: 0.8, AnnualInterestRate: tt.rate}.WithDefaults()
			if f.AnnualInterestRate != tt.expected {
				t.Errorf("rate = %v, expected %v", f.AnnualInterestRate, tt.expected)
			}
			if f.TermYears != 20 {
				t.Errorf("term = %d, expected 20", f.TermYears)
			}
		})
	}
}

func TestAssumptionsRates(t *testing.T) {
	var unset Assumptions
	if unset.AppreciationRate() != 0.05 {
		t.Errorf("appreciation = %v, expected 0.05", unset.AppreciationRate())
	}
	if unset.RentIncreaseRate() != 0.06 {
		t.Errorf("rent increase = %v, expected 0.06", unset.RentIncreaseRate())
	}

	zero := Assumptions{Appreciation: Rate(0), RentIncrease: Rate(0)}
	if zero.AppreciationRate() != 0 || zero.RentIncreaseRate() != 0 {
		t.Errorf("explicit zero rates must be honoured, got %v/%v", zero.AppreciationRate(), zero.RentIncreaseRate())
	}

	resolved := unset.WithDefaults()
	if resolved.Appreciation == nil || *resolved.Appreciation != 0.05 {
		t.Errorf("WithDefaults() did not resolve appreciation: %+v", resolved)
	}
}

func TestStrategyAndProfileHelpers(t *testing.T) {
	if !LongTerm.IsValid() || !Airbnb.IsValid() || Strategy("hotel").IsValid() {
		t.Error("unexpected strategy validity")
	}
	if Airbnb.Label() != "Airbnb" {
		t.Errorf("Label() = %q", Airbnb.Label())
	}
	p := RentalProfile{AirbnbOccupancyPct: 65}
	if math.Abs(p.OccupancyFraction()-0.65) > 1e-12 {
		t.Errorf("OccupancyFraction() = %v", p.OccupancyFraction())
	}
	if got := (Financing{LoanToValue: 0.8}).LoanAmount(1000000); got != 800000 {
		t.Errorf("LoanAmount() = %v", got)
	}
}
