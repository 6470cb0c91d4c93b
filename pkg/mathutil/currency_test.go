package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"monthly bond payment", 17340.764991917702, 17340.76},
		{"half cent rounds away from zero", 0.125, 0.13},
		{"negative cash flow", -353568.3813, -353568.38},
		{"sub-cent residual", 0.004, 0},
		{"sub-cent negative residual", -0.004, 0},
		{"whole rands", 2100000, 2100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Round(tt.input); math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Exactly negative tolerance", -0.01, true},
		{"Large positive", 100.0, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"100% of value", 100.0, 100.0, 100.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero value", 0.0, 100.0, 0.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestRelativeError(t *testing.T) {
	tests := []struct {
		name     string
		actual   float64
		expected float64
		want     float64
	}{
		{"Exact", 6.0032, 6.0032, 0},
		{"One percent high", 101, 100, 0.01},
		{"Negative expected", -99, -100, 0.01},
		{"Zero expected falls back to absolute", 0.5, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RelativeError(tt.actual, tt.expected)
			if math.Abs(result-tt.want) > 1e-12 {
				t.Errorf("RelativeError(%v, %v) = %v, expected %v", tt.actual, tt.expected, result, tt.want)
			}
		})
	}
}

func TestPositivePart(t *testing.T) {
	if PositivePart(-5) != 0 || PositivePart(0) != 0 || PositivePart(7.5) != 7.5 {
		t.Error("PositivePart returned an unexpected value")
	}
}

func TestCompound(t *testing.T) {
	if got := Compound(2100000, 0.05, 0); got != 2100000 {
		t.Errorf("Compound over zero periods = %v", got)
	}
	if got := Compound(2100000, 0.05, 10); math.Abs(got-3420678.7162326276) > 1e-6 {
		t.Errorf("Compound(2100000, 0.05, 10) = %v", got)
	}
}
