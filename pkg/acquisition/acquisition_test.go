package acquisition

import (
	"math"
	"testing"
)

func TestTransferDuty(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected float64
	}{
		{"below threshold", 1000000, 0},
		{"at threshold", 1210000, 0},
		{"first band", 1500000, 8700},
		{"first band ceiling", 1663800, 13614},
		{"second band", 2100000, 39786},
		{"second band ceiling", 2329500, 53556},
		{"third band", 2500000, 67196},
		{"third band ceiling", 2994000, 106716},
		{"top band", 5000000, 327376},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TransferDuty(tt.price)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("TransferDuty(%.0f) = %.4f, expected %.4f", tt.price, result, tt.expected)
			}
		})
	}
}

func TestTransferDutyContinuousAndMonotonic(t *testing.T) {
	for _, b := range transferDutyBrackets {
		below := TransferDuty(b.Floor)
		above := TransferDuty(b.Floor + 0.01)
		if above < below {
			t.Errorf("duty decreases across boundary %.0f: %.4f -> %.4f", b.Floor, below, above)
		}
		if above-below > 0.01 {
			t.Errorf("duty jumps at boundary %.0f: %.4f -> %.4f", b.Floor, below, above)
		}
	}

	previous := TransferDuty(0)
	for price := 0.0; price <= 6000000; price += 5000 {
		duty := TransferDuty(price)
		if duty < previous {
			t.Fatalf("TransferDuty is not monotonic at %.0f: %.2f < %.2f", price, duty, previous)
		}
		previous = duty
	}
}

func TestAcquisitionCost(t *testing.T) {
	if got := AcquisitionCost(2100000); math.Abs(got-84786) > 1e-6 {
		t.Errorf("AcquisitionCost(2,100,000) = %.4f, expected 84786", got)
	}
	if got := 2100000 + AcquisitionCost(2100000); math.Abs(got-2184786) > 1e-6 {
		t.Errorf("total investment = %.4f, expected 2184786", got)
	}

	b := Acquire(2100000)
	if b.TransferDuty != TransferDuty(2100000) || b.Conveyancing != 45000 || b.Total != b.TransferDuty+b.Conveyancing {
		t.Errorf("Acquire() breakdown inconsistent: %+v", b)
	}
	if b.Total != AcquisitionCost(2100000) {
		t.Errorf("Acquire().Total = %.4f, AcquisitionCost = %.4f", b.Total, AcquisitionCost(2100000))
	}
}

func TestSale(t *testing.T) {
	tests := []struct {
		name          string
		salePrice     float64
		purchasePrice float64
		expectCGT     bool
	}{
		{"loss uses withholding", 1800000, 2100000, false},
		{"small gain uses withholding", 2200000, 2100000, false},
		{"large gain uses CGT", 4000000, 2100000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sale(tt.salePrice, tt.purchasePrice)
			if math.Abs(s.AgentCommission-tt.salePrice*0.0805) > 1e-6 {
				t.Errorf("AgentCommission = %.4f", s.AgentCommission)
			}
			if math.Abs(s.Withholding-tt.salePrice*0.075) > 1e-6 {
				t.Errorf("Withholding = %.4f", s.Withholding)
			}
			if tt.expectCGT && s.TaxAtSale != s.CGT {
				t.Errorf("expected CGT %.4f to dominate, tax at sale %.4f", s.CGT, s.TaxAtSale)
			}
			if !tt.expectCGT && s.TaxAtSale != s.Withholding {
				t.Errorf("expected withholding %.4f to dominate, tax at sale %.4f", s.Withholding, s.TaxAtSale)
			}
			if s.Total != SaleCost(tt.salePrice, tt.purchasePrice) {
				t.Errorf("Sale().Total = %.4f differs from SaleCost", s.Total)
			}
		})
	}

	loss := Sale(1000000, 2000000)
	if loss.CGT != 0 {
		t.Errorf("CGT on a loss = %.4f, expected 0", loss.CGT)
	}
	if loss.Gain != -1000000 {
		t.Errorf("Gain = %.4f, expected -1000000", loss.Gain)
	}
}

func TestSaleCostFloor(t *testing.T) {
	for _, purchase := range []float64{500000, 2100000, 8000000} {
		for sale := 100000.0; sale <= 10000000; sale += 250000 {
			floor := sale*0.0805 + sale*0.075
			if got := SaleCost(sale, purchase); got < floor-1e-6 {
				t.Fatalf("SaleCost(%.0f, %.0f) = %.2f below floor %.2f", sale, purchase, got, floor)
			}
		}
	}
}
