package testutil

import (
	"testing"

	"github.com/iwvelando/property-forecast/pkg/property"
)

func TestReferenceFixtures(t *testing.T) {
	in := ReferenceProperty()
	if in.PurchasePrice != 2100000 {
		t.Errorf("PurchasePrice = %.2f, expected 2100000", in.PurchasePrice)
	}
	if in.PurchaseType != property.Resale {
		t.Errorf("PurchaseType = %q, expected resale", in.PurchaseType)
	}

	profile := ReferenceProfile()
	if profile.AirbnbOccupancyPct != 65 {
		t.Errorf("AirbnbOccupancyPct = %.2f, expected 65", profile.AirbnbOccupancyPct)
	}

	financing := ReferenceFinancing()
	if financing.LoanToValue != 0 || financing.TermYears != 20 {
		t.Errorf("unexpected financing fixture: %+v", financing)
	}
}

func TestAssertClose(t *testing.T) {
	AssertClose(t, "exact", 6.0032, 6.0032)
	AssertClose(t, "within tolerance", 1000000.5, 1000000)
	AssertClose(t, "zero", 0, 0)
}
