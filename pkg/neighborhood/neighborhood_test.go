package neighborhood

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
)

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := Load(filepath.Join("testdata", "prices.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := table.LoadListings(filepath.Join("testdata", "listings.yaml")); err != nil {
		t.Fatalf("LoadListings() error = %v", err)
	}
	return table
}

func TestLoadAndLookup(t *testing.T) {
	table := loadTestTable(t)

	ids := table.IDs()
	expected := []string{"bloubergstrand", "sea_point", "woodstock"}
	if strings.Join(ids, ",") != strings.Join(expected, ",") {
		t.Errorf("IDs() = %v, expected %v", ids, expected)
	}

	n, err := table.Lookup("sea_point")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if n.ID != "sea_point" || n.Name != "Sea Point" {
		t.Errorf("unexpected neighborhood: %+v", n)
	}
	if n.PricePerSqm(property.Resale) != 60000 || n.PricePerSqm(property.New) != 85000 {
		t.Errorf("PricePerSqm() = %.0f/%.0f", n.PricePerSqm(property.Resale), n.PricePerSqm(property.New))
	}

	profile := n.Profile()
	if profile.LongTermRentPerSqm != 550 || profile.AirbnbNightlyRate != 1200 ||
		profile.AirbnbOccupancyPct != 65 || profile.Zone != "atlantic_seaboard" {
		t.Errorf("Profile() = %+v", profile)
	}
}

func TestLookupNotFound(t *testing.T) {
	table := loadTestTable(t)

	if _, err := table.Lookup("atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := table.Listing("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for listing, got %v", err)
	}
}

func TestListingFor(t *testing.T) {
	table := loadTestTable(t)
	seaPoint, _ := table.Lookup("sea_point")

	l, err := table.ListingFor(seaPoint, "sp-001")
	if err != nil {
		t.Fatalf("ListingFor() error = %v", err)
	}
	if l.Price != 2350000 {
		t.Errorf("ListingFor() = %+v", l)
	}

	if _, err := table.ListingFor(seaPoint, "wd-014"); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a listing in another neighborhood, got %v", err)
	}
	if _, err := table.ListingFor(seaPoint, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveProperty(t *testing.T) {
	table := loadTestTable(t)
	seaPoint, _ := table.Lookup("sea_point")
	listing, err := table.Listing("sp-001")
	if err != nil {
		t.Fatalf("Listing() error = %v", err)
	}
	foreign, _ := table.Listing("wd-014")

	tests := []struct {
		name          string
		purchaseType  property.PurchaseType
		size          float64
		listing       *Listing
		expectedPrice float64
		expectedSize  float64
	}{
		{"median resale", property.Resale, 35, nil, 2100000, 35},
		{"median new", property.New, 35, nil, 2975000, 35},
		{"default size", property.Resale, 0, nil, 2100000, 35},
		{"listing overrides", property.Resale, 35, &listing, 2350000, 38},
		{"listing from another neighborhood ignored", property.Resale, 35, &foreign, 2100000, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := seaPoint.ResolveProperty(tt.purchaseType, tt.size, tt.listing)
			if in.PurchasePrice != tt.expectedPrice {
				t.Errorf("PurchasePrice = %.2f, expected %.2f", in.PurchasePrice, tt.expectedPrice)
			}
			if in.SizeSqm != tt.expectedSize {
				t.Errorf("SizeSqm = %.2f, expected %.2f", in.SizeSqm, tt.expectedSize)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("neighborhoods: [unclosed")); err == nil {
		t.Error("expected error for malformed data")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "listings.yaml")
	if err := os.WriteFile(path, []byte("listings:\n  - title: no id\n"), 0600); err != nil {
		t.Fatalf("failed to write listings: %v", err)
	}
	table := &Table{}
	if err := table.LoadListings(path); err == nil {
		t.Error("expected error for listing without id")
	}
}

func TestZoneLabel(t *testing.T) {
	tests := map[string]string{
		"atlantic_seaboard": "Atlantic Seaboard",
		"city_bowl":         "City Bowl",
		"eastern":           "Southern/Eastern",
		"south_peninsula":   "South Peninsula",
		"west_coast":        "West Coast",
		"northern_suburbs":  "northern_suburbs",
	}
	for zone, expected := range tests {
		if got := ZoneLabel(zone); got != expected {
			t.Errorf("ZoneLabel(%q) = %q, expected %q", zone, got, expected)
		}
	}
}

func TestPriceBand(t *testing.T) {
	tests := []struct {
		price    float64
		expected Band
	}{
		{20000, BandEntry},
		{35000, BandEntry},
		{36000, BandModerate},
		{60000, BandMid},
		{70001, BandUpper},
		{120000, BandPrime},
		{150000, BandLuxury},
	}
	for _, tt := range tests {
		if got := PriceBand(tt.price); got != tt.expected {
			t.Errorf("PriceBand(%.0f) = %s, expected %s", tt.price, got, tt.expected)
		}
	}

	if got := (Neighborhood{}).Band(); got != BandEntry {
		t.Errorf("Band() without data = %s, expected entry", got)
	}
}
