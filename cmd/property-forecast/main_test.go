package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/internal/recommend"
	"github.com/iwvelando/property-forecast/pkg/neighborhood"
	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
)

func testData() config.DataConfig {
	dir := filepath.Join("..", "..", "pkg", "neighborhood", "testdata")
	return config.DataConfig{
		Neighborhoods: filepath.Join(dir, "prices.json"),
		Listings:      filepath.Join(dir, "listings.yaml"),
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Format: "console", Level: "debug"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"bad level", config.LoggingConfig{Level: "loud"}, "", true},
		{"bad format", config.LoggingConfig{Format: "xml"}, "", true},
		{"log file", config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "cli.log")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("initializeLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if logger != nil {
				_ = logger.Sync()
			}
		})
	}
}

func TestLoadConfigurationMissingDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	conf, err := loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("loadConfiguration() error = %v", err)
	}
	if conf.Recommendation.LowOccupancy != recommend.DefaultRules().LowOccupancy {
		t.Errorf("expected default recommendation rules, got %+v", conf.Recommendation)
	}

	if _, err := loadConfiguration(missing, true); err == nil {
		t.Error("expected an error for an explicit missing config")
	}
}

func TestLoadTable(t *testing.T) {
	table, err := loadTable(config.DataConfig{})
	if err != nil || table != nil {
		t.Fatalf("loadTable(empty) = %v, %v", table, err)
	}

	table, err = loadTable(testData())
	if err != nil {
		t.Fatalf("loadTable() error = %v", err)
	}
	if _, err := table.Listing("sp-001"); err != nil {
		t.Errorf("expected listings to be loaded: %v", err)
	}

	if _, err := loadTable(config.DataConfig{Neighborhoods: "missing.json"}); err == nil {
		t.Error("expected an error for a missing table")
	}
}

func TestBuildRequest(t *testing.T) {
	table, err := loadTable(testData())
	if err != nil {
		t.Fatalf("loadTable() error = %v", err)
	}
	conf := &config.Configuration{
		Financing: property.Financing{LoanToValue: 0.5, AnnualInterestRate: 0.1},
	}

	t.Run("neighborhood medians", func(t *testing.T) {
		req, err := buildRequest(conf, table, inputs{neighborhood: "sea_point", size: 35})
		if err != nil {
			t.Fatalf("buildRequest() error = %v", err)
		}
		if req.Property.PurchasePrice != 2100000 || req.Profile.Zone != "atlantic_seaboard" {
			t.Errorf("unexpected request %+v", req)
		}
		if req.Financing.LoanToValue != 0.5 {
			t.Errorf("expected configured financing, got %+v", req.Financing)
		}
	})

	t.Run("listing", func(t *testing.T) {
		req, err := buildRequest(conf, table, inputs{neighborhood: "sea_point", listing: "sp-001"})
		if err != nil {
			t.Fatalf("buildRequest() error = %v", err)
		}
		if req.Property.PurchasePrice != 2350000 || req.Property.SizeSqm != 38 {
			t.Errorf("expected listing price and size, got %+v", req.Property)
		}
	})

	t.Run("flags override", func(t *testing.T) {
		in := inputs{
			neighborhood: "woodstock",
			price:        1500000,
			occupancy:    40,
			ltv:          0,
			appreciation: 0.03,
			set:          map[string]bool{"price": true, "occupancy": true, "ltv": true, "appreciation": true},
		}
		req, err := buildRequest(conf, table, in)
		if err != nil {
			t.Fatalf("buildRequest() error = %v", err)
		}
		if req.Property.PurchasePrice != 1500000 || req.Profile.AirbnbOccupancyPct != 40 {
			t.Errorf("flag overrides not applied: %+v", req)
		}
		if req.Financing.LoanToValue != 0 {
			t.Errorf("explicit zero LTV should override config, got %v", req.Financing.LoanToValue)
		}
		if req.Assumptions.AppreciationRate() != 0.03 {
			t.Errorf("appreciation = %v, want 0.03", req.Assumptions.AppreciationRate())
		}
	})

	t.Run("explicit inputs", func(t *testing.T) {
		in := inputs{
			price: 2100000, rent: 550, nightly: 1200, occupancy: 65,
			set: map[string]bool{"price": true, "rent": true, "nightly": true, "occupancy": true},
		}
		req, err := buildRequest(conf, nil, in)
		if err != nil {
			t.Fatalf("buildRequest() error = %v", err)
		}
		if req.Profile.LongTermRentPerSqm != 550 || req.Profile.AirbnbNightlyRate != 1200 {
			t.Errorf("unexpected profile %+v", req.Profile)
		}
	})

	errorTests := []struct {
		name  string
		table *neighborhood.Table
		in    inputs
	}{
		{"no table", nil, inputs{neighborhood: "sea_point"}},
		{"unknown neighborhood", table, inputs{neighborhood: "atlantis"}},
		{"unknown listing", table, inputs{neighborhood: "sea_point", listing: "nope"}},
		{"listing without neighborhood", table, inputs{listing: "sp-001"}},
		{"listing in another neighborhood", table, inputs{neighborhood: "sea_point", listing: "wd-014"}},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildRequest(conf, tt.table, tt.in); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	if _, err := buildRequest(conf, table, inputs{neighborhood: "atlantis"}); !errors.Is(err, neighborhood.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := buildRequest(conf, table, inputs{neighborhood: "sea_point", listing: "wd-014"}); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for a listing in another neighborhood, got %v", err)
	}
}
