// Package neighborhood loads the neighborhood price and rent table and the
// optional listing overrides that feed the forecasting engine.
package neighborhood

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/iwvelando/property-forecast/pkg/property"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no data exists for an identifier. Callers
// should treat it as "no data available" rather than a failure.
var ErrNotFound = errors.New("not found")

// PriceRange is a price per m² range.
type PriceRange struct {
	Min    float64 `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	Max    float64 `json:"max" yaml:"max"`
}

// Rent is the long-term rent per m² per month.
type Rent struct {
	Median float64 `json:"median" yaml:"median"`
}

// ShortTerm is the Airbnb market of a neighborhood.
type ShortTerm struct {
	NightlyRate float64 `json:"nightlyRate" yaml:"nightlyRate"`
	Occupancy   float64 `json:"occupancy" yaml:"occupancy"` // percent
}

// Neighborhood is one row of the table.
type Neighborhood struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Zone           string     `json:"zone" yaml:"zone"`
	NewDevelopment PriceRange `json:"newDevelopment" yaml:"newDevelopment"`
	Resale         PriceRange `json:"resale" yaml:"resale"`
	LongTermRent   Rent       `json:"longTermRent" yaml:"longTermRent"`
	Airbnb         ShortTerm  `json:"airbnb" yaml:"airbnb"`
}

// Listing is a specific property on the market that overrides the
// neighborhood medians.
type Listing struct {
	ID           string  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	URL          string  `json:"url" yaml:"url"`
	Neighborhood string  `json:"neighborhood" yaml:"neighborhood"`
	Price        float64 `json:"price" yaml:"price"`
	SizeSqm      float64 `json:"sizeSqm" yaml:"sizeSqm"`
}

// Table holds every neighborhood and listing, keyed by id.
type Table struct {
	Neighborhoods map[string]Neighborhood `json:"neighborhoods" yaml:"neighborhoods"`
	Listings      map[string]Listing      `json:"listings,omitempty" yaml:"listings,omitempty"`
}

type listingsFile struct {
	Listings []Listing `yaml:"listings"`
}

// Load reads a neighborhood table from a JSON or YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read neighborhood data: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a neighborhood table. JSON documents are valid YAML.
func Parse(r io.Reader) (*Table, error) {
	var table Table
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to parse neighborhood data: %w", err)
	}
	if table.Neighborhoods == nil {
		table.Neighborhoods = make(map[string]Neighborhood)
	}
	for id, n := range table.Neighborhoods {
		n.ID = id
		table.Neighborhoods[id] = n
	}
	return &table, nil
}

// LoadListings merges a listings file into the table.
func (t *Table) LoadListings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read listings: %w", err)
	}

	var file listingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse listings: %w", err)
	}

	if t.Listings == nil {
		t.Listings = make(map[string]Listing, len(file.Listings))
	}
	for _, l := range file.Listings {
		if l.ID == "" {
			return fmt.Errorf("listing %q has no id", l.Title)
		}
		t.Listings[l.ID] = l
	}
	return nil
}

// Lookup returns the neighborhood with the given id.
func (t *Table) Lookup(id string) (Neighborhood, error) {
	n, ok := t.Neighborhoods[id]
	if !ok {
		return Neighborhood{}, fmt.Errorf("neighborhood %q: %w", id, ErrNotFound)
	}
	return n, nil
}

// Listing returns the listing with the given id.
func (t *Table) Listing(id string) (Listing, error) {
	l, ok := t.Listings[id]
	if !ok {
		return Listing{}, fmt.Errorf("listing %q: %w", id, ErrNotFound)
	}
	return l, nil
}

// ListingFor returns the listing with the given id, rejecting one that
// belongs to a different neighborhood than n.
func (t *Table) ListingFor(n Neighborhood, id string) (Listing, error) {
	l, err := t.Listing(id)
	if err != nil {
		return Listing{}, err
	}
	if l.Neighborhood != "" && l.Neighborhood != n.ID {
		return Listing{}, fmt.Errorf("%w: listing %q is in %q, not %q",
			validation.ErrInvalidInput, l.ID, l.Neighborhood, n.ID)
	}
	return l, nil
}

// IDs returns the neighborhood ids in sorted order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.Neighborhoods))
	for id := range t.Neighborhoods {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Profile converts the row into the rental profile the engine consumes.
func (n Neighborhood) Profile() property.RentalProfile {
	return property.RentalProfile{
		LongTermRentPerSqm: n.LongTermRent.Median,
		AirbnbNightlyRate:  n.Airbnb.NightlyRate,
		AirbnbOccupancyPct: n.Airbnb.Occupancy,
		Zone:               n.Zone,
	}
}

// PricePerSqm returns the median price per m² for the purchase type.
func (n Neighborhood) PricePerSqm(t property.PurchaseType) float64 {
	if t == property.New {
		return n.NewDevelopment.Median
	}
	return n.Resale.Median
}

// ResolveProperty builds the property input for a neighborhood. A listing's
// own price and size win over the median price per m² times size. The
// listing is ignored when it belongs to another neighborhood.
func (n Neighborhood) ResolveProperty(purchaseType property.PurchaseType, sizeSqm float64, listing *Listing) property.Input {
	in := property.Input{
		SizeSqm:      sizeSqm,
		PurchaseType: purchaseType,
	}.WithDefaults()

	if listing != nil && (listing.Neighborhood == "" || listing.Neighborhood == n.ID) {
		if listing.SizeSqm > 0 {
			in.SizeSqm = listing.SizeSqm
		}
		if listing.Price > 0 {
			in.PurchasePrice = listing.Price
			return in
		}
	}

	in.PurchasePrice = n.PricePerSqm(in.PurchaseType) * in.SizeSqm
	return in
}
