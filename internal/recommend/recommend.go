// Package recommend turns the net yields of the competing strategies into a
// structured recommendation that a renderer can localise.
package recommend

import (
	"strings"
	"time"
)

// Category is the headline verdict.
type Category string

const (
	StrongAirbnb   Category = "StrongAirbnb"
	PreferAirbnb   Category = "PreferAirbnb"
	Similar        Category = "Similar"
	PreferLongTerm Category = "PreferLongTerm"
)

// NoteCode identifies an annotation. Renderers map codes to prose.
type NoteCode string

const (
	NoteKiteSeason        NoteCode = "kiteSeason"
	NoteSummerDemand      NoteCode = "summerDemand"
	NotePremiumFurnishing NoteCode = "premiumFurnishing"
	NoteLowOccupancy      NoteCode = "lowOccupancy"
)

// Note is one annotation. Seasonal notes carry the months of peak demand.
type Note struct {
	Code NoteCode   `json:"code"`
	From time.Month `json:"from,omitempty"`
	To   time.Month `json:"to,omitempty"`
}

// Recommendation is the result of evaluating the rules.
type Recommendation struct {
	Category   Category `json:"category"`
	YieldDelta float64  `json:"yieldDelta"`
	Notes      []Note   `json:"notes"`
}

// Rules configures which zones receive seasonal annotations.
type Rules struct {
	KiteZones     []string `json:"kiteZones" yaml:"kiteZones" mapstructure:"kiteZones"`
	BeachZones    []string `json:"beachZones" yaml:"beachZones" mapstructure:"beachZones"`
	PremiumMarker string   `json:"premiumMarker" yaml:"premiumMarker" mapstructure:"premiumMarker"`
	LowOccupancy  float64  `json:"lowOccupancy" yaml:"lowOccupancy" mapstructure:"lowOccupancy"`
}

// Yield gaps, in percentage points, separating the categories.
const (
	strongAirbnbGap = 4.0
	preferAirbnbGap = 1.5
)

// DefaultRules returns the Cape Town zone designations.
func DefaultRules() Rules {
	return Rules{
		KiteZones:     []string{"west_coast"},
		BeachZones:    []string{"atlantic_seaboard", "south_peninsula"},
		PremiumMarker: "premium",
		LowOccupancy:  0.5,
	}
}

// Recommend evaluates the rules for the given net yields (percent), Airbnb
// occupancy (fraction of the year) and zone tag.
func Recommend(longTermYield, airbnbYield, airbnbOccupancy float64, zone string) Recommendation {
	return DefaultRules().Recommend(longTermYield, airbnbYield, airbnbOccupancy, zone)
}

// Recommend evaluates r for the given inputs.
func (r Rules) Recommend(longTermYield, airbnbYield, airbnbOccupancy float64, zone string) Recommendation {
	diff := airbnbYield - longTermYield

	rec := Recommendation{
		Category:   categorize(diff),
		YieldDelta: diff,
		Notes:      []Note{},
	}

	switch {
	case contains(r.KiteZones, zone):
		rec.Notes = append(rec.Notes, Note{Code: NoteKiteSeason, From: time.November, To: time.March})
	case contains(r.BeachZones, zone):
		rec.Notes = append(rec.Notes, Note{Code: NoteSummerDemand, From: time.December, To: time.February})
	}

	if r.PremiumMarker != "" && strings.Contains(zone, r.PremiumMarker) {
		rec.Notes = append(rec.Notes, Note{Code: NotePremiumFurnishing})
	}

	if r.LowOccupancy > 0 && airbnbOccupancy < r.LowOccupancy {
		rec.Notes = append(rec.Notes, Note{Code: NoteLowOccupancy})
	}

	return rec
}

func categorize(diff float64) Category {
	switch {
	case diff > strongAirbnbGap:
		return StrongAirbnb
	case diff > preferAirbnbGap:
		return PreferAirbnb
	case diff > 0:
		return Similar
	default:
		return PreferLongTerm
	}
}

func contains(zones []string, zone string) bool {
	for _, z := range zones {
		if z == zone {
			return true
		}
	}
	return false
}
