package neighborhood

var zoneLabels = map[string]string{
	"atlantic_seaboard": "Atlantic Seaboard",
	"city_bowl":         "City Bowl",
	"eastern":           "Southern/Eastern",
	"south_peninsula":   "South Peninsula",
	"west_coast":        "West Coast",
}

// ZoneLabel returns the display name of a zone, or the zone itself when it
// has none.
func ZoneLabel(zone string) string {
	if label, ok := zoneLabels[zone]; ok {
		return label
	}
	return zone
}

// Band classifies a neighborhood by median resale price per m².
type Band int

const (
	BandEntry Band = iota
	BandModerate
	BandMid
	BandUpper
	BandPrime
	BandLuxury
)

// UnknownResalePrice stands in for neighborhoods without price data.
const UnknownResalePrice = 30000.0

var bandFloors = []struct {
	floor float64
	band  Band
}{
	{140000, BandLuxury},
	{100000, BandPrime},
	{70000, BandUpper},
	{50000, BandMid},
	{35000, BandModerate},
}

// PriceBand returns the band for a median resale price per m².
func PriceBand(medianResale float64) Band {
	for _, b := range bandFloors {
		if medianResale > b.floor {
			return b.band
		}
	}
	return BandEntry
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandModerate:
		return "moderate"
	case BandMid:
		return "mid"
	case BandUpper:
		return "upper"
	case BandPrime:
		return "prime"
	case BandLuxury:
		return "luxury"
	default:
		return "entry"
	}
}

// Band returns the neighborhood's price band.
func (n Neighborhood) Band() Band {
	if n.Resale.Median <= 0 {
		return PriceBand(UnknownResalePrice)
	}
	return PriceBand(n.Resale.Median)
}
