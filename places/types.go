// Package places wraps the two nearby-search providers and normalizes
// their records into a single canonical POI shape.
package places

import "context"

// Canonical POI categories. Unknown provider tags map to CategoryPOI.
const (
	CategoryRestaurant      = "restaurant"
	CategoryStore           = "store"
	CategoryPark            = "park"
	CategoryLandmark        = "landmark"
	CategoryNaturalLandmark = "natural_landmark"
	CategoryPOI             = "poi"
)

// POI sources.
const (
	SourceOpenMap    = "open-map"
	SourceCommercial = "commercial-places"
)

// OSMElement is a raw Overpass record. Ways carry coordinates in Center.
type OSMElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *OSMCenter        `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type OSMCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coords returns lat/lon, using center for ways.
func (e *OSMElement) Coords() (float64, float64) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon
	}
	return 0, 0
}

// CommercialPlace is a raw record from the commercial places provider.
type CommercialPlace struct {
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Rating   float64  `json:"rating"`
	Ratings  int      `json:"user_ratings_total"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// RawRecord is a provider-specific record. Exactly one variant is set.
type RawRecord struct {
	OSM        *OSMElement
	Commercial *CommercialPlace
}

// NormalizedPOI is the canonical record every provider converges on.
// Distance is always computed from the query point, never trusted from
// the provider.
type NormalizedPOI struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	DistanceMiles   float64  `json:"distance_miles"`
	VisualKeywords  []string `json:"visual_keywords"`
	HasOceanView    bool     `json:"has_ocean_view"`
	HasMountainView bool     `json:"has_mountain_view"`
	HasWaterFeature bool     `json:"has_water_feature"`
	Source          string   `json:"source"`
	Rating          float64  `json:"rating,omitempty"`
	RatingCount     int      `json:"rating_count,omitempty"`
}

// Provider is a nearby-search backend. Implementations must be
// fail-soft: network errors surface as an error here but the caller
// degrades them to an empty result.
type Provider interface {
	Name() string
	FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, categoryHint string) ([]RawRecord, error)
}
