package places

import (
	"strings"
	"testing"
)

func TestCategoryForOSMTags(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{"restaurant amenity", map[string]string{"amenity": "restaurant"}, CategoryRestaurant},
		{"cafe amenity", map[string]string{"amenity": "cafe"}, CategoryRestaurant},
		{"any shop", map[string]string{"shop": "bakery"}, CategoryStore},
		{"park leisure", map[string]string{"leisure": "nature_reserve"}, CategoryPark},
		{"museum tourism", map[string]string{"tourism": "museum"}, CategoryLandmark},
		{"historic monument", map[string]string{"historic": "monument"}, CategoryLandmark},
		{"geyser", map[string]string{"natural": "geyser"}, CategoryNaturalLandmark},
		{"unknown tags", map[string]string{"highway": "residential"}, CategoryPOI},
		{"empty tags", map[string]string{}, CategoryPOI},
		{"nil tags", nil, CategoryPOI},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CategoryForOSMTags(tc.tags); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCategoryForCommercialTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"food type", []string{"food", "point_of_interest"}, CategoryRestaurant},
		{"supermarket", []string{"supermarket"}, CategoryStore},
		{"campground", []string{"campground"}, CategoryPark},
		{"natural feature", []string{"natural_feature"}, CategoryNaturalLandmark},
		{"establishment only", []string{"establishment"}, CategoryNaturalLandmark},
		{"unknown", []string{"plumber"}, CategoryPOI},
		{"empty", nil, CategoryPOI},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CategoryForCommercialTypes(tc.types); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeOSMDropsUnnamed(t *testing.T) {
	r := RawRecord{OSM: &OSMElement{Lat: 44.46, Lon: -110.83, Tags: map[string]string{"amenity": "restaurant"}}}
	if _, ok := Normalize(r, 44.46, -110.83); ok {
		t.Error("unnamed record should be dropped")
	}
}

func TestNormalizeOSMComputesDistance(t *testing.T) {
	r := RawRecord{OSM: &OSMElement{
		Lat: 44.4605, Lon: -110.8281,
		Tags: map[string]string{"name": "Old Faithful Geyser", "natural": "geyser"},
	}}
	poi, ok := Normalize(r, 44.4605, -110.8281)
	if !ok {
		t.Fatal("expected usable record")
	}
	if poi.DistanceMiles != 0 {
		t.Errorf("distance from self = %f, want 0", poi.DistanceMiles)
	}
	if poi.Category != CategoryNaturalLandmark {
		t.Errorf("category = %q", poi.Category)
	}
	if poi.Source != SourceOpenMap {
		t.Errorf("source = %q", poi.Source)
	}
	if !poi.HasWaterFeature {
		t.Error("geyser should set the water flag")
	}
}

func TestNormalizeOSMUsesCenterForWays(t *testing.T) {
	r := RawRecord{OSM: &OSMElement{
		Type:   "way",
		Center: &OSMCenter{Lat: 44.5, Lon: -110.8},
		Tags:   map[string]string{"name": "Upper Basin Trail", "leisure": "park"},
	}}
	poi, ok := Normalize(r, 44.5, -110.8)
	if !ok {
		t.Fatal("expected usable record")
	}
	if poi.Lat != 44.5 || poi.Lng != -110.8 {
		t.Errorf("coords = %f,%f, want center coords", poi.Lat, poi.Lng)
	}
}

func TestNormalizeCommercialKeywords(t *testing.T) {
	p := &CommercialPlace{Name: "Sam's Seafood", Types: []string{"restaurant", "food", "point_of_interest", "establishment"}, Rating: 4.7}
	p.Geometry.Location.Lat = 36.1
	p.Geometry.Location.Lng = -115.2

	poi, ok := Normalize(RawRecord{Commercial: p}, 36.1, -115.2)
	if !ok {
		t.Fatal("expected usable record")
	}
	if poi.Category != CategoryRestaurant {
		t.Errorf("category = %q", poi.Category)
	}
	joined := strings.Join(poi.VisualKeywords, " ")
	if !strings.Contains(joined, "sam's seafood") {
		t.Errorf("keywords missing lowercase name: %v", poi.VisualKeywords)
	}
	// Name + category + at most 3 type strings.
	if len(poi.VisualKeywords) > 5 {
		t.Errorf("keyword bag too large: %v", poi.VisualKeywords)
	}
	if poi.Rating != 4.7 {
		t.Errorf("rating = %f", poi.Rating)
	}
}

func TestMergeCommercialPrecedence(t *testing.T) {
	commercial := []NormalizedPOI{{Name: "Sam's Seafood", Source: SourceCommercial}}
	openMap := []NormalizedPOI{
		{Name: "SAM'S SEAFOOD", Source: SourceOpenMap},
		{Name: "Harbor Grill", Source: SourceOpenMap},
	}

	merged := Merge(commercial, openMap)
	if len(merged) != 2 {
		t.Fatalf("merged length = %d, want 2", len(merged))
	}
	if merged[0].Source != SourceCommercial || merged[0].Name != "Sam's Seafood" {
		t.Errorf("first entry should be the commercial record, got %+v", merged[0])
	}
	if merged[1].Name != "Harbor Grill" {
		t.Errorf("second entry = %+v", merged[1])
	}
}

func TestDedupeKeywords(t *testing.T) {
	out := dedupe([]string{"geyser", "geyser", "", " ", "park"})
	if len(out) != 2 || out[0] != "geyser" || out[1] != "park" {
		t.Errorf("dedupe = %v", out)
	}
}
