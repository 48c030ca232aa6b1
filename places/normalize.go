package places

import (
	"strings"

	"photospot/geo"
)

// osmAmenityRestaurant etc. drive the open-map tag mapping. Keys are
// tag values, grouped per tag.
var (
	osmRestaurantAmenities = map[string]bool{
		"restaurant": true, "cafe": true, "fast_food": true, "bar": true, "pub": true,
	}
	osmParkLeisure = map[string]bool{
		"park": true, "nature_reserve": true, "playground": true, "garden": true, "fitness_centre": true,
	}
	osmLandmarkTourism = map[string]bool{
		"hotel": true, "museum": true, "attraction": true, "viewpoint": true, "gallery": true,
	}
	osmLandmarkHistoric = map[string]bool{
		"monument": true, "castle": true, "ruins": true, "memorial": true,
	}
	osmNatural = map[string]bool{
		"peak": true, "volcano": true, "beach": true, "coastline": true, "geyser": true, "hot_spring": true,
	}
)

// Commercial type lists. First match wins in the order checked below.
var (
	commercialRestaurantTypes = map[string]bool{
		"restaurant": true, "food": true, "meal_takeaway": true, "meal_delivery": true,
		"cafe": true, "bakery": true, "bar": true,
	}
	commercialStoreTypes = map[string]bool{
		"store": true, "supermarket": true, "shopping_mall": true, "department_store": true,
		"convenience_store": true, "clothing_store": true,
	}
	commercialParkTypes = map[string]bool{
		"park": true, "campground": true, "rv_park": true, "tourist_attraction": true, "amusement_park": true,
	}
	commercialNaturalTypes = map[string]bool{
		"natural_feature": true, "establishment": true, "point_of_interest": true,
	}
)

const maxKeywordTags = 3

// Normalize converts a raw provider record into a NormalizedPOI. The
// boolean reports whether the record was usable; records without a name
// are dropped.
func Normalize(r RawRecord, queryLat, queryLng float64) (NormalizedPOI, bool) {
	switch {
	case r.OSM != nil:
		return normalizeOSM(r.OSM, queryLat, queryLng)
	case r.Commercial != nil:
		return normalizeCommercial(r.Commercial, queryLat, queryLng)
	}
	return NormalizedPOI{}, false
}

func normalizeOSM(e *OSMElement, queryLat, queryLng float64) (NormalizedPOI, bool) {
	name := e.Tags["name"]
	if name == "" {
		return NormalizedPOI{}, false
	}

	lat, lng := e.Coords()
	category := CategoryForOSMTags(e.Tags)

	keywords := []string{strings.ToLower(name), category}
	count := 0
	for _, key := range []string{"amenity", "shop", "leisure", "tourism", "historic", "natural", "cuisine"} {
		if count >= maxKeywordTags {
			break
		}
		if v := e.Tags[key]; v != "" {
			keywords = append(keywords, strings.ToLower(v))
			count++
		}
	}

	poi := NormalizedPOI{
		Name:           name,
		Category:       category,
		Lat:            lat,
		Lng:            lng,
		DistanceMiles:  geo.Miles(queryLat, queryLng, lat, lng),
		VisualKeywords: dedupe(keywords),
		Source:         SourceOpenMap,
	}
	poi.HasOceanView, poi.HasMountainView, poi.HasWaterFeature = viewFlags(poi.VisualKeywords)
	return poi, true
}

func normalizeCommercial(p *CommercialPlace, queryLat, queryLng float64) (NormalizedPOI, bool) {
	if p.Name == "" {
		return NormalizedPOI{}, false
	}

	lat, lng := p.Geometry.Location.Lat, p.Geometry.Location.Lng
	category := CategoryForCommercialTypes(p.Types)

	keywords := []string{strings.ToLower(p.Name), category}
	for i, t := range p.Types {
		if i >= maxKeywordTags {
			break
		}
		keywords = append(keywords, strings.ToLower(t))
	}

	poi := NormalizedPOI{
		Name:           p.Name,
		Category:       category,
		Lat:            lat,
		Lng:            lng,
		DistanceMiles:  geo.Miles(queryLat, queryLng, lat, lng),
		VisualKeywords: dedupe(keywords),
		Source:         SourceCommercial,
		Rating:         p.Rating,
		RatingCount:    p.Ratings,
	}
	poi.HasOceanView, poi.HasMountainView, poi.HasWaterFeature = viewFlags(poi.VisualKeywords)
	return poi, true
}

// CategoryForOSMTags maps an open-map tag bag onto the canonical
// category enum. Unknown tags always yield CategoryPOI.
func CategoryForOSMTags(tags map[string]string) string {
	switch {
	case osmRestaurantAmenities[tags["amenity"]]:
		return CategoryRestaurant
	case tags["shop"] != "":
		return CategoryStore
	case osmParkLeisure[tags["leisure"]]:
		return CategoryPark
	case osmLandmarkTourism[tags["tourism"]], osmLandmarkHistoric[tags["historic"]]:
		return CategoryLandmark
	case osmNatural[tags["natural"]]:
		return CategoryNaturalLandmark
	}
	return CategoryPOI
}

// CategoryForCommercialTypes maps a commercial type list onto the
// canonical category enum.
func CategoryForCommercialTypes(types []string) string {
	for _, t := range types {
		if commercialRestaurantTypes[t] {
			return CategoryRestaurant
		}
	}
	for _, t := range types {
		if commercialStoreTypes[t] {
			return CategoryStore
		}
	}
	for _, t := range types {
		if commercialParkTypes[t] {
			return CategoryPark
		}
	}
	for _, t := range types {
		if commercialNaturalTypes[t] {
			return CategoryNaturalLandmark
		}
	}
	return CategoryPOI
}

// Merge combines both providers' normalized lists. Commercial records
// take precedence; an open-map record is appended only when no
// commercial record shares its name, compared case-insensitively.
func Merge(commercial, openMap []NormalizedPOI) []NormalizedPOI {
	merged := make([]NormalizedPOI, 0, len(commercial)+len(openMap))
	seen := make(map[string]bool, len(commercial))

	for _, p := range commercial {
		merged = append(merged, p)
		seen[strings.ToLower(p.Name)] = true
	}
	for _, p := range openMap {
		if seen[strings.ToLower(p.Name)] {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// viewFlags derives the scene-agreement booleans from the keyword bag.
func viewFlags(keywords []string) (ocean, mountain, water bool) {
	joined := strings.Join(keywords, " ")
	ocean = containsAny(joined, "ocean", "beach", "coast", "bay", "sea")
	mountain = containsAny(joined, "mountain", "peak", "summit", "volcano", "viewpoint")
	water = containsAny(joined, "water", "geyser", "spring", "lake", "river", "waterfall", "fountain")
	return
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
