package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// categoryHintFilters maps a scene category hint onto an Overpass tag
// filter. Without a hint we take anything named in range.
var categoryHintFilters = map[string]string{
	CategoryRestaurant:      `["amenity"~"restaurant|cafe|fast_food|bar|pub"]`,
	CategoryStore:           `["shop"]`,
	CategoryPark:            `["leisure"~"park|nature_reserve|playground|garden"]`,
	CategoryLandmark:        `["tourism"~"hotel|museum|attraction|viewpoint|gallery"]`,
	CategoryNaturalLandmark: `["natural"~"peak|volcano|beach|coastline|geyser|hot_spring"]`,
}

// OverpassProvider queries the open-map provider's Overpass endpoint.
type OverpassProvider struct {
	URL    string
	Client *http.Client
}

func NewOverpassProvider(endpoint string) *OverpassProvider {
	return &OverpassProvider{
		URL:    endpoint,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *OverpassProvider) Name() string { return SourceOpenMap }

// FetchNearby runs an around-query for named nodes and ways. Ways come
// back with "out center" so Coords() can resolve them.
func (p *OverpassProvider) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, categoryHint string) ([]RawRecord, error) {
	filter := categoryHintFilters[categoryHint]

	query := fmt.Sprintf(`
[out:json][timeout:10];
(
  node%s["name"](around:%d,%f,%f);
  way%s["name"](around:%d,%f,%f);
);
out center 30;
`, filter, radiusMeters, lat, lng, filter, radiusMeters, lat, lng)

	req, err := http.NewRequestWithContext(ctx, "POST", p.URL,
		strings.NewReader(url.Values{"data": {query}}.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("overpass HTTP %d", resp.StatusCode)
	}

	var data struct {
		Elements []OSMElement `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("overpass decode: %w", err)
	}

	records := make([]RawRecord, 0, len(data.Elements))
	for i := range data.Elements {
		records = append(records, RawRecord{OSM: &data.Elements[i]})
	}
	return records, nil
}
