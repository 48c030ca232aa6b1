package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const commercialSearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// commercialTypeFilter maps a scene category hint onto the provider's
// type filter parameter.
var commercialTypeFilter = map[string]string{
	CategoryRestaurant:      "restaurant",
	CategoryStore:           "store",
	CategoryPark:            "park",
	CategoryLandmark:        "tourist_attraction",
	CategoryNaturalLandmark: "natural_feature",
}

// CommercialProvider queries the commercial places provider.
type CommercialProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewCommercialProvider(apiKey string) *CommercialProvider {
	return &CommercialProvider{
		APIKey:  apiKey,
		BaseURL: commercialSearchURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *CommercialProvider) Name() string { return SourceCommercial }

func (p *CommercialProvider) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, categoryHint string) ([]RawRecord, error) {
	if p.APIKey == "" {
		// No key means the provider is simply absent, not an error.
		return nil, nil
	}

	params := url.Values{}
	params.Add("location", fmt.Sprintf("%.6f,%.6f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", radiusMeters))
	params.Add("key", p.APIKey)
	if t, ok := commercialTypeFilter[categoryHint]; ok {
		params.Add("type", t)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", p.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("places HTTP %d", resp.StatusCode)
	}

	var data struct {
		Results []CommercialPlace `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("places decode: %w", err)
	}

	records := make([]RawRecord, 0, len(data.Results))
	for i := range data.Results {
		records = append(records, RawRecord{Commercial: &data.Results[i]})
	}
	return records, nil
}
