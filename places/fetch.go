package places

import (
	"context"
	"log"
	"sync"
)

// FetchAndMerge queries every provider concurrently, normalizes the raw
// records, and merges them with commercial precedence. A provider
// failure is logged and degrades to an empty contribution; it never
// propagates. The call returns once the slowest provider finishes.
func FetchAndMerge(ctx context.Context, providers []Provider, lat, lng float64, radiusMeters int, categoryHint string) []NormalizedPOI {
	results := make([][]NormalizedPOI, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			raw, err := p.FetchNearby(ctx, lat, lng, radiusMeters, categoryHint)
			if err != nil {
				log.Printf("[places] %s fetch failed: %v", p.Name(), err)
				return
			}
			pois := make([]NormalizedPOI, 0, len(raw))
			for _, r := range raw {
				if poi, ok := Normalize(r, lat, lng); ok {
					pois = append(pois, poi)
				}
			}
			results[i] = pois
		}(i, p)
	}
	wg.Wait()

	var commercial, openMap []NormalizedPOI
	for _, pois := range results {
		for _, poi := range pois {
			if poi.Source == SourceCommercial {
				commercial = append(commercial, poi)
			} else {
				openMap = append(openMap, poi)
			}
		}
	}

	merged := Merge(commercial, openMap)
	log.Printf("[places] %d candidates near %.4f,%.4f (%d commercial, %d open-map)",
		len(merged), lat, lng, len(commercial), len(openMap))
	return merged
}
