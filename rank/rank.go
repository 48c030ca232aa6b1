// Package rank scores matched POIs and produces the ranked, confidence
// banded result list. Everything here is a pure function of its inputs.
package rank

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"photospot/match"
	"photospot/places"
	"photospot/vision"
)

// MaxResults caps the ranked list.
const MaxResults = 10

// Confidence bands by score.
const (
	highThreshold   = 70
	mediumThreshold = 40
)

// RankedPOI is a matched POI with its score, confidence band, and a
// human-readable reason string.
type RankedPOI struct {
	match.MatchedPOI
	Score           int    `json:"score"`
	Confidence      string `json:"confidence"`
	RelevanceReason string `json:"relevance_reason"`
}

// BestMatch is the top-ranked POI, or nil when the list is empty.
type BestMatch struct {
	Name       string `json:"name"`
	Confidence string `json:"confidence"`
}

// Rank scores every POI against the scene, sorts by confidence band,
// then score, then ascending distance, and truncates to max entries.
// Pass max <= 0 for the default cap.
func Rank(scene vision.SceneAnalysis, pois []match.MatchedPOI, max int) []RankedPOI {
	if max <= 0 {
		max = MaxResults
	}

	ranked := make([]RankedPOI, 0, len(pois))
	for _, poi := range pois {
		score, reasons := scorePOI(scene, poi)
		ranked = append(ranked, RankedPOI{
			MatchedPOI:      poi,
			Score:           score,
			Confidence:      band(score),
			RelevanceReason: strings.Join(reasons, ", "),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if a, b := confidenceRank(ranked[i].Confidence), confidenceRank(ranked[j].Confidence); a != b {
			return a > b
		}
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// Best returns the first ranked entry, or nil for an empty list.
func Best(ranked []RankedPOI) *BestMatch {
	if len(ranked) == 0 {
		return nil
	}
	return &BestMatch{Name: ranked[0].Name, Confidence: ranked[0].Confidence}
}

func scorePOI(scene vision.SceneAnalysis, poi match.MatchedPOI) (int, []string) {
	score := 0.0
	var reasons []string

	switch d := poi.DistanceMiles; {
	case d < 0.1:
		score += 50
	case d < 0.25:
		score += 30
	case d < 0.5:
		score += 20
	case d < 1.0:
		score += 10
	}
	if poi.DistanceMiles < 1.0 {
		reasons = append(reasons, fmt.Sprintf("%.2f miles away", poi.DistanceMiles))
	}

	nameMatch := match.IsSet(poi.BusinessNameMatch)
	categoryMatch := match.IsSet(poi.CategoryMatch)
	keywordMatch := match.IsSet(poi.KeywordMatch)

	if nameMatch {
		score += 50
		reasons = append(reasons, "business name matches")
	}
	if categoryMatch {
		score += 30
		reasons = append(reasons, "category matches the scene")
	}
	if keywordMatch {
		score += 20
		reasons = append(reasons, "matches visual keywords")
	}

	var visual []string
	if scene.HasOceanView && poi.HasOceanView {
		score += 15
		visual = append(visual, "ocean view")
	}
	if scene.HasMountainView && poi.HasMountainView {
		score += 15
		visual = append(visual, "mountain view")
	}
	if scene.HasWaterFeature && poi.HasWaterFeature {
		score += 15
		visual = append(visual, "water feature")
	}

	// Intentionally reinforces the category_match bonus above; the
	// doubled-up weighting is pinned by tests.
	if scene.SceneType == poi.Category {
		score += 25
	}

	if poi.Source == places.SourceCommercial {
		multiplier := 1.1
		switch {
		case nameMatch && categoryMatch:
			multiplier = 1.3
		case nameMatch:
			multiplier = 1.0
		case categoryMatch:
			multiplier = 0.6
		}
		score = math.Round(score * multiplier)
		if poi.Rating >= 4.5 {
			score += 5
		}
	}

	reasons = append(reasons, visual...)
	return int(score), reasons
}

func band(score int) string {
	switch {
	case score >= highThreshold:
		return "high"
	case score >= mediumThreshold:
		return "medium"
	}
	return "low"
}

func confidenceRank(confidence string) int {
	switch confidence {
	case "high":
		return 3
	case "medium":
		return 2
	}
	return 1
}
