// Package vision turns a photo into a structured scene description
// using a vision-capable model, with deterministic fallbacks when the
// model response is malformed or the call fails outright.
package vision

import "strings"

// Scene types produced by the analyzer.
const (
	SceneRestaurant      = "restaurant"
	SceneStore           = "store"
	ScenePark            = "park"
	SceneNaturalLandmark = "natural_landmark"
	SceneTransportation  = "transportation"
	SceneRecreation      = "recreation"
	SceneOther           = "other"
	SceneUnknown         = "unknown"
)

// SceneAnalysis is the structured interpretation of a photo. It is
// immutable after creation; on analyzer failure a fallback instance is
// substituted wholesale, never partially filled.
type SceneAnalysis struct {
	SceneType           string   `json:"scene_type"`
	Confidence          string   `json:"confidence"` // high | medium | low
	Description         string   `json:"description"`
	VisualElements      []string `json:"visual_elements"`
	LikelyCategories    []string `json:"likely_categories"`
	DistinctiveFeatures []string `json:"distinctive_features"`
	HasOceanView        bool     `json:"has_ocean_view"`
	HasMountainView     bool     `json:"has_mountain_view"`
	HasWaterFeature     bool     `json:"has_water_feature"`
	IndoorOutdoor       string   `json:"indoor_outdoor"`
	VisibleText         []string `json:"visible_text"`
	BusinessName        string   `json:"business_name"`
	SearchKeywords      []string `json:"search_keywords"`
}

// Fallback returns the minimal scene used when the vision call fails.
func Fallback() SceneAnalysis {
	return SceneAnalysis{
		SceneType:  SceneUnknown,
		Confidence: "low",
	}
}

// categoryAliases maps loose category phrases the model emits onto the
// terms the matcher and ranker understand.
var categoryAliases = map[string]string{
	"nature reserve":     "park",
	"national forest":    "park",
	"trail":              "park",
	"hiking area":        "park",
	"wildlife sanctuary": "park",
	"mountain":           "natural_feature",
	"river":              "natural_feature",
}

// NormalizeCategories lowercases, remaps loose phrases, and
// deduplicates a likely_categories list. It is idempotent.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if mapped, ok := categoryAliases[c]; ok {
			c = mapped
		}
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
