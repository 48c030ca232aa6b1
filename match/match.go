// Package match cross-references a scene analysis against candidate
// POIs, attaching fuzzy name and keyword match flags.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"photospot/places"
	"photospot/vision"
)

// NameThreshold is the maximum normalized edit distance accepted as a
// business name match (0 = exact, 1 = no similarity).
const NameThreshold = 0.4

// Similarity scores how different two strings are, from 0 (identical)
// to 1 (nothing in common).
type Similarity interface {
	Dissimilarity(a, b string) float64
}

// LevenshteinRatio implements Similarity as edit distance divided by
// the longer string's length.
type LevenshteinRatio struct{}

func (LevenshteinRatio) Dissimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// MatchedPOI is a normalized POI with match flags attached. Nil flags
// mean the matcher never ran, which is observably different from a
// computed false.
type MatchedPOI struct {
	places.NormalizedPOI
	BusinessNameMatch *bool `json:"business_name_match,omitempty"`
	KeywordMatch      *bool `json:"keyword_match,omitempty"`
	CategoryMatch     *bool `json:"category_match,omitempty"`
}

// Signals returns the candidate name strings and keyword strings the
// matcher works from, with empties dropped.
func Signals(scene vision.SceneAnalysis) (names, keywords []string) {
	if scene.BusinessName != "" {
		names = append(names, scene.BusinessName)
	}
	for _, t := range scene.VisibleText {
		if t != "" {
			names = append(names, t)
		}
	}
	for _, k := range scene.SearchKeywords {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	for _, e := range scene.VisualElements {
		if e != "" {
			keywords = append(keywords, e)
		}
	}
	return names, keywords
}

// HasSignals reports whether the matcher has anything to work from.
func HasSignals(scene vision.SceneAnalysis) bool {
	names, keywords := Signals(scene)
	return len(names) > 0 || len(keywords) > 0
}

// Apply attaches name and keyword match flags to every POI. When the
// scene carries no signals at all, the POIs pass through untouched and
// the flags stay nil. Category matching is left to the caller since it
// is plain enum equality against the scene type.
func Apply(sim Similarity, scene vision.SceneAnalysis, pois []places.NormalizedPOI) []MatchedPOI {
	names, keywords := Signals(scene)

	matched := make([]MatchedPOI, len(pois))
	for i, poi := range pois {
		matched[i] = MatchedPOI{NormalizedPOI: poi}
	}
	if len(names) == 0 && len(keywords) == 0 {
		return matched
	}

	for i := range matched {
		poi := &matched[i]

		nameMatch := false
		for _, candidate := range names {
			if sim.Dissimilarity(candidate, poi.Name) <= NameThreshold {
				nameMatch = true
				break
			}
		}

		haystack := strings.ToLower(poi.Name + " " + strings.Join(poi.VisualKeywords, " "))
		keywordMatch := false
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				keywordMatch = true
				break
			}
		}

		poi.BusinessNameMatch = boolPtr(nameMatch)
		poi.KeywordMatch = boolPtr(keywordMatch)
	}
	return matched
}

func boolPtr(b bool) *bool { return &b }

// IsSet reports a flag's value, treating nil as false.
func IsSet(flag *bool) bool { return flag != nil && *flag }
