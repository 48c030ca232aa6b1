package vision

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Parse extracts a SceneAnalysis from raw model text. It tries, in
// order: a fenced code block holding a JSON object, a bare {...} span,
// and finally a low-confidence keyword sniff of the text itself.
func Parse(text string) SceneAnalysis {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		if scene, ok := parseJSON(m[1]); ok {
			return scene
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if scene, ok := parseJSON(text[start : end+1]); ok {
			return scene
		}
	}

	return sniff(text)
}

func parseJSON(raw string) (SceneAnalysis, bool) {
	var scene SceneAnalysis
	if err := json.Unmarshal([]byte(raw), &scene); err != nil {
		return SceneAnalysis{}, false
	}

	scene.SceneType = strings.ToLower(strings.TrimSpace(scene.SceneType))
	if scene.SceneType == "" {
		scene.SceneType = SceneUnknown
	}
	scene.Confidence = strings.ToLower(strings.TrimSpace(scene.Confidence))
	switch scene.Confidence {
	case "high", "medium", "low":
	default:
		scene.Confidence = "medium"
	}
	scene.LikelyCategories = NormalizeCategories(scene.LikelyCategories)
	return scene, true
}

// sniff builds a low-confidence stub by substring search over the raw
// text when no JSON could be recovered.
func sniff(text string) SceneAnalysis {
	lower := strings.ToLower(text)

	sceneType := SceneUnknown
	switch {
	case containsAny(lower, "restaurant", "food", "dining"):
		sceneType = SceneRestaurant
	case containsAny(lower, "mountain", "geyser", "nature"):
		sceneType = SceneNaturalLandmark
	case containsAny(lower, "store", "shop", "retail"):
		sceneType = SceneStore
	}

	return SceneAnalysis{
		SceneType:   sceneType,
		Confidence:  "low",
		Description: strings.TrimSpace(text),
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
