// Package engine runs the full identification pipeline: scene analysis
// in parallel with nearby search, then matching, ranking, and the
// optional context enrichment.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"photospot/config"
	"photospot/match"
	"photospot/places"
	"photospot/rank"
	"photospot/search"
	"photospot/vision"
)

const metersPerMile = 1609.34

// Location is the query point echoed back in the result.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Result is the engine's answer for one photo.
type Result struct {
	SceneType          string           `json:"scene_type"`
	SceneDescription   string           `json:"scene_description"`
	SceneKeywords      []string         `json:"scene_keywords,omitempty"`
	SearchRadiusMiles  float64          `json:"search_radius_miles"`
	POIList            []rank.RankedPOI `json:"poi_list"`
	BestMatch          *rank.BestMatch  `json:"best_match"`
	AnalysisConfidence string           `json:"analysis_confidence"`
	Timestamp          *string          `json:"timestamp"`
	SearchLocation     Location         `json:"search_location"`
	RichSearchContext  *string          `json:"rich_search_context"`
	Error              string           `json:"error,omitempty"`
}

// Engine wires the collaborators together. All fields are read-only
// after construction; concurrent Identify calls share no mutable state.
type Engine struct {
	Config    *config.Config
	Analyzer  *vision.Analyzer
	Providers []places.Provider
	Matcher   match.Similarity
	Searcher  search.TextSearcher
}

func New(cfg *config.Config, analyzer *vision.Analyzer, providers []places.Provider, searcher search.TextSearcher) *Engine {
	return &Engine{
		Config:    cfg,
		Analyzer:  analyzer,
		Providers: providers,
		Matcher:   match.LevenshteinRatio{},
		Searcher:  searcher,
	}
}

// Identify resolves the POI a photo depicts. It never returns an error
// or panics past this boundary: any failure degrades to a result with
// the Error field set.
func (e *Engine) Identify(ctx context.Context, image []byte, lat, lng float64, timestamp string) (result Result) {
	requestID := uuid.New().String()[:8]
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] %s panic: %v", requestID, r)
			result = degraded(lat, lng, timestamp, fmt.Sprintf("%v", r))
		}
	}()

	radius := e.Config.SearchRadiusMeters

	// Vision and the provider fetches are independent; run them side
	// by side and pay only for the slower of the two.
	var scene vision.SceneAnalysis
	var pois []places.NormalizedPOI

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scene = e.Analyzer.Analyze(ctx, image)
	}()
	go func() {
		defer wg.Done()
		pois = places.FetchAndMerge(ctx, e.Providers, lat, lng, radius, "")
	}()
	wg.Wait()

	// A confident scene type can narrow the radius; refetch only when
	// the wide pass found nothing and the override actually differs.
	// The refetch costs a second provider round trip after the join,
	// which only an empty wide pass ever pays for.
	if len(pois) == 0 && scene.Confidence == "high" {
		if override := e.Config.RadiusFor(scene.SceneType); override != radius {
			radius = override
			pois = places.FetchAndMerge(ctx, e.Providers, lat, lng, radius, scene.SceneType)
		}
	}

	matched := match.Apply(e.Matcher, scene, pois)
	if match.HasSignals(scene) {
		for i := range matched {
			equal := matched[i].Category == scene.SceneType
			matched[i].CategoryMatch = &equal
		}
	}

	ranked := rank.Rank(scene, matched, e.Config.MaxResults)
	best := rank.Best(ranked)

	var richContext *string
	if search.ShouldEnrich(scene, best) {
		if c := search.ContextFor(ctx, e.Searcher, lat, lng, scene); c != "" {
			richContext = &c
		}
	}

	log.Printf("[engine] %s identified %d candidates in %v (scene=%s confidence=%s)",
		requestID, len(ranked), time.Since(start).Round(time.Millisecond), scene.SceneType, scene.Confidence)

	return Result{
		SceneType:          scene.SceneType,
		SceneDescription:   scene.Description,
		SceneKeywords:      scene.SearchKeywords,
		SearchRadiusMiles:  float64(radius) / metersPerMile,
		POIList:            ranked,
		BestMatch:          best,
		AnalysisConfidence: scene.Confidence,
		Timestamp:          optional(timestamp),
		SearchLocation:     Location{Lat: lat, Lng: lng},
		RichSearchContext:  richContext,
	}
}

func degraded(lat, lng float64, timestamp, msg string) Result {
	return Result{
		SceneType:          vision.SceneUnknown,
		POIList:            []rank.RankedPOI{},
		BestMatch:          nil,
		AnalysisConfidence: "low",
		Timestamp:          optional(timestamp),
		SearchLocation:     Location{Lat: lat, Lng: lng},
		Error:              msg,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
