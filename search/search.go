// Package search provides the best-effort text search used to enrich
// low-confidence natural scene results with a little context.
package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"photospot/rank"
	"photospot/vision"
)

// querySuffix biases results toward trail and open-space pages.
const querySuffix = "trail open space preserve"

// contextResults is how many search hits we request, and contextTake
// how many snippets actually make it into the context string.
const (
	contextResults = 4
	contextTake    = 2
)

// Result is one text search hit.
type Result struct {
	Title   string
	Snippet string
}

// TextSearcher issues a text search. Implementations are external
// collaborators; errors degrade to an empty context upstream.
type TextSearcher interface {
	Search(ctx context.Context, query string, numResults int) ([]Result, error)
}

// DuckDuckGoSearcher scrapes the HTML results page. No API key needed.
type DuckDuckGoSearcher struct {
	BaseURL string
	Client  *http.Client
}

func NewDuckDuckGoSearcher(baseURL string) *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.BaseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "photospot/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("search HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search parse: %w", err)
	}

	var results []Result
	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(results) >= numResults {
			return false
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(sel.Find(".result__title").Text()),
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return true
	})
	return results, nil
}

// ShouldEnrich reports whether the fallback context search applies: a
// best match exists at low confidence and the scene is natural/outdoor.
func ShouldEnrich(scene vision.SceneAnalysis, best *rank.BestMatch) bool {
	if best == nil || best.Confidence != "low" {
		return false
	}
	return scene.SceneType == vision.SceneNaturalLandmark || scene.SceneType == vision.SceneRecreation
}

// BuildQuery assembles the context search query from the coordinates,
// the scene's keywords, and the fixed suffix.
func BuildQuery(lat, lng float64, scene vision.SceneAnalysis) string {
	parts := []string{fmt.Sprintf("%f, %f", lat, lng)}
	if len(scene.SearchKeywords) > 0 {
		parts = append(parts, strings.Join(scene.SearchKeywords, " "))
	}
	parts = append(parts, querySuffix)
	return strings.Join(parts, " ")
}

// ContextFor runs one search and condenses the first hits into a
// single context string. Any failure degrades to "".
func ContextFor(ctx context.Context, searcher TextSearcher, lat, lng float64, scene vision.SceneAnalysis) string {
	if searcher == nil {
		return ""
	}

	results, err := searcher.Search(ctx, BuildQuery(lat, lng, scene), contextResults)
	if err != nil {
		log.Printf("[search] context search failed: %v", err)
		return ""
	}

	var snippets []string
	for i, r := range results {
		if i >= contextTake {
			break
		}
		text := r.Snippet
		if text == "" {
			text = r.Title
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		snippets = append(snippets, text)
	}
	return strings.Join(snippets, "; ")
}
