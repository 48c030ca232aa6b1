package main

import (
	"log"
	"net/http"

	"photospot/config"
	"photospot/detective"
	"photospot/engine"
	"photospot/places"
	"photospot/search"
	"photospot/server"
	"photospot/vision"
)

func main() {
	cfg := config.Load()

	analyzer := &vision.Analyzer{}
	if cfg.OpenAIKey != "" {
		analyzer.Caller = vision.NewOpenAICaller(cfg.OpenAIKey, cfg.VisionModel)
	} else {
		log.Println("[main] OPENAI_API_KEY not set, scene analysis disabled")
	}

	providers := []places.Provider{
		places.NewOverpassProvider(cfg.OverpassURL),
		places.NewCommercialProvider(cfg.PlacesAPIKey),
	}

	d := detective.New()
	if cfg.LandmarkDB != "" {
		if err := d.LoadDB(cfg.LandmarkDB); err != nil {
			log.Printf("[main] landmark db load failed: %v", err)
		}
	}

	e := engine.New(cfg, analyzer, providers, search.NewDuckDuckGoSearcher(cfg.SearchEngine))
	h := &server.Handler{Engine: e, Detective: d}

	log.Printf("[main] listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, h.Routes()))
}
