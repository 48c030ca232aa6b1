// Package server exposes the identification engine over HTTP. The
// surface is deliberately thin: no auth, no UI, just the engine.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"photospot/detective"
	"photospot/engine"
)

const maxImageBytes = 20 << 20

// Handler serves the identification endpoints.
type Handler struct {
	Engine    *engine.Engine
	Detective *detective.Detective
}

// Routes mounts the handler on a router.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/identify", h.Identify).Methods("POST")
	r.HandleFunc("/landmarks", h.Landmarks).Methods("GET")
	return r
}

// identifyResponse merges the engine result with the independent
// location detective report.
type identifyResponse struct {
	engine.Result
	LocationDetective detective.Report `json:"location_detective"`
}

// Identify handles POST /identify with a multipart form carrying lat,
// lng, an optional timestamp, an optional reverse-geocoded address,
// and the photo under "image".
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		http.Error(w, "expected multipart form", http.StatusBadRequest)
		return
	}

	lat, err1 := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lng are required", http.StatusBadRequest)
		return
	}
	timestamp := r.FormValue("timestamp")

	var image []byte
	if file, _, err := r.FormFile("image"); err == nil {
		image, _ = io.ReadAll(io.LimitReader(file, maxImageBytes))
		file.Close()
	}
	if len(image) == 0 {
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}

	// The detective correlates the scene text against its landmark set,
	// so it runs once the engine has a description. It is independent of
	// ranking; its own work is a scan over a small in-memory set.
	result := h.Engine.Identify(r.Context(), image, lat, lng, timestamp)
	report := h.Detective.Investigate(lat, lng, timestamp,
		result.SceneDescription, result.SceneKeywords,
		detective.Hints{Address: r.FormValue("address")})

	writeJSON(w, identifyResponse{Result: result, LocationDetective: report})
}

// Landmarks handles GET /landmarks, exposing the read-only reference set.
func (h *Handler) Landmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Detective.Regions())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode failed: %v", err)
	}
}
