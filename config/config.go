package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all engine configuration loaded from environment variables.
// It is passed explicitly into the pipeline rather than read from globals.
type Config struct {
	OpenAIKey    string
	PlacesAPIKey string

	SearchRadiusMeters int            // default nearby radius
	CategoryRadius     map[string]int // per-scene-type overrides, meters
	MaxResults         int            // cap on the ranked list

	OverpassURL  string
	LandmarkDB   string // optional sqlite file with extra landmarks
	ListenAddr   string
	VisionModel  string
	SearchEngine string // base URL for the fallback text search
}

// Load reads the .env file and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using system env vars")
	}

	return &Config{
		OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
		PlacesAPIKey: getEnv("PLACES_API_KEY", ""),

		SearchRadiusMeters: getEnvInt("SEARCH_RADIUS_METERS", 800),
		CategoryRadius: map[string]int{
			"restaurant":       300,
			"store":            300,
			"park":             1500,
			"natural_landmark": 3000,
		},
		MaxResults: getEnvInt("MAX_RESULTS", 10),

		OverpassURL:  getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		LandmarkDB:   getEnv("LANDMARK_DB", ""),
		ListenAddr:   getEnv("LISTEN_ADDR", ":8090"),
		VisionModel:  getEnv("VISION_MODEL", "gpt-4o"),
		SearchEngine: getEnv("SEARCH_ENGINE_URL", "https://html.duckduckgo.com/html/"),
	}
}

// RadiusFor returns the search radius for a scene type, falling back to
// the default when there is no override.
func (c *Config) RadiusFor(sceneType string) int {
	if r, ok := c.CategoryRadius[sceneType]; ok {
		return r
	}
	return c.SearchRadiusMeters
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
