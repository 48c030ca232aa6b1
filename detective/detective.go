package detective

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"photospot/geo"
)

// Proximity search limits.
const (
	proximityFeet = 500.0
	maxProximate  = 5
)

// NearbyPOI is one correlated landmark in the report.
type NearbyPOI struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Confidence   float64  `json:"confidence"`
	DistanceFeet *float64 `json:"distance_feet,omitempty"`
	Context      string   `json:"context,omitempty"`
}

// TimeContext is the time-of-day extracted from a formatted timestamp.
type TimeContext struct {
	TimeOfDay string `json:"timeOfDay"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
}

// Report is the detective's merged result, built fresh per request.
type Report struct {
	PrimaryLocation string       `json:"primaryLocation,omitempty"`
	NearbyPOIs      []NearbyPOI  `json:"nearbyPOIs"`
	TimeContext     *TimeContext `json:"timeContext,omitempty"`
	Confidence      float64      `json:"confidence"`
}

// Hints carries the optional externally supplied signals.
type Hints struct {
	Address        string   // reverse-geocoded address, may be empty
	NearbyFeatures []string // externally supplied named features
}

// Detective holds the read-only landmark reference set.
type Detective struct {
	regions []Region
}

// New builds a Detective over the built-in reference set.
func New() *Detective {
	return NewWithRegions(builtinRegions)
}

// NewWithRegions builds a Detective over a caller-supplied reference
// set. The regions are copied so later LoadDB calls never write back
// into the caller's (or the built-in) slice.
func NewWithRegions(regions []Region) *Detective {
	copied := make([]Region, len(regions))
	for i, r := range regions {
		copied[i] = Region{
			Name:      r.Name,
			Landmarks: append([]Landmark(nil), r.Landmarks...),
		}
	}
	return &Detective{regions: copied}
}

// Regions exposes the loaded reference set, read-only.
func (d *Detective) Regions() []Region {
	return d.regions
}

var timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)

// Investigate correlates the query point, timestamp, and scene text
// against the reference set.
func (d *Detective) Investigate(lat, lng float64, timestamp, description string, keywords []string, hints Hints) Report {
	report := Report{NearbyPOIs: []NearbyPOI{}}

	// GPS proximity against every landmark in the set.
	type proximate struct {
		landmark Landmark
		region   string
		feet     float64
	}
	var near []proximate
	for _, region := range d.regions {
		for _, lm := range region.Landmarks {
			feet := geo.Feet(lat, lng, lm.Lat, lm.Lng)
			if feet <= proximityFeet {
				near = append(near, proximate{lm, region.Name, feet})
			}
		}
	}
	sort.Slice(near, func(i, j int) bool { return near[i].feet < near[j].feet })
	top := near
	if len(top) > maxProximate {
		top = top[:maxProximate]
	}

	if len(top) > 0 {
		report.PrimaryLocation = top[0].region
		report.Confidence = 0.9
		for _, p := range top {
			feet := p.feet
			report.NearbyPOIs = append(report.NearbyPOIs, NearbyPOI{
				Name:         p.landmark.Name,
				Type:         p.landmark.Type,
				Confidence:   0.9,
				DistanceFeet: &feet,
				Context:      "GPS proximity",
			})
		}
	}

	report.TimeContext = ParseTime(timestamp)

	// Content correlation runs only against the GPS-proximate subset,
	// but over all of it: a landmark cut by the top-five limit can
	// still surface when the photo content names it.
	content := strings.ToLower(description + " " + strings.Join(keywords, " "))
	if content != "" {
		for _, p := range near {
			if nameAppearsIn(p.landmark.Name, content) {
				feet := p.feet
				report.NearbyPOIs = append(report.NearbyPOIs, NearbyPOI{
					Name:         p.landmark.Name,
					Type:         p.landmark.Type,
					Confidence:   0.8,
					DistanceFeet: &feet,
					Context:      "mentioned in photo content",
				})
			}
		}
	}

	if report.PrimaryLocation == "" && hints.Address != "" {
		report.PrimaryLocation = hints.Address
		report.Confidence = 0.8
	}
	for _, f := range hints.NearbyFeatures {
		if f == "" {
			continue
		}
		report.NearbyPOIs = append(report.NearbyPOIs, NearbyPOI{
			Name:       f,
			Type:       "feature",
			Confidence: 0.5,
			Context:    "reverse geocode",
		})
	}

	report.NearbyPOIs = dedupeAndSort(report.NearbyPOIs)
	return report
}

// ParseTime extracts H:MM AM/PM from a formatted date string and
// buckets it into a time of day. Returns nil when no time is present.
func ParseTime(timestamp string) *TimeContext {
	m := timePattern.FindStringSubmatch(timestamp)
	if m == nil {
		return nil
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if m[3] == "PM" && hour != 12 {
		hour += 12
	}
	if m[3] == "AM" && hour == 12 {
		hour = 0
	}

	timeOfDay := "evening"
	switch {
	case hour < 6:
		timeOfDay = "dawn"
	case hour < 12:
		timeOfDay = "morning"
	case hour < 18:
		timeOfDay = "afternoon"
	}

	return &TimeContext{TimeOfDay: timeOfDay, Hour: hour, Minute: minute}
}

// nameAppearsIn checks whether any word of the landmark name, at least
// four characters long, appears as a substring of the content.
func nameAppearsIn(name, content string) bool {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(content, word) {
			return true
		}
	}
	return false
}

// dedupeAndSort removes duplicate names (first occurrence wins) and
// sorts ascending by distance, with missing distances last.
func dedupeAndSort(pois []NearbyPOI) []NearbyPOI {
	seen := make(map[string]bool, len(pois))
	out := make([]NearbyPOI, 0, len(pois))
	for _, p := range pois {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}

	dist := func(p NearbyPOI) float64 {
		if p.DistanceFeet == nil {
			return math.Inf(1)
		}
		return *p.DistanceFeet
	}
	sort.SliceStable(out, func(i, j int) bool { return dist(out[i]) < dist(out[j]) })
	return out
}
