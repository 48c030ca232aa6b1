// Package detective correlates GPS, time of day, and photo content
// against a small curated landmark set, independently of the live POI
// providers.
package detective

// Landmark is one entry in the static reference set. Loaded once at
// process start and never mutated.
type Landmark struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

// Region groups landmarks under the label reported as primaryLocation.
type Region struct {
	Name      string     `json:"name"`
	Landmarks []Landmark `json:"landmarks"`
}

// Built-in reference set. Extend via a landmark DB file, not here.
var builtinRegions = []Region{
	{
		Name: "Yellowstone National Park",
		Landmarks: []Landmark{
			{"Old Faithful Geyser", 44.4605, -110.8281, "geyser"},
			{"Old Faithful Inn", 44.4597, -110.8317, "lodge"},
			{"Castle Geyser", 44.4634, -110.8360, "geyser"},
			{"Grand Prismatic Spring", 44.5251, -110.8382, "hot_spring"},
			{"Morning Glory Pool", 44.4750, -110.8438, "hot_spring"},
		},
	},
	{
		Name: "Grand Canyon National Park",
		Landmarks: []Landmark{
			{"Mather Point", 36.0616, -112.1078, "viewpoint"},
			{"Bright Angel Trailhead", 36.0572, -112.1440, "trailhead"},
			{"Desert View Watchtower", 36.0443, -111.8261, "tower"},
		},
	},
	{
		Name: "Golden Gate National Recreation Area",
		Landmarks: []Landmark{
			{"Golden Gate Bridge Welcome Center", 37.8078, -122.4750, "visitor_center"},
			{"Fort Point", 37.8105, -122.4770, "fort"},
			{"Lands End Lookout", 37.7799, -122.5115, "viewpoint"},
		},
	},
	{
		Name: "Yosemite National Park",
		Landmarks: []Landmark{
			{"Tunnel View", 37.7156, -119.6773, "viewpoint"},
			{"Lower Yosemite Fall", 37.7465, -119.5967, "waterfall"},
			{"Glacier Point", 37.7281, -119.5729, "viewpoint"},
		},
	},
}
