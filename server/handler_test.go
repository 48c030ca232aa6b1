package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"photospot/config"
	"photospot/detective"
	"photospot/engine"
	"photospot/places"
	"photospot/vision"
)

type stubCaller struct{ text string }

func (s stubCaller) Describe(ctx context.Context, image []byte) (string, error) {
	return s.text, nil
}

type stubProvider struct{ records []places.RawRecord }

func (s stubProvider) Name() string { return places.SourceCommercial }

func (s stubProvider) FetchNearby(ctx context.Context, lat, lng float64, radiusMeters int, categoryHint string) ([]places.RawRecord, error) {
	return s.records, nil
}

func testHandler() *Handler {
	cfg := &config.Config{SearchRadiusMeters: 800, MaxResults: 10}
	place := &places.CommercialPlace{Name: "Old Faithful Inn", Types: []string{"lodging"}}
	place.Geometry.Location.Lat = 44.4597
	place.Geometry.Location.Lng = -110.8317

	e := engine.New(cfg,
		&vision.Analyzer{Caller: stubCaller{text: `{"scene_type": "natural_landmark", "confidence": "medium"}`}},
		[]places.Provider{stubProvider{records: []places.RawRecord{{Commercial: place}}}},
		nil)
	return &Handler{Engine: e, Detective: detective.New()}
}

func multipartRequest(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if image != nil {
		fw, _ := w.CreateFormFile("image", "photo.jpg")
		fw.Write(image)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/identify", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestIdentifyEndpoint(t *testing.T) {
	h := testHandler()
	req := multipartRequest(t, map[string]string{
		"lat": "44.4605", "lng": "-110.8281", "timestamp": "Saturday 9:30 AM",
	}, []byte("jpeg-bytes"))

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SceneType         string `json:"scene_type"`
		LocationDetective struct {
			PrimaryLocation string `json:"primaryLocation"`
			TimeContext     *struct {
				TimeOfDay string `json:"timeOfDay"`
			} `json:"timeContext"`
		} `json:"location_detective"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.SceneType != "natural_landmark" {
		t.Errorf("scene_type = %q", resp.SceneType)
	}
	if resp.LocationDetective.PrimaryLocation != "Yellowstone National Park" {
		t.Errorf("detective primary = %q", resp.LocationDetective.PrimaryLocation)
	}
	if resp.LocationDetective.TimeContext == nil || resp.LocationDetective.TimeContext.TimeOfDay != "morning" {
		t.Errorf("time context = %+v", resp.LocationDetective.TimeContext)
	}
}

func TestIdentifyEndpointSceneContentCorrelation(t *testing.T) {
	// The scene description feeds the detective's content correlation:
	// a landmark cut from the proximity top five still shows up in the
	// response when the photo mentions it.
	lat, lng := 36.1000, -115.2000
	d := detective.NewWithRegions([]detective.Region{{
		Name: "Test Basin",
		Landmarks: []detective.Landmark{
			{Name: "Marker One", Lat: lat, Lng: lng, Type: "marker"},
			{Name: "Marker Two", Lat: lat + 0.0001, Lng: lng, Type: "marker"},
			{Name: "Marker Three", Lat: lat + 0.0002, Lng: lng, Type: "marker"},
			{Name: "Marker Four", Lat: lat + 0.0003, Lng: lng, Type: "marker"},
			{Name: "Marker Five", Lat: lat + 0.0004, Lng: lng, Type: "marker"},
			{Name: "Quartz Arch", Lat: lat + 0.0005, Lng: lng, Type: "formation"},
		},
	}})

	cfg := &config.Config{SearchRadiusMeters: 800, MaxResults: 10}
	e := engine.New(cfg,
		&vision.Analyzer{Caller: stubCaller{text: `{"scene_type": "natural_landmark", "confidence": "medium", "description": "a natural quartz arch over the wash", "search_keywords": ["arch", "sandstone"]}`}},
		[]places.Provider{stubProvider{}},
		nil)
	h := &Handler{Engine: e, Detective: d}

	req := multipartRequest(t, map[string]string{
		"lat": "36.1000", "lng": "-115.2000",
	}, []byte("jpeg-bytes"))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		LocationDetective detective.Report `json:"location_detective"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}

	var found *detective.NearbyPOI
	for i := range resp.LocationDetective.NearbyPOIs {
		if resp.LocationDetective.NearbyPOIs[i].Name == "Quartz Arch" {
			found = &resp.LocationDetective.NearbyPOIs[i]
		}
	}
	if found == nil {
		t.Fatalf("Quartz Arch not in response: %+v", resp.LocationDetective.NearbyPOIs)
	}
	if found.Confidence != 0.8 || found.Context != "mentioned in photo content" {
		t.Errorf("got confidence %f context %q", found.Confidence, found.Context)
	}
}

func TestIdentifyEndpointAddressHint(t *testing.T) {
	h := testHandler()
	req := multipartRequest(t, map[string]string{
		"lat": "51.5074", "lng": "-0.1278", "address": "Westminster, London",
	}, []byte("jpeg-bytes"))

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		LocationDetective detective.Report `json:"location_detective"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.LocationDetective.PrimaryLocation != "Westminster, London" {
		t.Errorf("primaryLocation = %q", resp.LocationDetective.PrimaryLocation)
	}
	if resp.LocationDetective.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", resp.LocationDetective.Confidence)
	}
}

func TestIdentifyEndpointMissingCoords(t *testing.T) {
	h := testHandler()
	req := multipartRequest(t, map[string]string{"lat": "not-a-number"}, []byte("x"))

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestIdentifyEndpointMissingImage(t *testing.T) {
	h := testHandler()
	req := multipartRequest(t, map[string]string{"lat": "1", "lng": "2"}, nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLandmarksEndpoint(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest("GET", "/landmarks", nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var regions []detective.Region
	if err := json.Unmarshal(rec.Body.Bytes(), &regions); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(regions) == 0 {
		t.Error("expected at least one region")
	}
}
