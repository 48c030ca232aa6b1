package geo

import (
	"math"
	"testing"
)

func TestMilesSymmetric(t *testing.T) {
	a := Miles(44.4605, -110.8281, 51.5074, -0.1278)
	b := Miles(51.5074, -0.1278, 44.4605, -110.8281)
	if a != b {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestMilesSamePoint(t *testing.T) {
	if d := Miles(44.4605, -110.8281, 44.4605, -110.8281); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestMilesKnownDistance(t *testing.T) {
	// London to Greenwich is roughly 5.5 miles
	d := Miles(51.5074, -0.1278, 51.4772, 0.0005)
	if d < 4 || d > 7 {
		t.Errorf("London-Greenwich = %.2f miles, want ~5.5", d)
	}
}

func TestMilesNonFinite(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"NaN lat", math.NaN(), -110.8281},
		{"Inf lon", 44.4605, math.Inf(1)},
		{"NegInf lat", math.Inf(-1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Miles(tc.lat, tc.lon, 44.4605, -110.8281)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Errorf("got non-finite distance %f", d)
			}
		})
	}
}

func TestFeetConversion(t *testing.T) {
	miles := Miles(44.4605, -110.8281, 44.4610, -110.8281)
	feet := Feet(44.4605, -110.8281, 44.4610, -110.8281)
	if math.Abs(feet-miles*FeetPerMile) > 1e-9 {
		t.Errorf("feet %f != miles %f * %f", feet, miles, FeetPerMile)
	}
}
