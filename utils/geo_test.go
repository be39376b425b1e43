package utils

import (
	"math"
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid coordinate", 40.7128, -74.0060, false},
		{"equator prime meridian", 0, 0, false},
		{"boundary latitudes", 90, 180, false},
		{"negative boundary", -90, -180, false},
		{"latitude too high", 90.1, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 181, true},
		{"longitude too low", 0, -180.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v, %v) error = %v, wantErr %v",
					tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestDistanceKM(t *testing.T) {
	// New York to Los Angeles is roughly 3940 km great-circle
	nyLat, nyLng := 40.7128, -74.0060
	laLat, laLng := 34.0522, -118.2437

	d := DistanceKM(nyLat, nyLng, laLat, laLng)
	if d < 3900 || d > 4000 {
		t.Errorf("NY-LA distance = %v km, expected roughly 3940", d)
	}

	// symmetric
	back := DistanceKM(laLat, laLng, nyLat, nyLng)
	if math.Abs(d-back) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", d, back)
	}

	// zero for identical points
	if z := DistanceKM(nyLat, nyLng, nyLat, nyLng); z != 0 {
		t.Errorf("distance to self = %v, expected 0", z)
	}
}

func TestWithinRadius(t *testing.T) {
	// two points in Seattle about 1 km apart
	lat1, lng1 := 47.6062, -122.3321
	lat2, lng2 := 47.6152, -122.3321

	if !WithinRadius(lat1, lng1, lat2, lng2, 5) {
		t.Error("points 1 km apart should be within 5 km radius")
	}
	if WithinRadius(lat1, lng1, lat2, lng2, 0.5) {
		t.Error("points 1 km apart should not be within 0.5 km radius")
	}
}
