package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// ValidateCoordinate checks that a lat/lng pair is on the globe.
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", lng)
	}
	return nil
}

// DistanceKM returns the great-circle distance between two points in
// kilometers. orb.Point is {lng, lat} order.
func DistanceKM(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := orb.Point{lng1, lat1}
	p2 := orb.Point{lng2, lat2}
	return geo.Distance(p1, p2) / 1000.0
}

// WithinRadius reports whether the second point lies within radiusKM of the
// first.
func WithinRadius(lat1, lng1, lat2, lng2, radiusKM float64) bool {
	return DistanceKM(lat1, lng1, lat2, lng2) <= radiusKM
}
