package geo

import (
	"fmt"
	"math"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// EarthRadiusKm is the mean spherical earth radius.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Validate rejects out-of-range coordinates. Out-of-range values are a
// caller error, never silently clamped.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return domain.NewValidationError(domain.CodeInvalidCoordinates,
			fmt.Sprintf("latitude %v out of range [-90, 90]", p.Lat))
	}
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return domain.NewValidationError(domain.CodeInvalidCoordinates,
			fmt.Sprintf("longitude %v out of range [-180, 180]", p.Lng))
	}
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Haversine computes the great-circle distance in km between two
// points on a spherical-earth approximation.
func Haversine(a, b Point) float64 {
	lat1 := degreesToRadians(a.Lat)
	lon1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lon2 := degreesToRadians(b.Lng)

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RadiusFilter answers "is this point within radiusKm of the center,
// and how far is it" with a bounding-box prefilter that skips the trig
// for clearly-out-of-range points. The prefilter box is a superset of
// the circle, so the result set always matches an exact scan.
type RadiusFilter struct {
	center   Point
	radiusKm float64

	minLat, maxLat float64
	minLng, maxLng float64
	lngUsable      bool
}

// NewRadiusFilter validates the center and radius and precomputes the
// bounding box.
func NewRadiusFilter(center Point, radiusKm float64) (*RadiusFilter, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusKm) || radiusKm <= 0 {
		return nil, domain.NewValidationError(domain.CodeInvalidRadius,
			fmt.Sprintf("radius %v must be positive", radiusKm))
	}

	f := &RadiusFilter{center: center, radiusKm: radiusKm}

	dLat := radiusKm / EarthRadiusKm * 180 / math.Pi
	f.minLat = center.Lat - dLat
	f.maxLat = center.Lat + dLat

	// Longitude degrees shrink toward the poles; use the widest latitude
	// the box can reach so the box never cuts into the circle. Near the
	// poles the box degenerates, so fall back to exact distances only.
	maxAbsLat := math.Min(math.Max(math.Abs(center.Lat)+dLat, 0), 90)
	cosLat := math.Cos(degreesToRadians(maxAbsLat))
	if cosLat > 1e-6 {
		dLng := dLat / cosLat
		f.minLng = center.Lng - dLng
		f.maxLng = center.Lng + dLng
		// An antimeridian-straddling box would need wraparound handling;
		// skip the longitude prefilter instead, which is always correct.
		f.lngUsable = f.minLng >= -180 && f.maxLng <= 180
	}

	return f, nil
}

// Center returns the filter's center point
func (f *RadiusFilter) Center() Point {
	return f.center
}

// RadiusKm returns the filter's radius
func (f *RadiusFilter) RadiusKm() float64 {
	return f.radiusKm
}

// Distance returns the great-circle distance to p and whether p falls
// within the radius.
func (f *RadiusFilter) Distance(p Point) (float64, bool) {
	if p.Lat < f.minLat || p.Lat > f.maxLat {
		return 0, false
	}
	if f.lngUsable && (p.Lng < f.minLng || p.Lng > f.maxLng) {
		return 0, false
	}

	d := Haversine(f.center, p)
	return d, d <= f.radiusKm
}
