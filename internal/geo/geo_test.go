package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

var (
	torontoCityHall = Point{Lat: 43.6534, Lng: -79.3841}
	cnTower         = Point{Lat: 43.6426, Lng: -79.3871}
	vancouver       = Point{Lat: 49.2827, Lng: -123.1207}
)

func TestHaversineIdentity(t *testing.T) {
	assert.Zero(t, Haversine(torontoCityHall, torontoCityHall))
}

func TestHaversineSymmetry(t *testing.T) {
	ab := Haversine(torontoCityHall, vancouver)
	ba := Haversine(vancouver, torontoCityHall)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestHaversineKnownDistances(t *testing.T) {
	// City Hall to the CN Tower is roughly 1.2 km.
	assert.InDelta(t, 1.2, Haversine(torontoCityHall, cnTower), 0.1)

	// Toronto to Vancouver is roughly 3360 km.
	assert.InDelta(t, 3360, Haversine(torontoCityHall, vancouver), 30)
}

func TestPointValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		ok   bool
	}{
		{"valid", torontoCityHall, true},
		{"lat too high", Point{Lat: 91}, false},
		{"lat too low", Point{Lat: -91}, false},
		{"lng too high", Point{Lng: 181}, false},
		{"lng too low", Point{Lng: -181}, false},
		{"boundary", Point{Lat: 90, Lng: -180}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, domain.CodeInvalidCoordinates, domain.CodeOf(err))
			}
		})
	}
}

func TestNewRadiusFilterValidation(t *testing.T) {
	_, err := NewRadiusFilter(Point{Lat: 95}, 10)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidCoordinates, domain.CodeOf(err))

	_, err = NewRadiusFilter(torontoCityHall, 0)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidRadius, domain.CodeOf(err))

	_, err = NewRadiusFilter(torontoCityHall, -5)
	assert.Error(t, err)
}

func TestRadiusFilterDistance(t *testing.T) {
	f, err := NewRadiusFilter(torontoCityHall, 10)
	require.NoError(t, err)

	d, in := f.Distance(cnTower)
	assert.True(t, in)
	assert.InDelta(t, 1.2, d, 0.1)

	_, in = f.Distance(vancouver)
	assert.False(t, in)
}

// The bounding box is a superset of the circle, so the prefilter must
// admit every point an exact scan admits.
func TestRadiusFilterMatchesExactScan(t *testing.T) {
	centers := []Point{
		torontoCityHall,
		{Lat: 0, Lng: 0},
		{Lat: 89.5, Lng: 10},      // near-pole, prefilter degenerates
		{Lat: 43.65, Lng: 179.95}, // antimeridian straddle
	}
	offsets := []float64{-0.2, -0.1, -0.05, 0, 0.05, 0.1, 0.2}

	for _, center := range centers {
		f, err := NewRadiusFilter(center, 12)
		require.NoError(t, err)

		for _, dlat := range offsets {
			for _, dlng := range offsets {
				p := Point{Lat: center.Lat + dlat, Lng: center.Lng + dlng}
				if p.Validate() != nil {
					continue
				}

				exact := Haversine(center, p)
				got, in := f.Distance(p)

				assert.Equal(t, exact <= 12, in, "center=%v point=%v", center, p)
				if in {
					assert.InDelta(t, exact, got, 1e-9)
				}
			}
		}
	}
}
