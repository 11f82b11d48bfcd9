package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
)

func newVenueServiceFixture() (VenueService, *MockVenueRepository) {
	repo := NewMockVenueRepository()
	return NewVenueService(repo, clock.NewFixed(testNow), 10, 50), repo
}

func TestCreateVenue(t *testing.T) {
	svc, repo := newVenueServiceFixture()
	lat, lng := 43.6534, -79.3841

	resp, err := svc.CreateVenue(context.Background(), uuid.New(), &dto.CreateVenueRequest{
		Name:        "The Rusty Anchor",
		Address:     "45 Queen St",
		City:        "Toronto",
		Province:    "on",
		Latitude:    &lat,
		Longitude:   &lng,
		LicenseType: "pub",
	})
	require.NoError(t, err)
	assert.Equal(t, "the-rusty-anchor", resp.Slug)
	assert.Equal(t, "ON", resp.Province)
	assert.Equal(t, string(domain.VenueStatusPending), resp.Status)
	assert.Len(t, repo.venues, 1)
}

func TestCreateVenueCoordinatePairInvariant(t *testing.T) {
	svc, _ := newVenueServiceFixture()
	lat := 43.6534

	_, err := svc.CreateVenue(context.Background(), uuid.New(), &dto.CreateVenueRequest{
		Name:        "Half Mapped",
		Address:     "1 Somewhere Rd",
		City:        "Toronto",
		Province:    "ON",
		Latitude:    &lat,
		LicenseType: "bar",
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidCoordinates, domain.CodeOf(err))
}

func TestNearbyVenuesOrderingAndRadius(t *testing.T) {
	svc, repo := newVenueServiceFixture()

	add := func(name string, lat float64, status domain.VenueStatus) {
		v := testVenue(domain.ProvinceON)
		v.ID = uuid.New()
		v.Name = name
		v.Latitude = &lat
		v.Status = status
		repo.AddVenue(v)
	}
	add("near", 43.6579, domain.VenueStatusActive)
	add("far", 43.7884, domain.VenueStatusActive) // ~15 km
	add("mid", 43.6642, domain.VenueStatusActive)

	out, err := svc.NearbyVenues(context.Background(), 43.6534, -79.3841, 10)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "near", out[0].Name)
	assert.Equal(t, "mid", out[1].Name)
	require.NotNil(t, out[0].DistanceKm)
	assert.Less(t, *out[0].DistanceKm, *out[1].DistanceKm)
}

func TestNearbyVenuesSkipsUnmapped(t *testing.T) {
	svc, repo := newVenueServiceFixture()

	v := testVenue(domain.ProvinceON)
	v.Latitude, v.Longitude = nil, nil
	repo.AddVenue(v)

	out, err := svc.NearbyVenues(context.Background(), 43.6534, -79.3841, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNearbyVenuesValidation(t *testing.T) {
	svc, _ := newVenueServiceFixture()

	_, err := svc.NearbyVenues(context.Background(), 95, 0, 10)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidCoordinates, domain.CodeOf(err))

	_, err = svc.NearbyVenues(context.Background(), 43.6534, -79.3841, 100)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidRadius, domain.CodeOf(err))
}

func TestVenueLifecycle(t *testing.T) {
	svc, repo := newVenueServiceFixture()

	v := testVenue(domain.ProvinceON)
	v.Status = domain.VenueStatusPending
	repo.AddVenue(v)

	resp, err := svc.ActivateVenue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.VenueStatusActive), resp.Status)

	resp, err = svc.SuspendVenue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.VenueStatusSuspended), resp.Status)

	_, err = svc.ActivateVenue(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-local-pub", slugify("The Local Pub"))
	assert.Equal(t, "o-malley-s", slugify("O'Malley's"))
	assert.Equal(t, "grill-bar-24-7", slugify("Grill & Bar 24/7"))
}
