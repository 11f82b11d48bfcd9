package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/geo"
	"github.com/jainnhimanshuu/savorini/internal/repository"
)

// nearbyFetchLimit caps how many active venues a nearby scan considers.
const nearbyFetchLimit = 500

// VenueService defines the interface for venue business logic
type VenueService interface {
	// CreateVenue validates and persists a new venue in pending status
	CreateVenue(ctx context.Context, vendorID uuid.UUID, req *dto.CreateVenueRequest) (*dto.VenueResponse, error)

	// GetVenue retrieves a venue by ID
	GetVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error)

	// NearbyVenues lists active venues within radius, nearest first
	NearbyVenues(ctx context.Context, lat, lng, radiusKm float64) ([]*dto.VenueResponse, error)

	// ActivateVenue moves a venue to active status
	ActivateVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error)

	// SuspendVenue moves a venue to suspended status
	SuspendVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error)
}

// venueService implements VenueService
type venueService struct {
	venues repository.VenueRepository
	clock  clock.Clock

	defaultRadiusKm float64
	maxRadiusKm     float64
}

// NewVenueService creates a new venue service
func NewVenueService(venues repository.VenueRepository, clk clock.Clock, defaultRadiusKm, maxRadiusKm float64) VenueService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 10
	}
	if maxRadiusKm <= 0 {
		maxRadiusKm = 50
	}
	return &venueService{
		venues:          venues,
		clock:           clk,
		defaultRadiusKm: defaultRadiusKm,
		maxRadiusKm:     maxRadiusKm,
	}
}

// slugify derives a URL slug from the venue name
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *venueService) CreateVenue(ctx context.Context, vendorID uuid.UUID, req *dto.CreateVenueRequest) (*dto.VenueResponse, error) {
	now := s.clock.Now()
	venue := domain.Venue{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         slugify(req.Name),
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Province:     domain.Province(strings.ToUpper(req.Province)),
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		LicenseType:  domain.LicenseType(req.LicenseType),
		VendorID:     vendorID,
		Status:       domain.VenueStatusPending,
		HasPatio:     req.HasPatio,
		HasParking:   req.HasParking,
		HasWifi:      req.HasWifi,
		IsAccessible: req.IsAccessible,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := venue.Validate(); err != nil {
		return nil, err
	}

	if err := s.venues.Create(ctx, &venue); err != nil {
		return nil, err
	}

	return dto.NewVenueResponse(venue), nil
}

func (s *venueService) GetVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVenueResponse(venue), nil
}

func (s *venueService) NearbyVenues(ctx context.Context, lat, lng, radiusKm float64) ([]*dto.VenueResponse, error) {
	if radiusKm == 0 {
		radiusKm = s.defaultRadiusKm
	}
	if radiusKm < 0 || radiusKm > s.maxRadiusKm {
		return nil, domain.NewValidationError(domain.CodeInvalidRadius,
			fmt.Sprintf("radius must be within (0, %g] km", s.maxRadiusKm))
	}

	radius, err := geo.NewRadiusFilter(geo.Point{Lat: lat, Lng: lng}, radiusKm)
	if err != nil {
		return nil, err
	}

	venues, err := s.venues.ListActive(ctx, nearbyFetchLimit)
	if err != nil {
		return nil, err
	}

	type hit struct {
		venue    domain.Venue
		distance float64
	}
	hits := make([]hit, 0, len(venues))
	for _, v := range venues {
		vlat, vlng, ok := v.Coordinates()
		if !ok {
			continue
		}
		d, in := radius.Distance(geo.Point{Lat: vlat, Lng: vlng})
		if !in {
			continue
		}
		hits = append(hits, hit{venue: v, distance: d})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}
		return hits[i].venue.ID.String() < hits[j].venue.ID.String()
	})

	out := make([]*dto.VenueResponse, 0, len(hits))
	for _, h := range hits {
		resp := dto.NewVenueResponse(h.venue)
		d := h.distance
		resp.DistanceKm = &d
		out = append(out, resp)
	}
	return out, nil
}

func (s *venueService) ActivateVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := venue.Activate(s.clock.Now())
	if err := s.venues.Update(ctx, updated); err != nil {
		return nil, err
	}
	return dto.NewVenueResponse(updated), nil
}

func (s *venueService) SuspendVenue(ctx context.Context, id uuid.UUID) (*dto.VenueResponse, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := venue.Suspend(s.clock.Now())
	if err := s.venues.Update(ctx, updated); err != nil {
		return nil, err
	}
	return dto.NewVenueResponse(updated), nil
}
