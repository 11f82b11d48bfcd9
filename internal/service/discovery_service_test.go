package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/repository"
)

// MockCandidateSource is a canned in-memory candidate source
type MockCandidateSource struct {
	candidates []repository.Candidate
	err        error
	lastFilter repository.CandidateFilter
}

func (m *MockCandidateSource) FetchActiveDeals(ctx context.Context, filter repository.CandidateFilter) ([]repository.Candidate, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

// testNow is Friday 2026-01-02 18:00 UTC, inside every test schedule.
var testNow = time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)

func candidateAt(title string, lat, lng float64, opts func(*domain.Deal)) repository.Candidate {
	start, end := domain.MustTimeOfDay(16, 0), domain.MustTimeOfDay(22, 0)
	deal := domain.Deal{
		ID:       uuid.New(),
		Title:    title,
		Category: domain.CategoryFood,
		Schedule: domain.Schedule{
			DaysMask:  1 << uint(domain.Friday),
			StartTime: &start,
			EndTime:   &end,
		},
		IsActive: true,
	}
	if opts != nil {
		opts(&deal)
	}
	venue := domain.Venue{
		ID:        uuid.New(),
		Name:      title + " venue",
		Province:  domain.ProvinceON,
		Latitude:  &lat,
		Longitude: &lng,
		Status:    domain.VenueStatusActive,
	}
	deal.VenueID = venue.ID
	return repository.Candidate{Deal: deal, Venue: venue}
}

func newTestDiscovery(source repository.CandidateSource) DiscoveryService {
	store := repository.NewMemoryRuleStore(domain.DefaultRules())
	compliance := NewComplianceService(store, domain.ProvinceON)
	return NewDiscoveryService(source, compliance, nil, clock.NewFixed(testNow), DiscoveryServiceConfig{
		Location: time.UTC,
	})
}

// Query point is Toronto City Hall; the offsets below put venues at
// roughly 0.5, 1.2 and 15 km.
const (
	queryLat = 43.6534
	queryLng = -79.3841
)

func coord(v float64) *float64 { return &v }

func feedRequest() *dto.FeedRequest {
	return &dto.FeedRequest{Lat: coord(queryLat), Lng: coord(queryLng), RadiusKm: 10}
}

func TestDiscoverRadiusAndOrdering(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("far", 43.7884, queryLng, nil),  // ~15 km north
		candidateAt("near", 43.6579, queryLng, nil), // ~0.5 km
		candidateAt("mid", 43.6642, queryLng, nil),  // ~1.2 km
	}}
	svc := newTestDiscovery(source)

	resp, err := svc.Discover(context.Background(), feedRequest(), domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "near", resp.Items[0].Title)
	assert.Equal(t, "mid", resp.Items[1].Title)
	assert.Less(t, resp.Items[0].DistanceKm, resp.Items[1].DistanceKm)
	assert.Equal(t, 2, resp.Pagination.Total)
}

func TestDiscoverFeaturedFirst(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("near", 43.6579, queryLng, nil),
		candidateAt("featured far", 43.6642, queryLng, func(d *domain.Deal) { d.IsFeatured = true }),
	}}
	svc := newTestDiscovery(source)

	resp, err := svc.Discover(context.Background(), feedRequest(), domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "featured far", resp.Items[0].Title)
}

func TestDiscoverPagination(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("a", 43.6579, queryLng, nil),
		candidateAt("b", 43.6642, queryLng, nil),
		candidateAt("c", 43.6700, queryLng, nil),
	}}
	svc := newTestDiscovery(source)

	req := feedRequest()
	req.PerPage = 1
	req.Page = 2

	resp, err := svc.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "b", resp.Items[0].Title)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
}

func TestDiscoverScheduleFilter(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("open now", 43.6579, queryLng, nil),
		candidateAt("wrong day", 43.6642, queryLng, func(d *domain.Deal) {
			d.Schedule.DaysMask = 1 << uint(domain.Monday)
		}),
	}}
	svc := newTestDiscovery(source)

	resp, err := svc.Discover(context.Background(), feedRequest(), domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "open now", resp.Items[0].Title)
}

func TestDiscoverSoonFilter(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("late night", 43.6579, queryLng, func(d *domain.Deal) {
			start, end := domain.MustTimeOfDay(18, 30), domain.MustTimeOfDay(23, 0)
			d.Schedule.StartTime = &start
			d.Schedule.EndTime = &end
		}),
		candidateAt("tomorrow only", 43.6642, queryLng, func(d *domain.Deal) {
			d.Schedule.DaysMask = 1 << uint(domain.Saturday)
		}),
	}}
	svc := newTestDiscovery(source)

	req := feedRequest()
	req.When = "soon"

	resp, err := svc.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "late night", resp.Items[0].Title)
}

func TestDiscoverMinSavingsFilter(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("big saver", 43.6579, queryLng, func(d *domain.Deal) {
			original, price := 30.0, 15.0
			d.OriginalPrice, d.DealPrice = &original, &price
		}),
		candidateAt("small saver", 43.6642, queryLng, func(d *domain.Deal) {
			original, price := 12.0, 10.0
			d.OriginalPrice, d.DealPrice = &original, &price
		}),
		candidateAt("no prices", 43.6700, queryLng, nil),
	}}
	svc := newTestDiscovery(source)

	min := 5.0
	req := feedRequest()
	req.MinSavings = &min

	resp, err := svc.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "big saver", resp.Items[0].Title)
}

func TestDiscoverComplianceNeverRemovesDeals(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("Half Price Cocktails", 43.6579, queryLng, func(d *domain.Deal) {
			original, price := 16.0, 8.0
			d.OriginalPrice, d.DealPrice = &original, &price
		}),
	}}

	// Alberta configured to hide alcohol prices for consumers.
	compliance := NewComplianceService(strictRuleStore(), domain.ProvinceON)
	svc := NewDiscoveryService(source, compliance, nil, clock.NewFixed(testNow), DiscoveryServiceConfig{Location: time.UTC})
	source.candidates[0].Venue.Province = domain.ProvinceAB

	resp, err := svc.Discover(context.Background(), feedRequest(), domain.RoleUser)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "hidden prices must not remove the deal")
	item := resp.Items[0]
	assert.Equal(t, string(domain.DispositionHide), item.PriceDisposition)
	assert.Nil(t, item.OriginalPrice)
	assert.Nil(t, item.DealPrice)
	assert.Nil(t, item.SavingsAmount)

	// Vendors see the real prices.
	resp, err = svc.Discover(context.Background(), feedRequest(), domain.RoleVendor)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, string(domain.DispositionShow), resp.Items[0].PriceDisposition)
	assert.NotNil(t, resp.Items[0].OriginalPrice)
}

func TestDiscoverValidation(t *testing.T) {
	svc := newTestDiscovery(&MockCandidateSource{})

	tests := []struct {
		name   string
		mutate func(*dto.FeedRequest)
		code   string
	}{
		{"bad latitude", func(r *dto.FeedRequest) { r.Lat = coord(95) }, domain.CodeInvalidCoordinates},
		{"missing latitude", func(r *dto.FeedRequest) { r.Lat = nil }, domain.CodeInvalidCoordinates},
		{"missing longitude", func(r *dto.FeedRequest) { r.Lng = nil }, domain.CodeInvalidCoordinates},
		{"radius too small", func(r *dto.FeedRequest) { r.RadiusKm = 0.05 }, domain.CodeInvalidRadius},
		{"radius too large", func(r *dto.FeedRequest) { r.RadiusKm = 80 }, domain.CodeInvalidRadius},
		{"bad page", func(r *dto.FeedRequest) { r.Page = -1 }, domain.CodeInvalidPage},
		{"per_page too large", func(r *dto.FeedRequest) { r.PerPage = 500 }, domain.CodeInvalidPage},
		{"bad time filter", func(r *dto.FeedRequest) { r.When = "whenever" }, domain.CodeInvalidTimeFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := feedRequest()
			tt.mutate(req)
			_, err := svc.Discover(context.Background(), req, domain.RoleUser)
			require.Error(t, err)
			assert.Equal(t, tt.code, domain.CodeOf(err))
			assert.True(t, domain.IsKind(err, domain.KindValidation))
		})
	}
}

func TestDiscoverAcceptsBoundaryCoordinates(t *testing.T) {
	svc := newTestDiscovery(&MockCandidateSource{})

	tests := []struct {
		name     string
		lat, lng float64
	}{
		{"equator", 0, 10},
		{"prime meridian", 43.65, 0},
		{"null island", 0, 0},
		{"poles", 90, 0},
		{"south pole", -90, 0},
		{"antimeridian", 0, 180},
		{"antimeridian west", 0, -180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.FeedRequest{Lat: coord(tt.lat), Lng: coord(tt.lng)}
			resp, err := svc.Discover(context.Background(), req, domain.RoleUser)
			require.NoError(t, err)
			assert.Empty(t, resp.Items)
		})
	}
}

func TestDiscoverSourceFailureAborts(t *testing.T) {
	source := &MockCandidateSource{err: domain.NewExternalServiceError("CANDIDATE_SOURCE_UNAVAILABLE", "connection refused")}
	svc := newTestDiscovery(source)

	_, err := svc.Discover(context.Background(), feedRequest(), domain.RoleUser)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindExternalService))
}

func TestDiscoverParallelMatchesSequential(t *testing.T) {
	// Enough candidates to cross the fan-out threshold.
	var cands []repository.Candidate
	for i := 0; i < 200; i++ {
		lat := 43.60 + float64(i)*0.001
		cands = append(cands, candidateAt("deal", lat, queryLng, nil))
	}
	source := &MockCandidateSource{candidates: cands}

	store := repository.NewMemoryRuleStore(domain.DefaultRules())
	compliance := NewComplianceService(store, domain.ProvinceON)

	sequential := NewDiscoveryService(source, compliance, nil, clock.NewFixed(testNow), DiscoveryServiceConfig{
		Location:          time.UTC,
		ParallelThreshold: 1000,
	})
	parallel := NewDiscoveryService(source, compliance, nil, clock.NewFixed(testNow), DiscoveryServiceConfig{
		Location:          time.UTC,
		ParallelThreshold: 64,
	})

	req := feedRequest()
	req.PerPage = 100

	seqResp, err := sequential.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)
	parResp, err := parallel.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)

	require.Equal(t, seqResp.Pagination.Total, parResp.Pagination.Total)
	for i := range seqResp.Items {
		assert.Equal(t, seqResp.Items[i].DealID, parResp.Items[i].DealID)
	}
}

func TestSpotlightReturnsOnlyFeatured(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{
		candidateAt("plain", 43.6579, queryLng, nil),
		candidateAt("star", 43.6642, queryLng, func(d *domain.Deal) { d.IsFeatured = true }),
	}}
	svc := newTestDiscovery(source)

	resp, err := svc.Spotlight(context.Background(), feedRequest(), domain.RoleUser, 5)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "star", resp.Items[0].Title)
	assert.True(t, resp.Items[0].IsFeatured)
}

func TestDiscoverCategoryPushdown(t *testing.T) {
	source := &MockCandidateSource{candidates: []repository.Candidate{}}
	svc := newTestDiscovery(source)

	req := feedRequest()
	req.Category = "drink"

	_, err := svc.Discover(context.Background(), req, domain.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, source.lastFilter.Category)
	assert.Equal(t, domain.CategoryDrink, *source.lastFilter.Category)
}
