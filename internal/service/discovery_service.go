package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/geo"
	"github.com/jainnhimanshuu/savorini/internal/repository"
	"github.com/jainnhimanshuu/savorini/pkg/logger"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	// fanOutWorkers bounds the per-request goroutines used for large
	// candidate sets.
	fanOutWorkers = 8
)

// DiscoveryService defines the interface for the deal discovery feed
type DiscoveryService interface {
	// Discover runs the full feed pipeline for a viewer
	Discover(ctx context.Context, req *dto.FeedRequest, viewer domain.Role) (*dto.FeedResponse, error)

	// Spotlight returns the top featured deals within radius
	Spotlight(ctx context.Context, req *dto.FeedRequest, viewer domain.Role, limit int) (*dto.FeedResponse, error)
}

// DiscoveryServiceConfig contains configuration for the discovery service
type DiscoveryServiceConfig struct {
	DefaultRadiusKm   float64
	MinRadiusKm       float64
	MaxRadiusKm       float64
	SoonLookahead     time.Duration
	DefaultProvince   domain.Province
	Location          *time.Location
	FeedCacheTTL      time.Duration
	ParallelThreshold int
}

// discoveryService implements DiscoveryService
type discoveryService struct {
	candidates repository.CandidateSource
	compliance ComplianceService
	cache      repository.FeedCache
	clock      clock.Clock
	cfg        DiscoveryServiceConfig
}

// NewDiscoveryService creates a new discovery service. cache may be nil
// to disable feed caching.
func NewDiscoveryService(
	candidates repository.CandidateSource,
	compliance ComplianceService,
	cache repository.FeedCache,
	clk clock.Clock,
	cfg DiscoveryServiceConfig,
) DiscoveryService {
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = 10
	}
	if cfg.MinRadiusKm <= 0 {
		cfg.MinRadiusKm = 0.1
	}
	if cfg.MaxRadiusKm <= 0 {
		cfg.MaxRadiusKm = 50
	}
	if cfg.SoonLookahead <= 0 {
		cfg.SoonLookahead = 60 * time.Minute
	}
	if !cfg.DefaultProvince.IsValid() {
		cfg.DefaultProvince = domain.DefaultProvince
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = 64
	}
	return &discoveryService{
		candidates: candidates,
		compliance: compliance,
		cache:      cache,
		clock:      clk,
		cfg:        cfg,
	}
}

// feedQuery is the validated form of a feed request.
type feedQuery struct {
	center     geo.Point
	radiusKm   float64
	when       domain.TimeFilter
	category   *domain.DealCategory
	province   *domain.Province
	minSavings *float64
	page       int
	perPage    int
}

func (s *discoveryService) parseRequest(req *dto.FeedRequest) (feedQuery, error) {
	if req.Lat == nil || req.Lng == nil {
		return feedQuery{}, domain.NewValidationError(domain.CodeInvalidCoordinates,
			"lat and lng are required")
	}

	q := feedQuery{
		center:     geo.Point{Lat: *req.Lat, Lng: *req.Lng},
		radiusKm:   req.RadiusKm,
		minSavings: req.MinSavings,
		page:       req.Page,
		perPage:    req.PerPage,
	}

	if err := q.center.Validate(); err != nil {
		return feedQuery{}, err
	}

	if q.radiusKm == 0 {
		q.radiusKm = s.cfg.DefaultRadiusKm
	}
	if math.IsNaN(q.radiusKm) || q.radiusKm < s.cfg.MinRadiusKm || q.radiusKm > s.cfg.MaxRadiusKm {
		return feedQuery{}, domain.NewValidationError(domain.CodeInvalidRadius,
			fmt.Sprintf("radius must be within [%g, %g] km", s.cfg.MinRadiusKm, s.cfg.MaxRadiusKm))
	}

	when, err := domain.ParseTimeFilter(req.When)
	if err != nil {
		return feedQuery{}, err
	}
	q.when = when

	if req.Category != "" {
		c := domain.DealCategory(req.Category)
		if !c.IsValid() {
			return feedQuery{}, domain.NewValidationError("INVALID_CATEGORY",
				fmt.Sprintf("unknown deal category %q", req.Category))
		}
		q.category = &c
	}

	if req.Province != "" {
		p := domain.Province(strings.ToUpper(req.Province))
		if !p.IsValid() {
			return feedQuery{}, domain.NewValidationError("INVALID_PROVINCE",
				fmt.Sprintf("unknown province code %q", req.Province))
		}
		q.province = &p
	}

	if q.minSavings != nil && (*q.minSavings < 0 || math.IsNaN(*q.minSavings)) {
		return feedQuery{}, domain.NewValidationError("INVALID_MIN_SAVINGS",
			"min_savings must be non-negative")
	}

	if q.page == 0 {
		q.page = 1
	}
	if q.page < 1 {
		return feedQuery{}, domain.NewValidationError(domain.CodeInvalidPage, "page must be >= 1")
	}
	if q.perPage == 0 {
		q.perPage = defaultPerPage
	}
	if q.perPage < 1 || q.perPage > maxPerPage {
		return feedQuery{}, domain.NewValidationError(domain.CodeInvalidPage,
			fmt.Sprintf("per_page must be within [1, %d]", maxPerPage))
	}

	return q, nil
}

// scored is a candidate that survived geo filtering.
type scored struct {
	cand     repository.Candidate
	distance float64
}

func (s *discoveryService) Discover(ctx context.Context, req *dto.FeedRequest, viewer domain.Role) (*dto.FeedResponse, error) {
	q, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(q, viewer)
	if s.cache != nil {
		if payload, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
			logger.Get().Warn("feed cache read failed", zap.Error(err))
		} else if ok {
			var resp dto.FeedResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	items, err := s.evaluate(ctx, q, viewer)
	if err != nil {
		return nil, err
	}

	total := len(items)
	pages := (total + q.perPage - 1) / q.perPage
	start := (q.page - 1) * q.perPage
	end := start + q.perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	resp := &dto.FeedResponse{
		Items: items[start:end],
		Pagination: dto.PaginationMeta{
			Page:    q.page,
			PerPage: q.perPage,
			Total:   total,
			Pages:   pages,
			HasNext: q.page < pages,
			HasPrev: q.page > 1 && total > 0,
		},
		When: string(q.when),
		Location: dto.FeedLocation{
			Lat:      q.center.Lat,
			Lng:      q.center.Lng,
			RadiusKm: q.radiusKm,
		},
	}
	if q.category != nil {
		resp.Filters.Category = q.category.String()
	}
	if q.province != nil {
		resp.Filters.Province = q.province.String()
	}
	resp.Filters.MinSavings = q.minSavings

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cfg.FeedCacheTTL); err != nil {
				logger.Get().Warn("feed cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *discoveryService) Spotlight(ctx context.Context, req *dto.FeedRequest, viewer domain.Role, limit int) (*dto.FeedResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	q, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	items, err := s.evaluate(ctx, q, viewer)
	if err != nil {
		return nil, err
	}

	featured := make([]dto.FeedItem, 0, limit)
	for _, item := range items {
		if !item.IsFeatured {
			break // featured-first ordering, so the run ends here
		}
		featured = append(featured, item)
		if len(featured) == limit {
			break
		}
	}

	return &dto.FeedResponse{
		Items: featured,
		Pagination: dto.PaginationMeta{
			Page:    1,
			PerPage: limit,
			Total:   len(featured),
			Pages:   1,
		},
		When: string(q.when),
		Location: dto.FeedLocation{
			Lat:      q.center.Lat,
			Lng:      q.center.Lng,
			RadiusKm: q.radiusKm,
		},
	}, nil
}

// evaluate runs fetch, geo, schedule, attribute and compliance filtering
// and returns the fully sorted, unpaginated item list.
func (s *discoveryService) evaluate(ctx context.Context, q feedQuery, viewer domain.Role) ([]dto.FeedItem, error) {
	filter := repository.CandidateFilter{
		Category: q.category,
		Province: q.province,
	}
	cands, err := s.candidates.FetchActiveDeals(ctx, filter)
	if err != nil {
		return nil, err
	}

	radius, err := geo.NewRadiusFilter(q.center, q.radiusKm)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(s.cfg.Location)

	keep := func(c repository.Candidate) (scored, bool) {
		lat, lng, ok := c.Venue.Coordinates()
		if !ok {
			return scored{}, false
		}
		d, in := radius.Distance(geo.Point{Lat: lat, Lng: lng})
		if !in {
			return scored{}, false
		}
		if !c.Deal.Schedule.MatchesTimeFilter(q.when, now, s.cfg.SoonLookahead) {
			return scored{}, false
		}
		// The source pushes category down, but re-check regardless.
		if q.category != nil && c.Deal.Category != *q.category {
			return scored{}, false
		}
		if q.province != nil && c.Venue.Province != *q.province {
			return scored{}, false
		}
		if q.minSavings != nil {
			sav := c.Deal.SavingsAmount()
			if sav == nil || *sav < *q.minSavings {
				return scored{}, false
			}
		}
		return scored{cand: c, distance: d}, true
	}

	var survivors []scored
	if len(cands) >= s.cfg.ParallelThreshold {
		survivors = filterParallel(cands, keep)
	} else {
		survivors = make([]scored, 0, len(cands))
		for _, c := range cands {
			if sc, ok := keep(c); ok {
				survivors = append(survivors, sc)
			}
		}
	}

	// Featured first, then nearest, then ID so equal-distance results
	// are stable across requests.
	sort.Slice(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a.cand.Deal.IsFeatured != b.cand.Deal.IsFeatured {
			return a.cand.Deal.IsFeatured
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.cand.Deal.ID.String() < b.cand.Deal.ID.String()
	})

	items := make([]dto.FeedItem, 0, len(survivors))
	for _, sc := range survivors {
		items = append(items, s.project(sc, viewer))
	}
	return items, nil
}

// filterParallel fans candidate evaluation out over a bounded worker
// pool. Per-candidate results land at their input index so assembly is
// deterministic.
func filterParallel(cands []repository.Candidate, keep func(repository.Candidate) (scored, bool)) []scored {
	type slot struct {
		sc scored
		ok bool
	}
	slots := make([]slot, len(cands))

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < fanOutWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sc, ok := keep(cands[i])
				slots[i] = slot{sc: sc, ok: ok}
			}
		}()
	}
	for i := range cands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]scored, 0, len(cands))
	for _, s := range slots {
		if s.ok {
			out = append(out, s.sc)
		}
	}
	return out
}

// project applies the compliance disposition and shapes the outward item.
// Compliance never removes a deal from the feed, only its prices.
func (s *discoveryService) project(sc scored, viewer domain.Role) dto.FeedItem {
	deal, venue := sc.cand.Deal, sc.cand.Venue

	disposition, fellBack := s.compliance.ResolvePriceDisposition(deal, venue.Province, viewer)
	shaped := s.compliance.ApplyDisposition(deal, disposition)

	item := dto.FeedItem{
		DealID:                  deal.ID.String(),
		VenueID:                 venue.ID.String(),
		Title:                   deal.Title,
		Description:             deal.Description,
		Category:                deal.Category.String(),
		VenueName:               venue.Name,
		VenueAddress:            venue.Address,
		VenueCity:               venue.City,
		Province:                venue.Province.String(),
		DistanceKm:              math.Round(sc.distance*100) / 100,
		OriginalPrice:           shaped.OriginalPrice,
		DealPrice:               shaped.DealPrice,
		SavingsAmount:           shaped.SavingsAmount(),
		SavingsPercentage:       shaped.SavingsPercentage(),
		PriceDisposition:        string(disposition),
		RuleFallback:            fellBack,
		IsFeatured:              deal.IsFeatured,
		RequiresAgeVerification: deal.RequiresAgeVerification,
	}

	if deal.Schedule.StartTime != nil {
		item.StartsAt = deal.Schedule.StartTime.String()
		item.EndsAt = deal.Schedule.EndTime.String()
	}

	if disposition == domain.DispositionRedact {
		item.Disclaimer = s.compliance.Disclaimer(venue.Province)
	}

	return item
}

func (s *discoveryService) cacheKey(q feedQuery, viewer domain.Role) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.4f:%.4f:%.1f:%s:%s", q.center.Lat, q.center.Lng, q.radiusKm, q.when, viewer)
	if q.category != nil {
		fmt.Fprintf(&b, ":c=%s", *q.category)
	}
	if q.province != nil {
		fmt.Fprintf(&b, ":p=%s", *q.province)
	}
	if q.minSavings != nil {
		fmt.Fprintf(&b, ":s=%g", *q.minSavings)
	}
	fmt.Fprintf(&b, ":%d:%d", q.page, q.perPage)
	return b.String()
}
