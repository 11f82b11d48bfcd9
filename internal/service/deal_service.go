package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/repository"
)

// DealService defines the interface for deal business logic
type DealService interface {
	// CreateDeal validates and persists a new deal for a venue
	CreateDeal(ctx context.Context, req *dto.CreateDealRequest) (*dto.DealResponse, error)

	// GetDeal retrieves a deal with the viewer's price disposition applied
	GetDeal(ctx context.Context, id uuid.UUID, viewer domain.Role) (*dto.DealResponse, error)

	// UpdateDeal applies a partial update and re-validates the result
	UpdateDeal(ctx context.Context, id uuid.UUID, req *dto.UpdateDealRequest) (*dto.DealResponse, error)

	// RedeemDeal records one redemption, failing once the cap is reached
	RedeemDeal(ctx context.Context, id uuid.UUID) (*dto.RedeemResponse, error)

	// FeatureDeal marks a deal as featured
	FeatureDeal(ctx context.Context, id uuid.UUID) (*dto.DealResponse, error)

	// UnfeatureDeal removes the featured mark
	UnfeatureDeal(ctx context.Context, id uuid.UUID) (*dto.DealResponse, error)

	// VerifyDeal records a verification by a moderator
	VerifyDeal(ctx context.Context, id, verifiedBy uuid.UUID) (*dto.DealResponse, error)
}

// dealService implements DealService
type dealService struct {
	deals      repository.DealRepository
	venues     repository.VenueRepository
	compliance ComplianceService
	clock      clock.Clock
}

// NewDealService creates a new deal service
func NewDealService(
	deals repository.DealRepository,
	venues repository.VenueRepository,
	compliance ComplianceService,
	clk clock.Clock,
) DealService {
	return &dealService{
		deals:      deals,
		venues:     venues,
		compliance: compliance,
		clock:      clk,
	}
}

// buildSchedule assembles a schedule from the request's day names and
// optional "HH:MM" window.
func buildSchedule(dayNames []string, startTime, endTime string) (domain.Schedule, error) {
	days := make([]domain.Weekday, 0, len(dayNames))
	for _, name := range dayNames {
		d, err := domain.ParseWeekday(name)
		if err != nil {
			return domain.Schedule{}, err
		}
		days = append(days, d)
	}

	var start, end *domain.TimeOfDay
	if startTime != "" {
		t, err := domain.ParseTimeOfDay(startTime)
		if err != nil {
			return domain.Schedule{}, err
		}
		start = &t
	}
	if endTime != "" {
		t, err := domain.ParseTimeOfDay(endTime)
		if err != nil {
			return domain.Schedule{}, err
		}
		end = &t
	}

	return domain.NewSchedule(days, start, end)
}

// validatePricing enforces deal_price < original_price when both are set.
// Overnight windows are legal; equal start and end are rejected by the
// schedule's own validation.
func validatePricing(original, deal *float64) error {
	if original != nil && deal != nil && *deal >= *original {
		return domain.NewValidationError(domain.CodeInvalidDealPricing,
			"deal price must be less than original price")
	}
	return nil
}

func (s *dealService) CreateDeal(ctx context.Context, req *dto.CreateDealRequest) (*dto.DealResponse, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, domain.NewValidationError("INVALID_VENUE_ID", "venue_id must be a valid UUID")
	}

	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	schedule, err := buildSchedule(req.Days, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := validatePricing(req.OriginalPrice, req.DealPrice); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	deal := domain.Deal{
		ID:                      uuid.New(),
		VenueID:                 venueID,
		Title:                   req.Title,
		Description:             req.Description,
		Category:                domain.DealCategory(req.Category),
		OriginalPrice:           req.OriginalPrice,
		DealPrice:               req.DealPrice,
		Schedule:                schedule,
		Restrictions:            req.Restrictions,
		Terms:                   req.Terms,
		MaxRedemptions:          req.MaxRedemptions,
		IsActive:                true,
		RequiresAgeVerification: req.RequiresAgeVerification,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := deal.Validate(); err != nil {
		return nil, err
	}
	if err := s.compliance.ValidateForJurisdiction(deal, venue.Province); err != nil {
		return nil, err
	}

	if err := s.deals.Create(ctx, &deal); err != nil {
		return nil, err
	}

	return s.respond(ctx, deal, domain.RoleVendor), nil
}

func (s *dealService) GetDeal(ctx context.Context, id uuid.UUID, viewer domain.Role) (*dto.DealResponse, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, deal, viewer), nil
}

func (s *dealService) UpdateDeal(ctx context.Context, id uuid.UUID, req *dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		deal.Title = req.Title
	}
	if req.Description != "" {
		deal.Description = req.Description
	}
	if req.Category != "" {
		deal.Category = domain.DealCategory(req.Category)
	}
	if req.OriginalPrice != nil {
		deal.OriginalPrice = req.OriginalPrice
	}
	if req.DealPrice != nil {
		deal.DealPrice = req.DealPrice
	}
	if req.Days != nil || req.StartTime != "" || req.EndTime != "" {
		days := req.Days
		if days == nil {
			names := deal.Schedule.ActiveDays()
			days = make([]string, len(names))
			for i, d := range names {
				days[i] = d.String()
			}
		}
		start, end := req.StartTime, req.EndTime
		if start == "" && deal.Schedule.StartTime != nil {
			start = deal.Schedule.StartTime.String()
		}
		if end == "" && deal.Schedule.EndTime != nil {
			end = deal.Schedule.EndTime.String()
		}
		schedule, err := buildSchedule(days, start, end)
		if err != nil {
			return nil, err
		}
		deal.Schedule = schedule
	}
	if req.Restrictions != "" {
		deal.Restrictions = req.Restrictions
	}
	if req.Terms != "" {
		deal.Terms = req.Terms
	}
	if req.MaxRedemptions != nil {
		deal.MaxRedemptions = req.MaxRedemptions
	}
	if req.IsActive != nil {
		deal.IsActive = *req.IsActive
	}
	if req.RequiresAgeVerification != nil {
		deal.RequiresAgeVerification = *req.RequiresAgeVerification
	}

	if err := validatePricing(deal.OriginalPrice, deal.DealPrice); err != nil {
		return nil, err
	}
	if err := deal.Validate(); err != nil {
		return nil, err
	}

	venue, err := s.venues.GetByID(ctx, deal.VenueID)
	if err != nil {
		return nil, err
	}
	if err := s.compliance.ValidateForJurisdiction(deal, venue.Province); err != nil {
		return nil, err
	}

	deal.UpdatedAt = s.clock.Now()
	if err := s.deals.Update(ctx, deal); err != nil {
		return nil, err
	}

	return s.respond(ctx, deal, domain.RoleVendor), nil
}

// RedeemDeal applies the redemption through an optimistic counter guard
// so concurrent redemptions can never exceed the cap.
func (s *dealService) RedeemDeal(ctx context.Context, id uuid.UUID) (*dto.RedeemResponse, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	redeemed, ok := deal.Redeem(s.clock.Now())
	if !ok {
		return nil, domain.NewBusinessRuleError(domain.CodeRedemptionExhausted,
			"deal has no redemptions remaining").
			WithDetail("deal_id", id.String())
	}

	applied, err := s.deals.IncrementRedemptions(ctx, id, deal.RedemptionsUsed)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost the race to another redemption that took the last slot.
		return nil, domain.NewBusinessRuleError(domain.CodeRedemptionExhausted,
			"deal has no redemptions remaining").
			WithDetail("deal_id", id.String())
	}

	return &dto.RedeemResponse{
		DealID:          id.String(),
		Redeemed:        true,
		RedemptionsUsed: redeemed.RedemptionsUsed,
		MaxRedemptions:  redeemed.MaxRedemptions,
	}, nil
}

func (s *dealService) FeatureDeal(ctx context.Context, id uuid.UUID) (*dto.DealResponse, error) {
	return s.applyTransition(ctx, id, func(d domain.Deal, now time.Time) domain.Deal {
		return d.Feature(now)
	})
}

func (s *dealService) UnfeatureDeal(ctx context.Context, id uuid.UUID) (*dto.DealResponse, error) {
	return s.applyTransition(ctx, id, func(d domain.Deal, now time.Time) domain.Deal {
		return d.Unfeature(now)
	})
}

func (s *dealService) VerifyDeal(ctx context.Context, id, verifiedBy uuid.UUID) (*dto.DealResponse, error) {
	return s.applyTransition(ctx, id, func(d domain.Deal, now time.Time) domain.Deal {
		return d.Verify(verifiedBy, now)
	})
}

func (s *dealService) applyTransition(ctx context.Context, id uuid.UUID, transition func(domain.Deal, time.Time) domain.Deal) (*dto.DealResponse, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := transition(deal, s.clock.Now())
	if err := s.deals.Update(ctx, updated); err != nil {
		return nil, err
	}

	return s.respond(ctx, updated, domain.RoleAdmin), nil
}

// respond projects the deal with the viewer's compliance disposition.
// Venue lookup failure degrades to the default jurisdiction rather than
// failing the read.
func (s *dealService) respond(ctx context.Context, deal domain.Deal, viewer domain.Role) *dto.DealResponse {
	province := domain.DefaultProvince
	if venue, err := s.venues.GetByID(ctx, deal.VenueID); err == nil {
		province = venue.Province
	}

	disposition, _ := s.compliance.ResolvePriceDisposition(deal, province, viewer)
	shaped := s.compliance.ApplyDisposition(deal, disposition)

	disclaimer := ""
	if disposition == domain.DispositionRedact {
		disclaimer = s.compliance.Disclaimer(province)
	}
	return dto.NewDealResponse(shaped, disposition, disclaimer)
}
