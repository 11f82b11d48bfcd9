package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// Candidate is a (deal, venue) pair eligible for discovery filtering.
type Candidate struct {
	Deal  domain.Deal
	Venue domain.Venue
}

// CandidateFilter is pushed down to the candidate source where
// possible; the discovery core always re-applies geo, schedule and
// compliance filtering regardless of what the source pre-filtered.
type CandidateFilter struct {
	Category *domain.DealCategory
	Province *domain.Province
	VenueID  *uuid.UUID
}

// CandidateSource supplies active deals at active venues for discovery.
type CandidateSource interface {
	FetchActiveDeals(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
}

// RuleStore is the in-process jurisdiction rule table. Reads never
// block on writes; ReplaceAll swaps in a new immutable snapshot.
type RuleStore interface {
	Get(province domain.Province) (domain.JurisdictionRule, bool)
	ListAll() []domain.JurisdictionRule
	ReplaceAll(rules []domain.JurisdictionRule)
}

// RuleSource loads and persists jurisdiction rules in durable storage.
type RuleSource interface {
	LoadAll(ctx context.Context) ([]domain.JurisdictionRule, error)
	SaveAll(ctx context.Context, rules []domain.JurisdictionRule) error
}

// DealRepository persists deals.
type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	Update(ctx context.Context, deal domain.Deal) error
	// IncrementRedemptions records a redemption only when the stored
	// counter still equals expectedUsed, so concurrent redemptions can
	// never exceed the cap. Reports whether the guard matched.
	IncrementRedemptions(ctx context.Context, id uuid.UUID, expectedUsed int) (bool, error)
}

// VenueRepository persists venues.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Venue, error)
	Update(ctx context.Context, venue domain.Venue) error
	ListActive(ctx context.Context, limit int) ([]domain.Venue, error)
}

// FeedCache caches serialized discovery responses briefly.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
