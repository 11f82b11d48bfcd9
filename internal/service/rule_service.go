package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/repository"
	"github.com/jainnhimanshuu/savorini/pkg/logger"
)

// RuleService defines the interface for jurisdiction rule administration
type RuleService interface {
	// Load populates the in-memory snapshot from durable storage,
	// seeding the built-in defaults when nothing is stored yet
	Load(ctx context.Context) error

	// ListRules returns all configured rules
	ListRules() []dto.RuleResponse

	// ReplaceRules swaps in a complete new rule set atomically and
	// persists it
	ReplaceRules(ctx context.Context, req *dto.ReplaceRulesRequest) ([]dto.RuleResponse, error)
}

// ruleService implements RuleService
type ruleService struct {
	store  repository.RuleStore
	source repository.RuleSource
	clock  clock.Clock
}

// NewRuleService creates a new rule service. source may be nil when the
// service runs without durable rule storage.
func NewRuleService(store repository.RuleStore, source repository.RuleSource, clk clock.Clock) RuleService {
	return &ruleService{store: store, source: source, clock: clk}
}

func (s *ruleService) Load(ctx context.Context) error {
	rules := domain.DefaultRules()

	if s.source != nil {
		stored, err := s.source.LoadAll(ctx)
		if err != nil {
			return err
		}
		if len(stored) > 0 {
			rules = stored
		} else {
			logger.Get().Info("no stored jurisdiction rules, seeding defaults",
				zap.Int("count", len(rules)))
			if err := s.source.SaveAll(ctx, rules); err != nil {
				return err
			}
		}
	}

	s.store.ReplaceAll(rules)
	logger.Get().Info("jurisdiction rules loaded", zap.Int("count", len(rules)))
	return nil
}

func (s *ruleService) ListRules() []dto.RuleResponse {
	rules := s.store.ListAll()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Province < rules[j].Province
	})

	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.NewRuleResponse(r))
	}
	return out
}

func (s *ruleService) ReplaceRules(ctx context.Context, req *dto.ReplaceRulesRequest) ([]dto.RuleResponse, error) {
	if len(req.Rules) == 0 {
		return nil, domain.NewValidationError("EMPTY_RULE_SET", "at least one rule is required")
	}

	now := s.clock.Now()
	rules := make([]domain.JurisdictionRule, 0, len(req.Rules))
	seen := make(map[domain.Province]bool, len(req.Rules))
	for _, rr := range req.Rules {
		rule := domain.JurisdictionRule{
			Province:                domain.Province(strings.ToUpper(rr.Province)),
			Disclaimer:              rr.Disclaimer,
			AllowPriceDisplay:       rr.AllowPriceDisplay,
			RequireAgeVerification:  rr.RequireAgeVerification,
			MinAge:                  rr.MinAge,
			HideAlcoholPrices:       rr.HideAlcoholPrices,
			AllowHappyHourMarketing: rr.AllowHappyHourMarketing,
			MaxDiscountPercentage:   rr.MaxDiscountPercentage,
			UpdatedAt:               now,
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if seen[rule.Province] {
			return nil, domain.NewValidationError("DUPLICATE_PROVINCE",
				"rule set contains the same province twice")
		}
		seen[rule.Province] = true
		rules = append(rules, rule)
	}

	if s.source != nil {
		if err := s.source.SaveAll(ctx, rules); err != nil {
			return nil, err
		}
	}

	// In-flight requests keep the old snapshot until the swap completes.
	s.store.ReplaceAll(rules)
	logger.Get().Info("jurisdiction rules replaced", zap.Int("count", len(rules)))

	return s.ListRules(), nil
}
