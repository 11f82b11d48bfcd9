package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/repository"
	"github.com/jainnhimanshuu/savorini/pkg/logger"
)

// alcoholKeywords flags a deal as alcohol-related when any of them
// appears in the title or description. This is a heuristic with known
// false positives ("bar" matches "barbecue"); kept as-is because
// changing it would silently change which deals get their prices hidden.
// TODO: replace with an explicit alcohol flag on the deal once vendors
// can set one.
var alcoholKeywords = []string{
	"beer", "wine", "cocktail", "drink", "alcohol", "spirits",
	"whiskey", "vodka", "gin", "rum", "tequila", "liqueur",
	"bar", "pub", "brewery", "winery", "distillery",
}

// ComplianceService defines the interface for jurisdiction rule lookups
// and price-visibility decisions
type ComplianceService interface {
	// RuleFor resolves the rule set for a province, falling back to the
	// default province when none is configured. fellBack reports whether
	// the fallback was taken.
	RuleFor(province domain.Province) (rule domain.JurisdictionRule, fellBack bool)

	// ResolvePriceDisposition decides how the viewer sees the deal's prices
	ResolvePriceDisposition(deal domain.Deal, province domain.Province, viewer domain.Role) (domain.PriceDisposition, bool)

	// ApplyDisposition returns the deal shaped for the disposition: hide
	// strips the prices, redact and show leave them in place (redact
	// relies on the projection layer attaching the disclaimer)
	ApplyDisposition(deal domain.Deal, disposition domain.PriceDisposition) domain.Deal

	// Disclaimer returns the disclaimer text to attach for a province
	Disclaimer(province domain.Province) string

	// ValidateForJurisdiction checks a deal against its venue's province
	// rules before it is created or updated
	ValidateForJurisdiction(deal domain.Deal, province domain.Province) error

	// IsAlcoholDeal reports whether the deal triggers alcohol rules
	IsAlcoholDeal(deal domain.Deal) bool
}

// complianceService implements ComplianceService
type complianceService struct {
	rules           repository.RuleStore
	defaultProvince domain.Province
}

// NewComplianceService creates a new compliance service
func NewComplianceService(rules repository.RuleStore, defaultProvince domain.Province) ComplianceService {
	if !defaultProvince.IsValid() {
		defaultProvince = domain.DefaultProvince
	}
	return &complianceService{
		rules:           rules,
		defaultProvince: defaultProvince,
	}
}

func (s *complianceService) RuleFor(province domain.Province) (domain.JurisdictionRule, bool) {
	if rule, ok := s.rules.Get(province); ok {
		return rule, false
	}

	logger.Get().Warn("no jurisdiction rule configured, using default province",
		zap.String("province", province.String()),
		zap.String("default_province", s.defaultProvince.String()),
	)

	if rule, ok := s.rules.Get(s.defaultProvince); ok {
		return rule, true
	}

	// Even the default province is unconfigured: show nothing
	// price-related rather than guessing.
	return domain.JurisdictionRule{
		Province:          s.defaultProvince,
		AllowPriceDisplay: false,
		HideAlcoholPrices: true,
	}, true
}

// ResolvePriceDisposition applies the visibility ladder: operators
// always see prices; otherwise the province decides, with alcohol deals
// hidden entirely where the province demands it.
func (s *complianceService) ResolvePriceDisposition(deal domain.Deal, province domain.Province, viewer domain.Role) (domain.PriceDisposition, bool) {
	if viewer.IsOperator() {
		return domain.DispositionShow, false
	}

	rule, fellBack := s.RuleFor(province)

	if rule.AllowPriceDisplay {
		return domain.DispositionShow, fellBack
	}
	if rule.HideAlcoholPrices && s.IsAlcoholDeal(deal) {
		return domain.DispositionHide, fellBack
	}
	return domain.DispositionRedact, fellBack
}

func (s *complianceService) ApplyDisposition(deal domain.Deal, disposition domain.PriceDisposition) domain.Deal {
	if disposition == domain.DispositionHide {
		return deal.WithoutPrices()
	}
	return deal
}

func (s *complianceService) Disclaimer(province domain.Province) string {
	rule, _ := s.RuleFor(province)
	return rule.Disclaimer
}

func (s *complianceService) ValidateForJurisdiction(deal domain.Deal, province domain.Province) error {
	rule, _ := s.RuleFor(province)

	if s.IsAlcoholDeal(deal) && rule.RequireAgeVerification && !deal.RequiresAgeVerification {
		return domain.NewBusinessRuleError(domain.CodeAgeVerificationRequired,
			fmt.Sprintf("alcohol deals in %s require age verification", province)).
			WithDetail("province", province.String()).
			WithDetail("min_age", rule.MinAge)
	}

	if rule.MaxDiscountPercentage != nil {
		if pct := deal.SavingsPercentage(); pct != nil && *pct > *rule.MaxDiscountPercentage {
			return domain.NewBusinessRuleError(domain.CodeDiscountLimitExceeded,
				fmt.Sprintf("discount exceeds maximum allowed in %s (%.0f%%)",
					province, *rule.MaxDiscountPercentage)).
				WithDetail("province", province.String()).
				WithDetail("savings_percentage", *pct).
				WithDetail("max_discount_percentage", *rule.MaxDiscountPercentage)
		}
	}

	if !rule.AllowHappyHourMarketing && mentionsHappyHour(deal) {
		return domain.NewBusinessRuleError(domain.CodeHappyHourRestricted,
			fmt.Sprintf("happy hour marketing not allowed in %s", province)).
			WithDetail("province", province.String())
	}

	return nil
}

func (s *complianceService) IsAlcoholDeal(deal domain.Deal) bool {
	haystack := strings.ToLower(deal.Title + " " + deal.Description)
	for _, kw := range alcoholKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func mentionsHappyHour(deal domain.Deal) bool {
	return strings.Contains(strings.ToLower(deal.Title), "happy hour") ||
		strings.Contains(strings.ToLower(deal.Description), "happy hour")
}
