package dto

import (
	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// RuleResponse is the outward-facing jurisdiction rule projection
type RuleResponse struct {
	Province                string   `json:"province"`
	ProvinceName            string   `json:"province_name"`
	AllowPriceDisplay       bool     `json:"allow_price_display"`
	RequireAgeVerification  bool     `json:"require_age_verification"`
	MinAge                  int      `json:"min_age"`
	HideAlcoholPrices       bool     `json:"hide_alcohol_prices"`
	AllowHappyHourMarketing bool     `json:"allow_happy_hour_marketing"`
	MaxDiscountPercentage   *float64 `json:"max_discount_percentage,omitempty"`
	Disclaimer              string   `json:"disclaimer,omitempty"`
}

// NewRuleResponse projects a jurisdiction rule for the API
func NewRuleResponse(r domain.JurisdictionRule) RuleResponse {
	return RuleResponse{
		Province:                r.Province.String(),
		ProvinceName:            r.Province.Name(),
		AllowPriceDisplay:       r.AllowPriceDisplay,
		RequireAgeVerification:  r.RequireAgeVerification,
		MinAge:                  r.MinAge,
		HideAlcoholPrices:       r.HideAlcoholPrices,
		AllowHappyHourMarketing: r.AllowHappyHourMarketing,
		MaxDiscountPercentage:   r.MaxDiscountPercentage,
		Disclaimer:              r.Disclaimer,
	}
}

// ReplaceRulesRequest carries an administrative full rule-set replacement
type ReplaceRulesRequest struct {
	Rules []RuleRequest `json:"rules" binding:"required"`
}

// RuleRequest is one rule in a replacement payload
type RuleRequest struct {
	Province                string   `json:"province" binding:"required"`
	AllowPriceDisplay       bool     `json:"allow_price_display"`
	RequireAgeVerification  bool     `json:"require_age_verification"`
	MinAge                  int      `json:"min_age"`
	HideAlcoholPrices       bool     `json:"hide_alcohol_prices"`
	AllowHappyHourMarketing bool     `json:"allow_happy_hour_marketing"`
	MaxDiscountPercentage   *float64 `json:"max_discount_percentage"`
	Disclaimer              string   `json:"disclaimer"`
}
