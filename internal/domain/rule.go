package domain

import "time"

// JurisdictionRule holds the province-specific rules governing price
// and marketing display.
type JurisdictionRule struct {
	Province   Province `json:"province"`
	Disclaimer string   `json:"disclaimer,omitempty"`

	AllowPriceDisplay bool `json:"allow_price_display"`

	// Alcohol-specific rules
	RequireAgeVerification bool `json:"require_age_verification"`
	MinAge                 int  `json:"min_age"`
	HideAlcoholPrices      bool `json:"hide_alcohol_prices"`

	// Alcohol sales hours, if the province restricts them
	AlcoholSalesStart *TimeOfDay `json:"alcohol_sales_start,omitempty"`
	AlcoholSalesEnd   *TimeOfDay `json:"alcohol_sales_end,omitempty"`

	// Marketing restrictions
	AllowHappyHourMarketing bool     `json:"allow_happy_hour_marketing"`
	MaxDiscountPercentage   *float64 `json:"max_discount_percentage,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the rule's fields
func (r JurisdictionRule) Validate() error {
	if !r.Province.IsValid() {
		return NewValidationError("INVALID_PROVINCE", "unknown province code")
	}
	if r.MinAge < 0 {
		return NewValidationError("INVALID_MIN_AGE", "minimum age must be non-negative")
	}
	if r.MaxDiscountPercentage != nil && (*r.MaxDiscountPercentage < 0 || *r.MaxDiscountPercentage > 100) {
		return NewValidationError("INVALID_DISCOUNT_LIMIT", "max discount percentage must be in [0, 100]")
	}
	return nil
}

func timeOfDayPtr(t TimeOfDay) *TimeOfDay { return &t }

// DefaultRules returns the built-in rule sets for the initially
// supported provinces. Alberta restricts public price display.
func DefaultRules() []JurisdictionRule {
	return []JurisdictionRule{
		{
			Province:                ProvinceON,
			AllowPriceDisplay:       true,
			RequireAgeVerification:  true,
			MinAge:                  19,
			AllowHappyHourMarketing: true,
			AlcoholSalesStart:       timeOfDayPtr(MustTimeOfDay(11, 0)),
			AlcoholSalesEnd:         timeOfDayPtr(MustTimeOfDay(2, 0)),
			Disclaimer:              "Must be 19+ to consume alcohol. Please drink responsibly.",
		},
		{
			Province:                ProvinceBC,
			AllowPriceDisplay:       true,
			RequireAgeVerification:  true,
			MinAge:                  19,
			AllowHappyHourMarketing: true,
			AlcoholSalesStart:       timeOfDayPtr(MustTimeOfDay(11, 0)),
			AlcoholSalesEnd:         timeOfDayPtr(MustTimeOfDay(2, 0)),
			Disclaimer:              "Must be 19+ to consume alcohol. Please drink responsibly.",
		},
		{
			Province:                ProvinceAB,
			AllowPriceDisplay:       false,
			RequireAgeVerification:  true,
			MinAge:                  18,
			AllowHappyHourMarketing: true,
			AlcoholSalesStart:       timeOfDayPtr(MustTimeOfDay(11, 0)),
			AlcoholSalesEnd:         timeOfDayPtr(MustTimeOfDay(2, 0)),
			Disclaimer:              "Must be 18+ to consume alcohol. Prices subject to change. Please drink responsibly.",
		},
	}
}
