package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DealCategory classifies a deal
type DealCategory string

const (
	CategoryFood   DealCategory = "food"
	CategoryDrink  DealCategory = "drink"
	CategoryBundle DealCategory = "bundle"
	CategoryEvent  DealCategory = "event"
)

// IsValid checks if the category is a known DealCategory
func (c DealCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryDrink, CategoryBundle, CategoryEvent:
		return true
	}
	return false
}

func (c DealCategory) String() string {
	return string(c)
}

// PriceDisposition is the computed price-visibility outcome for a
// specific viewer.
type PriceDisposition string

const (
	DispositionShow   PriceDisposition = "show"
	DispositionRedact PriceDisposition = "redact"
	DispositionHide   PriceDisposition = "hide"
)

// Deal represents a recurring venue deal
type Deal struct {
	ID          uuid.UUID    `json:"id"`
	VenueID     uuid.UUID    `json:"venue_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    DealCategory `json:"category"`

	OriginalPrice *float64 `json:"original_price,omitempty"`
	DealPrice     *float64 `json:"deal_price,omitempty"`

	Schedule Schedule `json:"schedule"`

	Restrictions string `json:"restrictions,omitempty"`
	Terms        string `json:"terms,omitempty"`

	MaxRedemptions  *int `json:"max_redemptions,omitempty"`
	RedemptionsUsed int  `json:"redemptions_used"`

	IsActive                bool `json:"is_active"`
	IsFeatured              bool `json:"is_featured"`
	RequiresAgeVerification bool `json:"requires_age_verification"`

	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
	VerifiedBy     *uuid.UUID `json:"verified_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates all deal fields
func (d Deal) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return NewValidationError("INVALID_TITLE", "deal title is required")
	}
	if len(d.Title) > 255 {
		return NewValidationError("INVALID_TITLE", "deal title exceeds 255 characters")
	}
	if !d.Category.IsValid() {
		return NewValidationError("INVALID_CATEGORY", "unknown deal category")
	}
	if d.OriginalPrice != nil && *d.OriginalPrice < 0 {
		return NewValidationError(CodeInvalidDealPricing, "original price must be non-negative")
	}
	if d.DealPrice != nil && *d.DealPrice < 0 {
		return NewValidationError(CodeInvalidDealPricing, "deal price must be non-negative")
	}
	if d.MaxRedemptions != nil && *d.MaxRedemptions < 1 {
		return NewValidationError(CodeInvalidMaxRedemptions, "max redemptions must be positive")
	}
	if d.RedemptionsUsed < 0 {
		return NewValidationError(CodeInvalidMaxRedemptions, "redemptions used must be non-negative")
	}
	return d.Schedule.Validate()
}

// SavingsAmount is the derived saving when both prices are present.
// It is always recomputed, never stored.
func (d Deal) SavingsAmount() *float64 {
	if d.OriginalPrice == nil || d.DealPrice == nil {
		return nil
	}
	v := *d.OriginalPrice - *d.DealPrice
	return &v
}

// SavingsPercentage is the derived percentage saving
func (d Deal) SavingsPercentage() *float64 {
	if d.OriginalPrice == nil || d.DealPrice == nil || *d.OriginalPrice <= 0 {
		return nil
	}
	v := (*d.OriginalPrice - *d.DealPrice) / *d.OriginalPrice * 100
	return &v
}

// IsAvailable reports whether the deal can still be redeemed
func (d Deal) IsAvailable() bool {
	if !d.IsActive {
		return false
	}
	if d.MaxRedemptions != nil && d.RedemptionsUsed >= *d.MaxRedemptions {
		return false
	}
	return true
}

// Redeem returns a copy with the redemption recorded, or the receiver
// unchanged and false when the redemption cap is reached.
func (d Deal) Redeem(now time.Time) (Deal, bool) {
	if !d.IsAvailable() {
		return d, false
	}
	d.RedemptionsUsed++
	d.UpdatedAt = now
	return d, true
}

// Feature returns a copy marked as featured
func (d Deal) Feature(now time.Time) Deal {
	d.IsFeatured = true
	d.UpdatedAt = now
	return d
}

// Unfeature returns a copy with the featured mark removed
func (d Deal) Unfeature(now time.Time) Deal {
	d.IsFeatured = false
	d.UpdatedAt = now
	return d
}

// Verify returns a copy marked as verified by the given moderator
func (d Deal) Verify(verifiedBy uuid.UUID, now time.Time) Deal {
	d.LastVerifiedAt = &now
	d.VerifiedBy = &verifiedBy
	d.UpdatedAt = now
	return d
}

// WithoutPrices returns a copy with all price fields stripped, used
// for the hide disposition.
func (d Deal) WithoutPrices() Deal {
	d.OriginalPrice = nil
	d.DealPrice = nil
	return d
}
