package dto

import (
	"time"

	"github.com/jainnhimanshuu/savorini/internal/domain"
)

// CreateDealRequest carries the payload for deal creation
type CreateDealRequest struct {
	VenueID     string `json:"venue_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`

	OriginalPrice *float64 `json:"original_price"`
	DealPrice     *float64 `json:"deal_price"`

	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`

	Restrictions string `json:"restrictions"`
	Terms        string `json:"terms"`

	MaxRedemptions          *int `json:"max_redemptions"`
	RequiresAgeVerification bool `json:"requires_age_verification"`
}

// UpdateDealRequest carries the payload for deal updates
type UpdateDealRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	OriginalPrice *float64 `json:"original_price"`
	DealPrice     *float64 `json:"deal_price"`

	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`

	Restrictions string `json:"restrictions"`
	Terms        string `json:"terms"`

	MaxRedemptions          *int  `json:"max_redemptions"`
	IsActive                *bool `json:"is_active"`
	RequiresAgeVerification *bool `json:"requires_age_verification"`
}

// DealResponse is the outward-facing deal projection with the viewer's
// price disposition already applied
type DealResponse struct {
	ID          string `json:"id"`
	VenueID     string `json:"venue_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	OriginalPrice     *float64 `json:"original_price,omitempty"`
	DealPrice         *float64 `json:"deal_price,omitempty"`
	SavingsAmount     *float64 `json:"savings_amount,omitempty"`
	SavingsPercentage *float64 `json:"savings_percentage,omitempty"`

	Days      []string `json:"days"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`

	Restrictions string `json:"restrictions,omitempty"`
	Terms        string `json:"terms,omitempty"`

	MaxRedemptions  *int `json:"max_redemptions,omitempty"`
	RedemptionsUsed int  `json:"redemptions_used"`

	IsActive                bool `json:"is_active"`
	IsFeatured              bool `json:"is_featured"`
	RequiresAgeVerification bool `json:"requires_age_verification"`

	PriceDisposition string `json:"price_disposition"`
	Disclaimer       string `json:"disclaimer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDealResponse projects a deal after compliance has been applied
func NewDealResponse(d domain.Deal, disposition domain.PriceDisposition, disclaimer string) *DealResponse {
	resp := &DealResponse{
		ID:                      d.ID.String(),
		VenueID:                 d.VenueID.String(),
		Title:                   d.Title,
		Description:             d.Description,
		Category:                d.Category.String(),
		OriginalPrice:           d.OriginalPrice,
		DealPrice:               d.DealPrice,
		SavingsAmount:           d.SavingsAmount(),
		SavingsPercentage:       d.SavingsPercentage(),
		Restrictions:            d.Restrictions,
		Terms:                   d.Terms,
		MaxRedemptions:          d.MaxRedemptions,
		RedemptionsUsed:         d.RedemptionsUsed,
		IsActive:                d.IsActive,
		IsFeatured:              d.IsFeatured,
		RequiresAgeVerification: d.RequiresAgeVerification,
		PriceDisposition:        string(disposition),
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}

	days := d.Schedule.ActiveDays()
	resp.Days = make([]string, len(days))
	for i, day := range days {
		resp.Days[i] = day.String()
	}
	if d.Schedule.StartTime != nil {
		resp.StartTime = d.Schedule.StartTime.String()
		resp.EndTime = d.Schedule.EndTime.String()
	}

	if disposition == domain.DispositionRedact {
		resp.Disclaimer = disclaimer
	}

	return resp
}

// RedeemResponse reports the outcome of a redemption attempt
type RedeemResponse struct {
	DealID          string `json:"deal_id"`
	Redeemed        bool   `json:"redeemed"`
	RedemptionsUsed int    `json:"redemptions_used"`
	MaxRedemptions  *int   `json:"max_redemptions,omitempty"`
}
