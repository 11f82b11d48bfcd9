package dto

// FeedRequest carries the query parameters of a discovery request.
// Lat and Lng are pointers so the equator and the prime meridian are
// distinguishable from an absent parameter.
type FeedRequest struct {
	Lat        *float64 `form:"lat"`
	Lng        *float64 `form:"lng"`
	RadiusKm   float64  `form:"radius_km"`
	When       string   `form:"when"`
	Category   string   `form:"category"`
	Province   string   `form:"province"`
	MinSavings *float64 `form:"min_savings"`
	Page       int      `form:"page"`
	PerPage    int      `form:"per_page"`
}

// FeedItem is one discovery result: a deal bundled with its venue's
// display fields, the distance from the query point and the viewer's
// price disposition. It is a transient projection, never persisted.
type FeedItem struct {
	DealID      string `json:"deal_id"`
	VenueID     string `json:"venue_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	VenueName    string `json:"venue_name"`
	VenueAddress string `json:"venue_address"`
	VenueCity    string `json:"venue_city"`
	Province     string `json:"province"`

	DistanceKm float64 `json:"distance_km"`

	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at,omitempty"`

	OriginalPrice     *float64 `json:"original_price,omitempty"`
	DealPrice         *float64 `json:"deal_price,omitempty"`
	SavingsAmount     *float64 `json:"savings_amount,omitempty"`
	SavingsPercentage *float64 `json:"savings_percentage,omitempty"`

	PriceDisposition string `json:"price_disposition"`
	Disclaimer       string `json:"disclaimer,omitempty"`
	// RuleFallback marks results priced under the default jurisdiction
	// because the venue's own province has no configured rule set.
	RuleFallback bool `json:"rule_fallback,omitempty"`

	IsFeatured              bool `json:"is_featured"`
	RequiresAgeVerification bool `json:"requires_age_verification"`
}

// PaginationMeta describes the slice of results returned
type PaginationMeta struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// FeedLocation echoes the query location
type FeedLocation struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

// FeedFilters echoes the non-geo filters applied
type FeedFilters struct {
	Category   string   `json:"category,omitempty"`
	Province   string   `json:"province,omitempty"`
	MinSavings *float64 `json:"min_savings,omitempty"`
}

// FeedResponse is the full discovery response
type FeedResponse struct {
	Items      []FeedItem     `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
	When       string         `json:"when"`
	Location   FeedLocation   `json:"location"`
	Filters    FeedFilters    `json:"filters_applied"`
}
