package repository

import (
	"context"
	"fmt"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/pkg/database"
)

// PostgresCandidateSource implements CandidateSource with a joined
// deals/venues query. It pushes category, province and venue filters
// down to SQL; geo, schedule and compliance narrowing always happens
// in the discovery core.
type PostgresCandidateSource struct {
	db *database.PostgresDB
}

// NewPostgresCandidateSource creates a new PostgresCandidateSource
func NewPostgresCandidateSource(db *database.PostgresDB) *PostgresCandidateSource {
	return &PostgresCandidateSource{db: db}
}

// FetchActiveDeals returns active deals at active venues
func (s *PostgresCandidateSource) FetchActiveDeals(ctx context.Context, filter CandidateFilter) ([]Candidate, error) {
	query := `
		SELECT
			d.id, d.venue_id, d.title, d.description, d.category,
			d.original_price, d.deal_price,
			d.days_mask, d.start_minutes, d.end_minutes,
			d.restrictions, d.terms,
			d.max_redemptions, d.redemptions_used,
			d.is_active, d.is_featured, d.requires_age_verification,
			d.last_verified_at, d.verified_by,
			d.created_at, d.updated_at,
			v.id, v.name, v.slug, v.description,
			v.address, v.city, v.province, v.postal_code,
			v.latitude, v.longitude,
			v.phone, v.email, v.website,
			v.license_type, v.vendor_id, v.status,
			v.has_patio, v.has_parking, v.has_wifi, v.is_accessible,
			v.last_verified_at, v.created_at, v.updated_at
		FROM deals d
		JOIN venues v ON v.id = d.venue_id
		WHERE d.is_active = TRUE
		  AND v.status = 'active'
		  AND ($1::TEXT IS NULL OR d.category = $1)
		  AND ($2::TEXT IS NULL OR v.province = $2)
		  AND ($3::UUID IS NULL OR v.id = $3)
	`

	var category, province *string
	if filter.Category != nil {
		c := filter.Category.String()
		category = &c
	}
	if filter.Province != nil {
		p := filter.Province.String()
		province = &p
	}

	rows, err := s.db.Pool().Query(ctx, query, category, province, filter.VenueID)
	if err != nil {
		return nil, domain.NewExternalServiceError("CANDIDATE_SOURCE_UNAVAILABLE",
			fmt.Sprintf("failed to fetch candidates: %v", err))
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var (
			c           Candidate
			dealCat     string
			mask        int
			start, end  *int
			venueProv   string
			licenseType string
			status      string
		)

		err := rows.Scan(
			&c.Deal.ID, &c.Deal.VenueID, &c.Deal.Title, &c.Deal.Description, &dealCat,
			&c.Deal.OriginalPrice, &c.Deal.DealPrice,
			&mask, &start, &end,
			&c.Deal.Restrictions, &c.Deal.Terms,
			&c.Deal.MaxRedemptions, &c.Deal.RedemptionsUsed,
			&c.Deal.IsActive, &c.Deal.IsFeatured, &c.Deal.RequiresAgeVerification,
			&c.Deal.LastVerifiedAt, &c.Deal.VerifiedBy,
			&c.Deal.CreatedAt, &c.Deal.UpdatedAt,
			&c.Venue.ID, &c.Venue.Name, &c.Venue.Slug, &c.Venue.Description,
			&c.Venue.Address, &c.Venue.City, &venueProv, &c.Venue.PostalCode,
			&c.Venue.Latitude, &c.Venue.Longitude,
			&c.Venue.Phone, &c.Venue.Email, &c.Venue.Website,
			&licenseType, &c.Venue.VendorID, &status,
			&c.Venue.HasPatio, &c.Venue.HasParking, &c.Venue.HasWifi, &c.Venue.IsAccessible,
			&c.Venue.LastVerifiedAt, &c.Venue.CreatedAt, &c.Venue.UpdatedAt,
		)
		if err != nil {
			return nil, domain.NewExternalServiceError("CANDIDATE_SOURCE_UNAVAILABLE",
				fmt.Sprintf("failed to scan candidate: %v", err))
		}

		c.Deal.Category = domain.DealCategory(dealCat)
		c.Deal.Schedule = scheduleFromMinutes(mask, start, end)
		c.Venue.Province = domain.Province(venueProv)
		c.Venue.LicenseType = domain.LicenseType(licenseType)
		c.Venue.Status = domain.VenueStatus(status)

		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewExternalServiceError("CANDIDATE_SOURCE_UNAVAILABLE",
			fmt.Sprintf("failed to iterate candidates: %v", err))
	}

	return candidates, nil
}
