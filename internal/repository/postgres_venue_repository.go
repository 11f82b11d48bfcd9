package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/pkg/database"
)

// PostgresVenueRepository implements VenueRepository using PostgreSQL
type PostgresVenueRepository struct {
	db *database.PostgresDB
}

// NewPostgresVenueRepository creates a new PostgresVenueRepository
func NewPostgresVenueRepository(db *database.PostgresDB) *PostgresVenueRepository {
	return &PostgresVenueRepository{db: db}
}

const venueColumns = `
	id, name, slug, description,
	address, city, province, postal_code,
	latitude, longitude,
	phone, email, website,
	license_type, vendor_id, status,
	has_patio, has_parking, has_wifi, is_accessible,
	last_verified_at, created_at, updated_at
`

// Create inserts a new venue record
func (r *PostgresVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	query := `
		INSERT INTO venues (` + venueColumns + `)
		VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10,
			$11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23
		)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Slug,
		venue.Description,
		venue.Address,
		venue.City,
		venue.Province.String(),
		venue.PostalCode,
		venue.Latitude,
		venue.Longitude,
		venue.Phone,
		venue.Email,
		venue.Website,
		string(venue.LicenseType),
		venue.VendorID,
		venue.Status.String(),
		venue.HasPatio,
		venue.HasParking,
		venue.HasWifi,
		venue.IsAccessible,
		venue.LastVerifiedAt,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	return nil
}

// GetByID retrieves a venue by its ID
func (r *PostgresVenueRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	row := r.db.Pool().QueryRow(ctx, query, id)
	venue, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("failed to get venue: %w", err)
	}

	return venue, nil
}

// Update persists all mutable venue fields
func (r *PostgresVenueRepository) Update(ctx context.Context, venue domain.Venue) error {
	query := `
		UPDATE venues SET
			name = $2, slug = $3, description = $4,
			address = $5, city = $6, province = $7, postal_code = $8,
			latitude = $9, longitude = $10,
			phone = $11, email = $12, website = $13,
			license_type = $14, status = $15,
			has_patio = $16, has_parking = $17, has_wifi = $18, is_accessible = $19,
			last_verified_at = $20, updated_at = $21
		WHERE id = $1
	`

	tag, err := r.db.Pool().Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Slug,
		venue.Description,
		venue.Address,
		venue.City,
		venue.Province.String(),
		venue.PostalCode,
		venue.Latitude,
		venue.Longitude,
		venue.Phone,
		venue.Email,
		venue.Website,
		string(venue.LicenseType),
		venue.Status.String(),
		venue.HasPatio,
		venue.HasParking,
		venue.HasWifi,
		venue.IsAccessible,
		venue.LastVerifiedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}

	return nil
}

// ListActive returns active venues, most recently updated first
func (r *PostgresVenueRepository) ListActive(ctx context.Context, limit int) ([]domain.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE status = 'active'
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venues: %w", err)
	}

	return venues, nil
}

func scanVenue(row pgx.Row) (domain.Venue, error) {
	var (
		venue       domain.Venue
		province    string
		licenseType string
		status      string
	)

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Slug,
		&venue.Description,
		&venue.Address,
		&venue.City,
		&province,
		&venue.PostalCode,
		&venue.Latitude,
		&venue.Longitude,
		&venue.Phone,
		&venue.Email,
		&venue.Website,
		&licenseType,
		&venue.VendorID,
		&status,
		&venue.HasPatio,
		&venue.HasParking,
		&venue.HasWifi,
		&venue.IsAccessible,
		&venue.LastVerifiedAt,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return domain.Venue{}, err
	}

	venue.Province = domain.Province(province)
	venue.LicenseType = domain.LicenseType(licenseType)
	venue.Status = domain.VenueStatus(status)
	return venue, nil
}
