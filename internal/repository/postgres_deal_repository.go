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

// PostgresDealRepository implements DealRepository using PostgreSQL
type PostgresDealRepository struct {
	db *database.PostgresDB
}

// NewPostgresDealRepository creates a new PostgresDealRepository
func NewPostgresDealRepository(db *database.PostgresDB) *PostgresDealRepository {
	return &PostgresDealRepository{db: db}
}

const dealColumns = `
	id, venue_id, title, description, category,
	original_price, deal_price,
	days_mask, start_minutes, end_minutes,
	restrictions, terms,
	max_redemptions, redemptions_used,
	is_active, is_featured, requires_age_verification,
	last_verified_at, verified_by,
	created_at, updated_at
`

// Create inserts a new deal record
func (r *PostgresDealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES (
			$1, $2, $3, $4, $5,
			$6, $7,
			$8, $9, $10,
			$11, $12,
			$13, $14,
			$15, $16, $17,
			$18, $19,
			$20, $21
		)
	`

	start, end := scheduleMinutes(deal.Schedule)
	_, err := r.db.Pool().Exec(ctx, query,
		deal.ID,
		deal.VenueID,
		deal.Title,
		deal.Description,
		deal.Category.String(),
		deal.OriginalPrice,
		deal.DealPrice,
		int(deal.Schedule.DaysMask),
		start,
		end,
		deal.Restrictions,
		deal.Terms,
		deal.MaxRedemptions,
		deal.RedemptionsUsed,
		deal.IsActive,
		deal.IsFeatured,
		deal.RequiresAgeVerification,
		deal.LastVerifiedAt,
		deal.VerifiedBy,
		deal.CreatedAt,
		deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	return nil
}

// GetByID retrieves a deal by its ID
func (r *PostgresDealRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	row := r.db.Pool().QueryRow(ctx, query, id)
	deal, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Deal{}, domain.ErrDealNotFound
		}
		return domain.Deal{}, fmt.Errorf("failed to get deal: %w", err)
	}

	return deal, nil
}

// Update persists all mutable deal fields
func (r *PostgresDealRepository) Update(ctx context.Context, deal domain.Deal) error {
	query := `
		UPDATE deals SET
			title = $2, description = $3, category = $4,
			original_price = $5, deal_price = $6,
			days_mask = $7, start_minutes = $8, end_minutes = $9,
			restrictions = $10, terms = $11,
			max_redemptions = $12, redemptions_used = $13,
			is_active = $14, is_featured = $15, requires_age_verification = $16,
			last_verified_at = $17, verified_by = $18,
			updated_at = $19
		WHERE id = $1
	`

	start, end := scheduleMinutes(deal.Schedule)
	tag, err := r.db.Pool().Exec(ctx, query,
		deal.ID,
		deal.Title,
		deal.Description,
		deal.Category.String(),
		deal.OriginalPrice,
		deal.DealPrice,
		int(deal.Schedule.DaysMask),
		start,
		end,
		deal.Restrictions,
		deal.Terms,
		deal.MaxRedemptions,
		deal.RedemptionsUsed,
		deal.IsActive,
		deal.IsFeatured,
		deal.RequiresAgeVerification,
		deal.LastVerifiedAt,
		deal.VerifiedBy,
		deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDealNotFound
	}

	return nil
}

// IncrementRedemptions bumps the redemption counter with an optimistic
// guard on the expected current value
func (r *PostgresDealRepository) IncrementRedemptions(ctx context.Context, id uuid.UUID, expectedUsed int) (bool, error) {
	query := `
		UPDATE deals
		SET redemptions_used = redemptions_used + 1, updated_at = NOW()
		WHERE id = $1
		  AND redemptions_used = $2
		  AND (max_redemptions IS NULL OR redemptions_used < max_redemptions)
	`

	tag, err := r.db.Pool().Exec(ctx, query, id, expectedUsed)
	if err != nil {
		return false, fmt.Errorf("failed to record redemption: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func scheduleMinutes(s domain.Schedule) (*int, *int) {
	var start, end *int
	if s.StartTime != nil {
		v := int(*s.StartTime)
		start = &v
	}
	if s.EndTime != nil {
		v := int(*s.EndTime)
		end = &v
	}
	return start, end
}

func scheduleFromMinutes(mask int, start, end *int) domain.Schedule {
	s := domain.Schedule{DaysMask: uint8(mask)}
	if start != nil {
		t := domain.TimeOfDay(*start)
		s.StartTime = &t
	}
	if end != nil {
		t := domain.TimeOfDay(*end)
		s.EndTime = &t
	}
	return s
}

func scanDeal(row pgx.Row) (domain.Deal, error) {
	var (
		deal       domain.Deal
		category   string
		mask       int
		start, end *int
	)

	err := row.Scan(
		&deal.ID,
		&deal.VenueID,
		&deal.Title,
		&deal.Description,
		&category,
		&deal.OriginalPrice,
		&deal.DealPrice,
		&mask,
		&start,
		&end,
		&deal.Restrictions,
		&deal.Terms,
		&deal.MaxRedemptions,
		&deal.RedemptionsUsed,
		&deal.IsActive,
		&deal.IsFeatured,
		&deal.RequiresAgeVerification,
		&deal.LastVerifiedAt,
		&deal.VerifiedBy,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	if err != nil {
		return domain.Deal{}, err
	}

	deal.Category = domain.DealCategory(category)
	deal.Schedule = scheduleFromMinutes(mask, start, end)
	return deal, nil
}
