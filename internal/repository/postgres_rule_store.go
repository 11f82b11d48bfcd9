package repository

import (
	"context"
	"fmt"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/pkg/database"
)

// PostgresRuleSource loads and persists jurisdiction rules. The hot
// path never reads from here; rules are loaded once at startup (and on
// administrative replacement) into the MemoryRuleStore snapshot.
type PostgresRuleSource struct {
	db *database.PostgresDB
}

// NewPostgresRuleSource creates a new PostgresRuleSource
func NewPostgresRuleSource(db *database.PostgresDB) *PostgresRuleSource {
	return &PostgresRuleSource{db: db}
}

// LoadAll reads every configured jurisdiction rule
func (s *PostgresRuleSource) LoadAll(ctx context.Context) ([]domain.JurisdictionRule, error) {
	query := `
		SELECT
			province, disclaimer, allow_price_display,
			require_age_verification, min_age, hide_alcohol_prices,
			alcohol_sales_start, alcohol_sales_end,
			allow_happy_hour_marketing, max_discount_percentage,
			updated_at
		FROM province_rules
	`

	rows, err := s.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load province rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.JurisdictionRule
	for rows.Next() {
		var (
			r          domain.JurisdictionRule
			province   string
			start, end *int
		)
		err := rows.Scan(
			&province, &r.Disclaimer, &r.AllowPriceDisplay,
			&r.RequireAgeVerification, &r.MinAge, &r.HideAlcoholPrices,
			&start, &end,
			&r.AllowHappyHourMarketing, &r.MaxDiscountPercentage,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan province rule: %w", err)
		}

		r.Province = domain.Province(province)
		if start != nil {
			t := domain.TimeOfDay(*start)
			r.AlcoholSalesStart = &t
		}
		if end != nil {
			t := domain.TimeOfDay(*end)
			r.AlcoholSalesEnd = &t
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate province rules: %w", err)
	}

	return rules, nil
}

// SaveAll replaces the stored rule set in a single transaction
func (s *PostgresRuleSource) SaveAll(ctx context.Context, rules []domain.JurisdictionRule) error {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rule replacement: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM province_rules`); err != nil {
		return fmt.Errorf("failed to clear province rules: %w", err)
	}

	query := `
		INSERT INTO province_rules (
			province, disclaimer, allow_price_display,
			require_age_verification, min_age, hide_alcohol_prices,
			alcohol_sales_start, alcohol_sales_end,
			allow_happy_hour_marketing, max_discount_percentage,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, r := range rules {
		var start, end *int
		if r.AlcoholSalesStart != nil {
			v := int(*r.AlcoholSalesStart)
			start = &v
		}
		if r.AlcoholSalesEnd != nil {
			v := int(*r.AlcoholSalesEnd)
			end = &v
		}

		_, err := tx.Exec(ctx, query,
			r.Province.String(), r.Disclaimer, r.AllowPriceDisplay,
			r.RequireAgeVerification, r.MinAge, r.HideAlcoholPrices,
			start, end,
			r.AllowHappyHourMarketing, r.MaxDiscountPercentage,
			r.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rule for %s: %w", r.Province, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rule replacement: %w", err)
	}

	return nil
}
