package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tmorrow/highroad/internal/model"
)

// CountryStore handles database operations for country legal records
type CountryStore struct {
	db *sql.DB
}

// NewCountryStore creates a new CountryStore
func NewCountryStore(db *sql.DB) *CountryStore {
	return &CountryStore{db: db}
}

const countryColumns = `id, name, slug, status, possession_limits, age_limit,
	       purchase_limits, consumption_notes, penalties, source_url, region,
	       airport_rules, last_updated, created_at`

// GetAll retrieves all country records, freshest first; never-updated rows
// sort last
func (s *CountryStore) GetAll(ctx context.Context) ([]model.CountryLaw, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM countries
		ORDER BY last_updated DESC NULLS LAST, name
	`, countryColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	defer rows.Close()

	var countries []model.CountryLaw
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

// GetBySlug retrieves a country record by its slug
func (s *CountryStore) GetBySlug(ctx context.Context, slug string) (*model.CountryLaw, error) {
	query := fmt.Sprintf(`SELECT %s FROM countries WHERE slug = $1`, countryColumns)

	var c model.CountryLaw
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Status,
		&c.PossessionLimits,
		&c.AgeLimit,
		&c.PurchaseLimits,
		&c.ConsumptionNotes,
		&c.Penalties,
		&c.SourceURL,
		&c.Region,
		&c.AirportRules,
		&c.LastUpdated,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country %s: %w", slug, err)
	}

	return &c, nil
}

// Update writes the editable fields and last_updated for one country record
func (s *CountryStore) Update(ctx context.Context, law *model.CountryLaw) error {
	query := `
		UPDATE countries
		SET status = $2, possession_limits = $3, age_limit = $4,
		    purchase_limits = $5, consumption_notes = $6, penalties = $7,
		    source_url = $8, airport_rules = $9, last_updated = $10
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		law.ID,
		law.Status,
		law.PossessionLimits,
		law.AgeLimit,
		law.PurchaseLimits,
		law.ConsumptionNotes,
		law.Penalties,
		law.SourceURL,
		law.AirportRules,
		law.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update country %d: %w", law.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update country %d: %w", law.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("country %d not found", law.ID)
	}

	return nil
}

// DeleteByIDs removes the given country records in one statement
func (s *CountryStore) DeleteByIDs(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM countries WHERE id = ANY($1)`

	_, err := s.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete countries: %w", err)
	}

	return nil
}

// Upsert inserts or updates a country record by slug, returns the ID
func (s *CountryStore) Upsert(ctx context.Context, law *model.CountryLaw) error {
	query := `
		INSERT INTO countries (name, slug, status, possession_limits, age_limit,
		                       purchase_limits, consumption_notes, penalties,
		                       source_url, region, airport_rules, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			possession_limits = EXCLUDED.possession_limits,
			age_limit = EXCLUDED.age_limit,
			purchase_limits = EXCLUDED.purchase_limits,
			consumption_notes = EXCLUDED.consumption_notes,
			penalties = EXCLUDED.penalties,
			source_url = EXCLUDED.source_url,
			region = EXCLUDED.region,
			airport_rules = EXCLUDED.airport_rules,
			last_updated = EXCLUDED.last_updated
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		law.Name,
		law.Slug,
		law.Status,
		law.PossessionLimits,
		law.AgeLimit,
		law.PurchaseLimits,
		law.ConsumptionNotes,
		law.Penalties,
		law.SourceURL,
		law.Region,
		law.AirportRules,
		law.LastUpdated,
	).Scan(&law.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert country %s: %w", law.Slug, err)
	}

	return nil
}

func scanCountry(rows *sql.Rows) (model.CountryLaw, error) {
	var c model.CountryLaw
	err := rows.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Status,
		&c.PossessionLimits,
		&c.AgeLimit,
		&c.PurchaseLimits,
		&c.ConsumptionNotes,
		&c.Penalties,
		&c.SourceURL,
		&c.Region,
		&c.AirportRules,
		&c.LastUpdated,
		&c.CreatedAt,
	)
	if err != nil {
		return model.CountryLaw{}, fmt.Errorf("failed to scan country: %w", err)
	}
	return c, nil
}
