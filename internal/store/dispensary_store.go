package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorrow/highroad/internal/model"
)

// DispensaryStore handles database operations for dispensary listings
type DispensaryStore struct {
	db *sql.DB
}

// NewDispensaryStore creates a new DispensaryStore
func NewDispensaryStore(db *sql.DB) *DispensaryStore {
	return &DispensaryStore{db: db}
}

// GetByCity retrieves dispensaries for a city guide page, best rated first
func (s *DispensaryStore) GetByCity(ctx context.Context, city string) ([]model.Dispensary, error) {
	query := `
		SELECT id, name, slug, city, address, website, rating, created_at
		FROM dispensaries
		WHERE lower(city) = lower($1)
		ORDER BY rating DESC NULLS LAST, name
	`

	rows, err := s.db.QueryContext(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispensaries for %s: %w", city, err)
	}
	defer rows.Close()

	var dispensaries []model.Dispensary
	for rows.Next() {
		var d model.Dispensary
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Slug,
			&d.City,
			&d.Address,
			&d.Website,
			&d.Rating,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispensary: %w", err)
		}
		dispensaries = append(dispensaries, d)
	}

	return dispensaries, rows.Err()
}

// Upsert inserts or updates a dispensary by slug, returns the ID
func (s *DispensaryStore) Upsert(ctx context.Context, d *model.Dispensary) error {
	query := `
		INSERT INTO dispensaries (name, slug, city, address, website, rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			address = EXCLUDED.address,
			website = EXCLUDED.website,
			rating = EXCLUDED.rating
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		d.Name,
		d.Slug,
		d.City,
		d.Address,
		d.Website,
		d.Rating,
	).Scan(&d.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert dispensary %s: %w", d.Slug, err)
	}

	return nil
}
