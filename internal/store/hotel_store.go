package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorrow/highroad/internal/model"
)

// HotelStore handles database operations for cannabis-friendly hotels
type HotelStore struct {
	db *sql.DB
}

// NewHotelStore creates a new HotelStore
func NewHotelStore(db *sql.DB) *HotelStore {
	return &HotelStore{db: db}
}

// GetByCity retrieves hotels for a city guide page
func (s *HotelStore) GetByCity(ctx context.Context, city string) ([]model.Hotel, error) {
	query := `
		SELECT id, name, slug, city, address, smoking_policy, website, created_at
		FROM hotels
		WHERE lower(city) = lower($1)
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotels for %s: %w", city, err)
	}
	defer rows.Close()

	var hotels []model.Hotel
	for rows.Next() {
		var h model.Hotel
		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Slug,
			&h.City,
			&h.Address,
			&h.SmokingPolicy,
			&h.Website,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}

	return hotels, rows.Err()
}

// Upsert inserts or updates a hotel by slug, returns the ID
func (s *HotelStore) Upsert(ctx context.Context, h *model.Hotel) error {
	query := `
		INSERT INTO hotels (name, slug, city, address, smoking_policy, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			address = EXCLUDED.address,
			smoking_policy = EXCLUDED.smoking_policy,
			website = EXCLUDED.website
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		h.Name,
		h.Slug,
		h.City,
		h.Address,
		h.SmokingPolicy,
		h.Website,
	).Scan(&h.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert hotel %s: %w", h.Slug, err)
	}

	return nil
}
