package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tmorrow/highroad/internal/model"
)

// StateStore handles database operations for state legal records
type StateStore struct {
	db *sql.DB
}

// NewStateStore creates a new StateStore
func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

const stateColumns = `id, name, slug, status, possession_limits, tourist_notes,
	       where_to_consume, driving_rules, airport_rules, last_updated, created_at`

// GetAll retrieves all state records, freshest first; never-updated rows sort
// last
func (s *StateStore) GetAll(ctx context.Context) ([]model.StateLaw, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM states
		ORDER BY last_updated DESC NULLS LAST, name
	`, stateColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get states: %w", err)
	}
	defer rows.Close()

	var states []model.StateLaw
	for rows.Next() {
		st, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}

	return states, rows.Err()
}

// GetBySlug retrieves a state record by its slug
func (s *StateStore) GetBySlug(ctx context.Context, slug string) (*model.StateLaw, error) {
	query := fmt.Sprintf(`SELECT %s FROM states WHERE slug = $1`, stateColumns)

	var st model.StateLaw
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&st.ID,
		&st.Name,
		&st.Slug,
		&st.Status,
		&st.PossessionLimits,
		&st.TouristNotes,
		&st.WhereToConsume,
		&st.DrivingRules,
		&st.AirportRules,
		&st.LastUpdated,
		&st.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state %s: %w", slug, err)
	}

	return &st, nil
}

// Update writes the editable fields and last_updated for one state record
func (s *StateStore) Update(ctx context.Context, law *model.StateLaw) error {
	query := `
		UPDATE states
		SET status = $2, possession_limits = $3, tourist_notes = $4,
		    where_to_consume = $5, driving_rules = $6, airport_rules = $7,
		    last_updated = $8
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		law.ID,
		law.Status,
		law.PossessionLimits,
		law.TouristNotes,
		law.WhereToConsume,
		law.DrivingRules,
		law.AirportRules,
		law.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update state %d: %w", law.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update state %d: %w", law.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("state %d not found", law.ID)
	}

	return nil
}

// DeleteByIDs removes the given state records in one statement
func (s *StateStore) DeleteByIDs(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM states WHERE id = ANY($1)`

	_, err := s.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete states: %w", err)
	}

	return nil
}

// Upsert inserts or updates a state record by slug, returns the ID
func (s *StateStore) Upsert(ctx context.Context, law *model.StateLaw) error {
	query := `
		INSERT INTO states (name, slug, status, possession_limits, tourist_notes,
		                    where_to_consume, driving_rules, airport_rules, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			possession_limits = EXCLUDED.possession_limits,
			tourist_notes = EXCLUDED.tourist_notes,
			where_to_consume = EXCLUDED.where_to_consume,
			driving_rules = EXCLUDED.driving_rules,
			airport_rules = EXCLUDED.airport_rules,
			last_updated = EXCLUDED.last_updated
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		law.Name,
		law.Slug,
		law.Status,
		law.PossessionLimits,
		law.TouristNotes,
		law.WhereToConsume,
		law.DrivingRules,
		law.AirportRules,
		law.LastUpdated,
	).Scan(&law.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert state %s: %w", law.Slug, err)
	}

	return nil
}

func scanState(rows *sql.Rows) (model.StateLaw, error) {
	var st model.StateLaw
	err := rows.Scan(
		&st.ID,
		&st.Name,
		&st.Slug,
		&st.Status,
		&st.PossessionLimits,
		&st.TouristNotes,
		&st.WhereToConsume,
		&st.DrivingRules,
		&st.AirportRules,
		&st.LastUpdated,
		&st.CreatedAt,
	)
	if err != nil {
		return model.StateLaw{}, fmt.Errorf("failed to scan state: %w", err)
	}
	return st, nil
}
