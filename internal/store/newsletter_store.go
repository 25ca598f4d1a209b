package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tmorrow/highroad/internal/model"
)

// NewsletterStore handles database operations for newsletter subscribers
type NewsletterStore struct {
	db *sql.DB
}

// NewNewsletterStore creates a new NewsletterStore
func NewNewsletterStore(db *sql.DB) *NewsletterStore {
	return &NewsletterStore{db: db}
}

// Subscribe records a newsletter signup. Re-subscribing an existing address
// is a no-op and returns the existing subscriber.
func (s *NewsletterStore) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}

	query := `
		INSERT INTO subscribers (id, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at
	`

	var sub model.Subscriber
	err := s.db.QueryRowContext(ctx, query, uuid.New(), email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe %s: %w", email, err)
	}

	return &sub, nil
}

// Count returns the number of subscribers
func (s *NewsletterStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
