package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
