package model

import (
	"database/sql"
	"time"
)

// Dispensary represents a listed dispensary on a city guide page.
type Dispensary struct {
	ID        int
	Name      string
	Slug      string
	City      string
	Address   sql.NullString
	Website   sql.NullString
	Rating    sql.NullFloat64
	CreatedAt time.Time
}

// Hotel represents a cannabis-friendly lodging listing.
type Hotel struct {
	ID            int
	Name          string
	Slug          string
	City          string
	Address       sql.NullString
	SmokingPolicy sql.NullString
	Website       sql.NullString
	CreatedAt     time.Time
}
