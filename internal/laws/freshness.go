package laws

import (
	"database/sql"
	"time"
)

// Freshness is the staleness badge shown next to a record's last-updated
// date.
type Freshness string

const (
	FreshnessNever       Freshness = "Never Updated"
	FreshnessCurrent     Freshness = "Current"
	FreshnessNeedsReview Freshness = "Needs Review"
	FreshnessOutdated    Freshness = "Outdated"
)

const (
	currentMaxAge = 30 * 24 * time.Hour
	reviewMaxAge  = 90 * 24 * time.Hour
)

// Classify derives the freshness badge from a record's last-updated
// timestamp relative to now. Null is the most severe state, worse than any
// dated value.
func Classify(lastUpdated sql.NullTime, now time.Time) Freshness {
	if !lastUpdated.Valid {
		return FreshnessNever
	}
	age := now.Sub(lastUpdated.Time)
	switch {
	case age <= currentMaxAge:
		return FreshnessCurrent
	case age <= reviewMaxAge:
		return FreshnessNeedsReview
	default:
		return FreshnessOutdated
	}
}
