package model

import (
	"database/sql"
	"strconv"
	"time"
)

// LawType discriminates which underlying collection a law record belongs to.
type LawType string

const (
	LawTypeState   LawType = "state"
	LawTypeCountry LawType = "country"
)

// Status is the legal status of cannabis in a state or country.
type Status string

const (
	StatusIllegal        Status = "illegal"
	StatusDecriminalized Status = "decriminalized"
	StatusMedical        Status = "medical"
	StatusRecreational   Status = "recreational"
)

// ValidStatus reports whether s is one of the known legal statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusIllegal, StatusDecriminalized, StatusMedical, StatusRecreational:
		return true
	}
	return false
}

// StateLaw is a row in the states collection.
type StateLaw struct {
	ID               int
	Name             string
	Slug             string
	Status           Status
	PossessionLimits sql.NullString
	TouristNotes     sql.NullString
	WhereToConsume   sql.NullString
	DrivingRules     sql.NullString
	AirportRules     sql.NullString
	LastUpdated      sql.NullTime
	CreatedAt        time.Time
}

// CountryLaw is a row in the countries collection.
type CountryLaw struct {
	ID               int
	Name             string
	Slug             string
	Status           Status
	PossessionLimits sql.NullString
	AgeLimit         sql.NullInt64
	PurchaseLimits   sql.NullString
	ConsumptionNotes sql.NullString
	Penalties        sql.NullString
	SourceURL        sql.NullString
	Region           sql.NullString
	AirportRules     sql.NullString
	LastUpdated      sql.NullTime
	CreatedAt        time.Time
}

// StateDetails holds the state-only fields of a unified law record.
type StateDetails struct {
	TouristNotes   sql.NullString
	WhereToConsume sql.NullString
	DrivingRules   sql.NullString
	AirportRules   sql.NullString
}

// CountryDetails holds the country-only fields of a unified law record.
type CountryDetails struct {
	AgeLimit         sql.NullInt64
	PurchaseLimits   sql.NullString
	ConsumptionNotes sql.NullString
	Penalties        sql.NullString
	SourceURL        sql.NullString
	Region           sql.NullString
	AirportRules     sql.NullString
}

// LawRecord is the unified view of a state or country legal record. Exactly
// one of State or Country is non-nil, matching Type. IDs are only unique
// within a collection, so the composite Key is used wherever records from
// both collections mix.
type LawRecord struct {
	Type             LawType
	ID               int
	Name             string
	Slug             string
	Status           Status
	PossessionLimits sql.NullString
	LastUpdated      sql.NullTime

	State   *StateDetails
	Country *CountryDetails
}

// Key returns the composite selection key, e.g. "state-12".
func (r LawRecord) Key() string {
	return string(r.Type) + "-" + strconv.Itoa(r.ID)
}
