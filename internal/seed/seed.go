// Package seed loads the bundled starter dataset into the database.
package seed

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/tmorrow/highroad/internal/model"
	"github.com/tmorrow/highroad/internal/store"
)

//go:embed data.json
var dataFS embed.FS

// Stats tracks what a seed run loaded.
type Stats struct {
	States       int
	Countries    int
	Dispensaries int
	Hotels       int
	Failed       int
	Duration     time.Duration
}

// Seeder upserts the embedded dataset through the stores, so re-running is
// idempotent.
type Seeder struct {
	states       *store.StateStore
	countries    *store.CountryStore
	dispensaries *store.DispensaryStore
	hotels       *store.HotelStore
}

// NewSeeder creates a Seeder over the given stores.
func NewSeeder(states *store.StateStore, countries *store.CountryStore,
	dispensaries *store.DispensaryStore, hotels *store.HotelStore) *Seeder {
	return &Seeder{
		states:       states,
		countries:    countries,
		dispensaries: dispensaries,
		hotels:       hotels,
	}
}

type stateSeed struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Status           string  `json:"status"`
	PossessionLimits *string `json:"possession_limits"`
	TouristNotes     *string `json:"tourist_notes"`
	WhereToConsume   *string `json:"where_to_consume"`
	DrivingRules     *string `json:"driving_rules"`
	AirportRules     *string `json:"airport_rules"`
	LastUpdated      *string `json:"last_updated"`
}

type countrySeed struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Status           string  `json:"status"`
	PossessionLimits *string `json:"possession_limits"`
	AgeLimit         *int64  `json:"age_limit"`
	PurchaseLimits   *string `json:"purchase_limits"`
	ConsumptionNotes *string `json:"consumption_notes"`
	Penalties        *string `json:"penalties"`
	SourceURL        *string `json:"source_url"`
	Region           *string `json:"region"`
	AirportRules     *string `json:"airport_rules"`
	LastUpdated      *string `json:"last_updated"`
}

type dispensarySeed struct {
	Name    string   `json:"name"`
	Slug    string   `json:"slug"`
	City    string   `json:"city"`
	Address *string  `json:"address"`
	Website *string  `json:"website"`
	Rating  *float64 `json:"rating"`
}

type hotelSeed struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	City          string  `json:"city"`
	Address       *string `json:"address"`
	SmokingPolicy *string `json:"smoking_policy"`
	Website       *string `json:"website"`
}

type seedFile struct {
	States       []stateSeed      `json:"states"`
	Countries    []countrySeed    `json:"countries"`
	Dispensaries []dispensarySeed `json:"dispensaries"`
	Hotels       []hotelSeed      `json:"hotels"`
}

// Run loads the embedded dataset. Individual row failures are logged and
// counted, not fatal.
func (s *Seeder) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	raw, err := dataFS.ReadFile("data.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read seed data: %w", err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	for _, row := range data.States {
		law := &model.StateLaw{
			Name:             row.Name,
			Slug:             row.Slug,
			Status:           model.Status(row.Status),
			PossessionLimits: nullString(row.PossessionLimits),
			TouristNotes:     nullString(row.TouristNotes),
			WhereToConsume:   nullString(row.WhereToConsume),
			DrivingRules:     nullString(row.DrivingRules),
			AirportRules:     nullString(row.AirportRules),
			LastUpdated:      nullDate(row.LastUpdated),
		}
		if err := s.states.Upsert(ctx, law); err != nil {
			log.Printf("Failed to seed state %s: %v", row.Slug, err)
			stats.Failed++
			continue
		}
		stats.States++
	}

	for _, row := range data.Countries {
		law := &model.CountryLaw{
			Name:             row.Name,
			Slug:             row.Slug,
			Status:           model.Status(row.Status),
			PossessionLimits: nullString(row.PossessionLimits),
			AgeLimit:         nullInt(row.AgeLimit),
			PurchaseLimits:   nullString(row.PurchaseLimits),
			ConsumptionNotes: nullString(row.ConsumptionNotes),
			Penalties:        nullString(row.Penalties),
			SourceURL:        nullString(row.SourceURL),
			Region:           nullString(row.Region),
			AirportRules:     nullString(row.AirportRules),
			LastUpdated:      nullDate(row.LastUpdated),
		}
		if err := s.countries.Upsert(ctx, law); err != nil {
			log.Printf("Failed to seed country %s: %v", row.Slug, err)
			stats.Failed++
			continue
		}
		stats.Countries++
	}

	for _, row := range data.Dispensaries {
		d := &model.Dispensary{
			Name:    row.Name,
			Slug:    row.Slug,
			City:    row.City,
			Address: nullString(row.Address),
			Website: nullString(row.Website),
		}
		if row.Rating != nil {
			d.Rating = sql.NullFloat64{Float64: *row.Rating, Valid: true}
		}
		if err := s.dispensaries.Upsert(ctx, d); err != nil {
			log.Printf("Failed to seed dispensary %s: %v", row.Slug, err)
			stats.Failed++
			continue
		}
		stats.Dispensaries++
	}

	for _, row := range data.Hotels {
		h := &model.Hotel{
			Name:          row.Name,
			Slug:          row.Slug,
			City:          row.City,
			Address:       nullString(row.Address),
			SmokingPolicy: nullString(row.SmokingPolicy),
			Website:       nullString(row.Website),
		}
		if err := s.hotels.Upsert(ctx, h); err != nil {
			log.Printf("Failed to seed hotel %s: %v", row.Slug, err)
			stats.Failed++
			continue
		}
		stats.Hotels++
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// PrintSummary logs a seed run's results.
func (s *Seeder) PrintSummary(stats *Stats) {
	log.Println("")
	log.Println("=== Seed Summary ===")
	log.Printf("States:       %d", stats.States)
	log.Printf("Countries:    %d", stats.Countries)
	log.Printf("Dispensaries: %d", stats.Dispensaries)
	log.Printf("Hotels:       %d", stats.Hotels)
	log.Printf("Failed:       %d", stats.Failed)
	log.Printf("Duration:     %s", stats.Duration.Round(time.Millisecond))
}

func nullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullDate(p *string) sql.NullTime {
	if p == nil || *p == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse("2006-01-02", *p)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
