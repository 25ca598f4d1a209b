// Package laws implements the unified cannabis-law catalog behind the admin
// console: it merges the state and country collections into one tagged
// record stream and provides the pure filter/sort/selection/export logic
// plus the typed mutation gateway the console is built on.
package laws

import (
	"github.com/tmorrow/highroad/internal/model"
)

// Unify merges the two source collections into a single tagged sequence,
// state records first, then country records. Each output record carries only
// the detail struct for its own type. Pure: the inputs are not modified.
func Unify(states []model.StateLaw, countries []model.CountryLaw) []model.LawRecord {
	records := make([]model.LawRecord, 0, len(states)+len(countries))

	for _, s := range states {
		records = append(records, model.LawRecord{
			Type:             model.LawTypeState,
			ID:               s.ID,
			Name:             s.Name,
			Slug:             s.Slug,
			Status:           s.Status,
			PossessionLimits: s.PossessionLimits,
			LastUpdated:      s.LastUpdated,
			State: &model.StateDetails{
				TouristNotes:   s.TouristNotes,
				WhereToConsume: s.WhereToConsume,
				DrivingRules:   s.DrivingRules,
				AirportRules:   s.AirportRules,
			},
		})
	}

	for _, c := range countries {
		records = append(records, model.LawRecord{
			Type:             model.LawTypeCountry,
			ID:               c.ID,
			Name:             c.Name,
			Slug:             c.Slug,
			Status:           c.Status,
			PossessionLimits: c.PossessionLimits,
			LastUpdated:      c.LastUpdated,
			Country: &model.CountryDetails{
				AgeLimit:         c.AgeLimit,
				PurchaseLimits:   c.PurchaseLimits,
				ConsumptionNotes: c.ConsumptionNotes,
				Penalties:        c.Penalties,
				SourceURL:        c.SourceURL,
				Region:           c.Region,
				AirportRules:     c.AirportRules,
			},
		})
	}

	return records
}
