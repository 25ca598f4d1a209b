package handlers

import (
	"context"
	"log"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/tmorrow/highroad/internal/store"
	"github.com/tmorrow/highroad/internal/templates"
)

func HomeHandler(stateStore *store.StateStore, countryStore *store.CountryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		metrics := templates.HomeMetrics{}

		states, err := stateStore.GetAll(ctx)
		if err != nil {
			log.Printf("Error counting states: %v", err)
		} else {
			metrics.TotalStates = len(states)
		}

		countries, err := countryStore.GetAll(ctx)
		if err != nil {
			log.Printf("Error counting countries: %v", err)
		} else {
			metrics.TotalCountries = len(countries)
		}

		metrics.HasData = metrics.TotalStates+metrics.TotalCountries > 0

		page := templates.Home(metrics)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
