package handlers

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/tmorrow/highroad/internal/laws"
	"github.com/tmorrow/highroad/internal/store"
	"github.com/tmorrow/highroad/internal/templates"
)

func StatesHandler(stateStore *store.StateStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		states, err := stateStore.GetAll(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading states")
		}

		page := templates.States(states)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

func StateDetailHandler(stateStore *store.StateStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		slug := c.Params("slug")

		state, err := stateStore.GetBySlug(ctx, slug)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading state")
		}
		if state == nil {
			return c.Status(fiber.StatusNotFound).SendString("State not found")
		}

		page := templates.StateDetail(state, laws.Classify(state.LastUpdated, time.Now()))
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

func CountriesHandler(countryStore *store.CountryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		countries, err := countryStore.GetAll(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading countries")
		}

		page := templates.Countries(countries)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

func CountryDetailHandler(countryStore *store.CountryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		slug := c.Params("slug")

		country, err := countryStore.GetBySlug(ctx, slug)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading country")
		}
		if country == nil {
			return c.Status(fiber.StatusNotFound).SendString("Country not found")
		}

		page := templates.CountryDetail(country, laws.Classify(country.LastUpdated, time.Now()))
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
