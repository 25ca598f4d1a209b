package handlers

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tmorrow/highroad/internal/store"
	"github.com/tmorrow/highroad/internal/templates"
)

func CityGuideHandler(dispensaryStore *store.DispensaryStore, hotelStore *store.HotelStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		city := strings.ReplaceAll(c.Params("city"), "-", " ")
		city = cases.Title(language.English).String(city)

		dispensaries, err := dispensaryStore.GetByCity(ctx, city)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading dispensaries")
		}

		hotels, err := hotelStore.GetByCity(ctx, city)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading hotels")
		}

		if len(dispensaries) == 0 && len(hotels) == 0 {
			return c.Status(fiber.StatusNotFound).SendString("No guide for this city")
		}

		page := templates.CityGuide(city, dispensaries, hotels)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
