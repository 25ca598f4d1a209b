package handlers

import (
	"context"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/tmorrow/highroad/internal/store"
	"github.com/tmorrow/highroad/internal/templates"
)

func NewsletterSubscribeHandler(newsletterStore *store.NewsletterStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		sub, err := newsletterStore.Subscribe(ctx, c.FormValue("email"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Could not subscribe: " + err.Error())
		}

		page := templates.NewsletterThanks(sub.Email)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
