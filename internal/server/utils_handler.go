package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YasminTrembulack/Project-Backend-JA-5P/internal/model"
)

// CountriesResponse lists the country names a customer may register under.
type CountriesResponse struct {
	Countries []string `json:"countries"`
}

func handleCountries(c *fiber.Ctx) error {
	return c.JSON(CountriesResponse{Countries: model.CountryNames()})
}
