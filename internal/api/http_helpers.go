package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rastokopal/macrolog/internal/ledger"
	"github.com/rastokopal/macrolog/internal/profile"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ledgerError maps store and rollup sentinels onto HTTP statuses. Anything
// unrecognized is a backend failure.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrUnauthenticated):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ledger.ErrInvalidDate):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, ledger.ErrUnknownMealType):
		return apiError(c, fiber.StatusBadRequest, "unknown meal type")
	case errors.Is(err, profile.ErrProfileNotFound):
		return apiError(c, fiber.StatusNotFound, "profile not set up")
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
