package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rastokopal/macrolog/internal/models"
)

type recognizeInput struct {
	Description string `json:"description"`
	// When Date and Meal are both set, recognized ingredients are logged
	// directly instead of only being returned for review.
	Date string `json:"date"`
	Meal string `json:"meal"`
}

func (handler *Handler) RecognizeIngredients(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.recognizer == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "recognition is not configured")
	}

	var input recognizeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Description == "" {
		return apiError(c, fiber.StatusBadRequest, "description is required")
	}

	items, err := handler.recognizer.Recognize(c.Context(), input.Description)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "recognition failed")
	}

	if input.Date == "" && input.Meal == "" {
		return c.JSON(fiber.Map{"ingredients": items})
	}

	meal, ok := models.ParseMealType(input.Meal)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "unknown meal type")
	}
	entry, err := handler.store.AddIngredients(user.ID, input.Date, meal, items)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"ingredients": items, "ledger": projectLedger(entry)})
}
