package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rastokopal/macrolog/internal/goals"
	"github.com/rastokopal/macrolog/internal/profile"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stored, err := handler.profileService.ProfileByUserID(user.ID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return apiError(c, fiber.StatusNotFound, "profile not set up")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return c.JSON(fiber.Map{
		"profile": stored,
		"goals":   goals.Calculate(stored),
	})
}

func (handler *Handler) UpsertProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profile.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Age <= 0 || input.HeightCm <= 0 || input.WeightKg <= 0 {
		return apiError(c, fiber.StatusBadRequest, "age, height and weight must be positive")
	}

	saved, err := handler.profileService.UpsertProfile(user.ID, input)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	// Stored goals may now disagree with the new profile; drop cached reads
	// so the next ledger fetch re-derives them.
	handler.store.InvalidateUser(user.ID)

	return c.JSON(fiber.Map{
		"profile": saved,
		"goals":   goals.Calculate(saved),
	})
}

type weightInput struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

func (handler *Handler) RecordWeight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input weightInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.WeightKg <= 0 {
		return apiError(c, fiber.StatusBadRequest, "weight must be positive")
	}

	entry, err := handler.profileService.RecordWeight(user.ID, input.Date, input.WeightKg)
	if errors.Is(err, profile.ErrInvalidDate) {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record weight")
	}

	handler.store.InvalidateUser(user.ID)
	return c.JSON(entry)
}

func (handler *Handler) WeightHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.profileService.WeightHistory(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load weight history")
	}
	return c.JSON(fiber.Map{"entries": entries})
}
