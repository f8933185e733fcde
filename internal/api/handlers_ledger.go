package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rastokopal/macrolog/internal/ledger"
	"github.com/rastokopal/macrolog/internal/models"
)

type macroProgress struct {
	Current int `json:"current"`
	Goal    int `json:"goal"`
}

type ledgerMacros struct {
	Calories macroProgress `json:"calories"`
	Protein  macroProgress `json:"protein"`
	Carbs    macroProgress `json:"carbs"`
	Fats     macroProgress `json:"fats"`
}

type ledgerMeals struct {
	Breakfast models.MealSlot `json:"breakfast"`
	Lunch     models.MealSlot `json:"lunch"`
	Dinner    models.MealSlot `json:"dinner"`
	Snacks    models.MealSlot `json:"snacks"`
}

type ledgerView struct {
	Date   string       `json:"date"`
	Macros ledgerMacros `json:"macros"`
	Meals  ledgerMeals  `json:"meals"`
}

func projectLedger(entry models.DailyLedger) ledgerView {
	return ledgerView{
		Date: entry.Date,
		Macros: ledgerMacros{
			Calories: macroProgress{Current: entry.CaloriesCurrent, Goal: entry.CaloriesGoal},
			Protein:  macroProgress{Current: entry.ProteinCurrent, Goal: entry.ProteinGoal},
			Carbs:    macroProgress{Current: entry.CarbsCurrent, Goal: entry.CarbsGoal},
			Fats:     macroProgress{Current: entry.FatsCurrent, Goal: entry.FatsGoal},
		},
		Meals: ledgerMeals{
			Breakfast: entry.Breakfast,
			Lunch:     entry.Lunch,
			Dinner:    entry.Dinner,
			Snacks:    entry.Snacks,
		},
	}
}

func (handler *Handler) GetLedgerDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.store.GetOrCreate(user.ID, c.Params("date"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(projectLedger(entry))
}

type addIngredientsInput struct {
	Ingredients []ledger.IngredientInput `json:"ingredients"`
}

func (handler *Handler) AddIngredients(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	meal, ok := models.ParseMealType(c.Params("meal"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "unknown meal type")
	}

	var input addIngredientsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(input.Ingredients) == 0 {
		return apiError(c, fiber.StatusBadRequest, "no ingredients provided")
	}

	entry, err := handler.store.AddIngredients(user.ID, c.Params("date"), meal, input.Ingredients)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(projectLedger(entry))
}

func (handler *Handler) RemoveIngredient(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	meal, ok := models.ParseMealType(c.Params("meal"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "unknown meal type")
	}

	entry, err := handler.store.RemoveIngredient(user.ID, c.Params("date"), meal, c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(projectLedger(entry))
}
