package ledger

import (
	"math"

	"github.com/rastokopal/macrolog/internal/models"
)

// Recalculate restores the ledger's totals after its ingredient lists were
// mutated: every meal slot's cached totals become the independently rounded
// sums over its ingredients, and the day's current macros become the sums
// of the already-rounded slot totals. Fiber stays slot-level and is never
// rolled into the day macros. Goal fields are untouched; refreshing them is
// the store's job. Idempotent.
func Recalculate(entry *models.DailyLedger) {
	entry.CaloriesCurrent = 0
	entry.ProteinCurrent = 0
	entry.CarbsCurrent = 0
	entry.FatsCurrent = 0

	for _, meal := range models.MealTypes() {
		slot := entry.Slot(meal)
		recalculateSlot(slot)

		entry.CaloriesCurrent += slot.Calories
		entry.ProteinCurrent += slot.Protein
		entry.CarbsCurrent += slot.Carbs
		entry.FatsCurrent += slot.Fats
	}
}

func recalculateSlot(slot *models.MealSlot) {
	var calories, protein, carbs, fats, fiber float64
	for _, ingredient := range slot.Ingredients {
		calories += ingredient.Calories
		protein += ingredient.Protein
		carbs += ingredient.Carbs
		fats += ingredient.Fats
		if ingredient.Fiber != nil {
			fiber += *ingredient.Fiber
		}
	}

	slot.Calories = int(math.Round(calories))
	slot.Protein = int(math.Round(protein))
	slot.Carbs = int(math.Round(carbs))
	slot.Fats = int(math.Round(fats))
	slot.Fiber = int(math.Round(fiber))
}
