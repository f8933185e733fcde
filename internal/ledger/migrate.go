package ledger

import "github.com/rastokopal/macrolog/internal/models"

// BackfillFiber is a migration-on-read step for ledgers persisted before
// fiber tracking existed: every ingredient missing its fiber field gets an
// explicit zero. Kept separate from Recalculate so schema tolerance and
// totals math stay independently testable. Reports whether anything
// changed.
func BackfillFiber(entry *models.DailyLedger) bool {
	changed := false
	for _, meal := range models.MealTypes() {
		slot := entry.Slot(meal)
		for index := range slot.Ingredients {
			if slot.Ingredients[index].Fiber == nil {
				zero := 0.0
				slot.Ingredients[index].Fiber = &zero
				changed = true
			}
		}
	}
	return changed
}
