package ledger

import (
	"testing"

	"github.com/rastokopal/macrolog/internal/models"
)

func TestBackfillFiberDefaultsMissingFields(t *testing.T) {
	legacy := testIngredient(100, 5, 10, 2, 0)
	legacy.Fiber = nil
	modern := testIngredient(200, 8, 20, 4, 3.5)

	entry := models.DailyLedger{}
	entry.Lunch.Ingredients = []models.Ingredient{legacy, modern}

	if !BackfillFiber(&entry) {
		t.Fatalf("expected backfill to report a change")
	}

	filled := entry.Lunch.Ingredients[0].Fiber
	if filled == nil || *filled != 0 {
		t.Fatalf("expected legacy ingredient fiber backfilled to 0, got %v", filled)
	}
	if *entry.Lunch.Ingredients[1].Fiber != 3.5 {
		t.Fatalf("expected existing fiber untouched, got %v", *entry.Lunch.Ingredients[1].Fiber)
	}
}

func TestBackfillFiberIsANoOpOnModernRecords(t *testing.T) {
	entry := models.DailyLedger{}
	entry.Dinner.Ingredients = []models.Ingredient{testIngredient(300, 20, 30, 10, 5)}

	if BackfillFiber(&entry) {
		t.Fatalf("expected no change for records that already carry fiber")
	}
}
