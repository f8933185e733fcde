package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rastokopal/macrolog/internal/coordinator"
	"github.com/rastokopal/macrolog/internal/goals"
	"github.com/rastokopal/macrolog/internal/models"
)

type stubLedgerRepository struct {
	mu      sync.Mutex
	rows    map[string]models.DailyLedger
	nextID  uint
	finds   int
	creates int
	saves   int

	findErr   error
	createErr error
	saveErr   error
}

func newStubLedgerRepository() *stubLedgerRepository {
	return &stubLedgerRepository{rows: make(map[string]models.DailyLedger)}
}

func (stub *stubLedgerRepository) rowKey(userID uint, date string) string {
	return fmt.Sprintf("%d:%s", userID, date)
}

func (stub *stubLedgerRepository) FindByUserAndDate(userID uint, date string) (models.DailyLedger, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.finds++
	if stub.findErr != nil {
		return models.DailyLedger{}, false, stub.findErr
	}
	row, ok := stub.rows[stub.rowKey(userID, date)]
	return row, ok, nil
}

func (stub *stubLedgerRepository) Create(entry *models.DailyLedger) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.creates++
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.nextID++
	entry.ID = stub.nextID
	stub.rows[stub.rowKey(entry.UserID, entry.Date)] = *entry
	return nil
}

func (stub *stubLedgerRepository) Save(entry *models.DailyLedger) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.saves++
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.rows[stub.rowKey(entry.UserID, entry.Date)] = *entry
	return nil
}

type stubProfileProvider struct {
	profile models.Profile
	err     error
}

func (stub *stubProfileProvider) ProfileByUserID(uint) (models.Profile, error) {
	if stub.err != nil {
		return models.Profile{}, stub.err
	}
	return stub.profile, nil
}

func storeTestProfile() models.Profile {
	return models.Profile{
		Age:           30,
		HeightCm:      170,
		WeightKg:      70,
		Gender:        models.GenderMale,
		PrimaryGoal:   models.GoalLose,
		ActivityLevel: models.ActivityLightly,
	}
}

func newTestStore() (*Store, *stubLedgerRepository, *stubProfileProvider) {
	repo := newStubLedgerRepository()
	profiles := &stubProfileProvider{profile: storeTestProfile()}
	return NewStore(repo, profiles, nil, 0), repo, profiles
}

func TestGetOrCreateMaterializesEmptyDay(t *testing.T) {
	store, repo, _ := newTestStore()

	entry, err := store.GetOrCreate(7, "2026-03-01")
	if err != nil {
		t.Fatalf("getOrCreate failed: %v", err)
	}

	if repo.creates != 1 {
		t.Fatalf("expected one create, got %d", repo.creates)
	}
	if entry.CaloriesCurrent != 0 || entry.ProteinCurrent != 0 {
		t.Fatalf("expected zero totals on a fresh day, got %+v", entry)
	}
	// Goals seeded from the profile: Harris-Benedict male 30/170/70,
	// lightly active, lose.
	if entry.CaloriesGoal != 1799 || entry.ProteinGoal != 135 || entry.CarbsGoal != 180 || entry.FatsGoal != 60 {
		t.Fatalf("unexpected seeded goals: %+v", entry)
	}
	for _, meal := range models.MealTypes() {
		if entry.Slot(meal).Ingredients == nil || len(entry.Slot(meal).Ingredients) != 0 {
			t.Fatalf("expected empty ingredient list for %s", meal)
		}
	}
}

func TestGetOrCreateRequiresUserContext(t *testing.T) {
	store, _, _ := newTestStore()

	if _, err := store.GetOrCreate(0, "2026-03-01"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGetOrCreateRejectsMalformedDates(t *testing.T) {
	store, _, _ := newTestStore()

	for _, date := range []string{"03/01/2026", "2026-3-1", "yesterday", ""} {
		if _, err := store.GetOrCreate(7, date); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", date, err)
		}
	}
}

func TestGetOrCreateRefreshesStaleGoals(t *testing.T) {
	store, repo, profiles := newTestStore()

	if _, err := store.GetOrCreate(7, "2026-03-01"); err != nil {
		t.Fatalf("seed read failed: %v", err)
	}

	// The user flips to gain: stored goals no longer match the profile.
	profiles.profile.PrimaryGoal = models.GoalGain
	savesBefore := repo.saves

	entry, err := store.GetOrCreate(7, "2026-03-01")
	if err != nil {
		t.Fatalf("refresh read failed: %v", err)
	}
	if entry.CaloriesGoal != 2799 {
		t.Fatalf("expected refreshed calorie goal 2799, got %d", entry.CaloriesGoal)
	}
	if repo.saves != savesBefore+1 {
		t.Fatalf("expected the goal correction to be persisted")
	}

	// A second read finds nothing to correct.
	savesBefore = repo.saves
	if _, err := store.GetOrCreate(7, "2026-03-01"); err != nil {
		t.Fatalf("settled read failed: %v", err)
	}
	if repo.saves != savesBefore {
		t.Fatalf("expected no save on an up-to-date ledger")
	}
}

func TestGetOrCreateBackfillsLegacyFiber(t *testing.T) {
	store, repo, _ := newTestStore()

	legacy := models.DailyLedger{UserID: 7, Date: "2025-11-20"}
	legacy.Breakfast.Ingredients = []models.Ingredient{{ID: "old", Name: "toast", Quantity: "2 slices", Calories: 180}}
	applyTargets(&legacy, goals.Calculate(storeTestProfile()))
	repo.rows[repo.rowKey(7, "2025-11-20")] = legacy

	entry, err := store.GetOrCreate(7, "2025-11-20")
	if err != nil {
		t.Fatalf("getOrCreate failed: %v", err)
	}

	fiber := entry.Breakfast.Ingredients[0].Fiber
	if fiber == nil || *fiber != 0 {
		t.Fatalf("expected legacy fiber backfilled to 0, got %v", fiber)
	}
	if repo.saves != 1 {
		t.Fatalf("expected backfill to be persisted, got %d saves", repo.saves)
	}
}

func TestAddIngredientsBatchUpdatesTotals(t *testing.T) {
	store, _, _ := newTestStore()

	entry, err := store.AddIngredients(7, "2026-03-01", models.MealBreakfast, []IngredientInput{
		{Name: "oats", Quantity: "50g", Calories: 100},
		{Name: "banana", Quantity: "1", Calories: 250},
	})
	if err != nil {
		t.Fatalf("addIngredients failed: %v", err)
	}

	if entry.Breakfast.Calories != 350 {
		t.Fatalf("expected breakfast calories 350, got %d", entry.Breakfast.Calories)
	}
	if entry.CaloriesCurrent != 350 {
		t.Fatalf("expected day calories 350, got %d", entry.CaloriesCurrent)
	}

	seen := make(map[string]bool)
	for _, ingredient := range entry.Breakfast.Ingredients {
		if ingredient.ID == "" {
			t.Fatalf("expected assigned ingredient id")
		}
		if seen[ingredient.ID] {
			t.Fatalf("duplicate ingredient id %s", ingredient.ID)
		}
		seen[ingredient.ID] = true
		if ingredient.Fiber == nil || *ingredient.Fiber != 0 {
			t.Fatalf("expected missing fiber defaulted to 0, got %v", ingredient.Fiber)
		}
	}
}

func TestAddThenRemoveRestoresTotals(t *testing.T) {
	store, _, _ := newTestStore()

	before, err := store.AddIngredients(7, "2026-03-01", models.MealLunch, []IngredientInput{
		{Name: "rice", Quantity: "150g", Calories: 195, Protein: 4, Carbs: 42, Fats: 0.5},
	})
	if err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	added, err := store.AddIngredients(7, "2026-03-01", models.MealLunch, []IngredientInput{
		{Name: "chicken", Quantity: "120g", Calories: 198, Protein: 37, Carbs: 0, Fats: 4.3},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	addedID := added.Lunch.Ingredients[len(added.Lunch.Ingredients)-1].ID

	after, err := store.RemoveIngredient(7, "2026-03-01", models.MealLunch, addedID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if after.Lunch.Calories != before.Lunch.Calories ||
		after.Lunch.Protein != before.Lunch.Protein ||
		after.CaloriesCurrent != before.CaloriesCurrent {
		t.Fatalf("expected totals restored, before %+v after %+v", before.Lunch, after.Lunch)
	}
}

func TestRemoveIngredientAbsentIDIsNoOp(t *testing.T) {
	store, repo, _ := newTestStore()

	if _, err := store.AddIngredients(7, "2026-03-01", models.MealDinner, []IngredientInput{
		{Name: "soup", Quantity: "1 bowl", Calories: 120},
	}); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	savesBefore := repo.saves

	entry, err := store.RemoveIngredient(7, "2026-03-01", models.MealDinner, "no-such-id")
	if err != nil {
		t.Fatalf("expected no-op, got error %v", err)
	}
	if len(entry.Dinner.Ingredients) != 1 {
		t.Fatalf("expected ingredient kept, got %d", len(entry.Dinner.Ingredients))
	}
	if repo.saves != savesBefore {
		t.Fatalf("expected no save for a no-op removal")
	}
}

func TestMutationsRejectUnknownMealType(t *testing.T) {
	store, _, _ := newTestStore()

	if _, err := store.AddIngredients(7, "2026-03-01", "supper", nil); !errors.Is(err, ErrUnknownMealType) {
		t.Fatalf("expected ErrUnknownMealType, got %v", err)
	}
	if _, err := store.RemoveIngredient(7, "2026-03-01", "supper", "id"); !errors.Is(err, ErrUnknownMealType) {
		t.Fatalf("expected ErrUnknownMealType, got %v", err)
	}
}

func TestPersistenceErrorsPropagateUnwrapped(t *testing.T) {
	store, repo, _ := newTestStore()
	boom := errors.New("disk full")
	repo.findErr = boom

	if _, err := store.GetOrCreate(7, "2026-03-01"); !errors.Is(err, boom) {
		t.Fatalf("expected backend error to propagate, got %v", err)
	}
}

func TestProfileProviderErrorsPropagate(t *testing.T) {
	store, _, profiles := newTestStore()
	boom := errors.New("profile backend down")
	profiles.err = boom

	if _, err := store.GetOrCreate(7, "2026-03-01"); !errors.Is(err, boom) {
		t.Fatalf("expected profile error to propagate, got %v", err)
	}
}

func TestConcurrentAddsOnSameDayLoseNothing(t *testing.T) {
	store, _, _ := newTestStore()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			_, err := store.AddIngredients(7, "2026-03-01", models.MealSnacks, []IngredientInput{
				{Name: fmt.Sprintf("snack-%d", worker), Quantity: "1", Calories: 100},
			})
			if err != nil {
				t.Errorf("worker %d add failed: %v", worker, err)
			}
		}(worker)
	}
	wg.Wait()

	entry, err := store.GetOrCreate(7, "2026-03-01")
	if err != nil {
		t.Fatalf("final read failed: %v", err)
	}
	if len(entry.Snacks.Ingredients) != 8 {
		t.Fatalf("expected 8 ingredients to survive the race, got %d", len(entry.Snacks.Ingredients))
	}
	if entry.CaloriesCurrent != 800 {
		t.Fatalf("expected day calories 800, got %d", entry.CaloriesCurrent)
	}
}

func TestCoordinatorCachesReadsAndWritesEvict(t *testing.T) {
	repo := newStubLedgerRepository()
	profiles := &stubProfileProvider{profile: storeTestProfile()}
	store := NewStore(repo, profiles, coordinator.New(), time.Minute)

	if _, err := store.GetOrCreate(7, "2026-03-01"); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	findsAfterFirst := repo.finds

	if _, err := store.GetOrCreate(7, "2026-03-01"); err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if repo.finds != findsAfterFirst {
		t.Fatalf("expected second read to be served from cache")
	}

	if _, err := store.AddIngredients(7, "2026-03-01", models.MealBreakfast, []IngredientInput{
		{Name: "egg", Quantity: "1", Calories: 78},
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	entry, err := store.GetOrCreate(7, "2026-03-01")
	if err != nil {
		t.Fatalf("post-write read failed: %v", err)
	}
	if entry.CaloriesCurrent != 78 {
		t.Fatalf("expected post-write read to see fresh totals, got %d", entry.CaloriesCurrent)
	}
}
