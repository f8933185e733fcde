// Package ledger owns the daily nutrition ledger: one row per user per
// calendar day, recomputed totals after every structural change, goals
// lazily refreshed from the owning user's current profile.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rastokopal/macrolog/internal/coordinator"
	"github.com/rastokopal/macrolog/internal/goals"
	"github.com/rastokopal/macrolog/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownMealType = errors.New("unknown meal type")
)

// ValidDate reports whether date is a canonical YYYY-MM-DD calendar day.
func ValidDate(date string) bool {
	parsed, err := time.Parse(models.DateLayout, date)
	return err == nil && parsed.Format(models.DateLayout) == date
}

// Repository is the persistence port for ledger rows. Implementations must
// make Create and Save atomic per row; everything else the store layers on
// top.
type Repository interface {
	FindByUserAndDate(userID uint, date string) (models.DailyLedger, bool, error)
	Create(entry *models.DailyLedger) error
	Save(entry *models.DailyLedger) error
}

// ProfileProvider supplies the current profile used to refresh ledger
// goals on every read.
type ProfileProvider interface {
	ProfileByUserID(userID uint) (models.Profile, error)
}

// IngredientInput is an ingredient as submitted by a caller, before the
// store assigns it an id. A nil Fiber defaults to zero.
type IngredientInput struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Calories float64  `json:"caloriesKcal"`
	Protein  float64  `json:"proteinG"`
	Carbs    float64  `json:"carbsG"`
	Fats     float64  `json:"fatsG"`
	Fiber    *float64 `json:"fiberG"`
}

type Store struct {
	ledgers  Repository
	profiles ProfileProvider
	coord    *coordinator.Coordinator
	cacheTTL time.Duration

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore wires the ledger store. coord may be nil to disable read
// caching and deduplication; writes never pass through the coordinator,
// they only evict from it.
func NewStore(ledgers Repository, profiles ProfileProvider, coord *coordinator.Coordinator, cacheTTL time.Duration) *Store {
	return &Store{
		ledgers:  ledgers,
		profiles: profiles,
		coord:    coord,
		cacheTTL: cacheTTL,
		locks:    make(map[string]*sync.Mutex),
	}
}

// GetOrCreate returns the user's ledger for date, creating an empty one
// seeded from the current profile when the day has never been viewed. On
// existing rows it backfills missing fiber fields and refreshes the goal
// columns from the current profile, persisting either correction before
// returning.
func (store *Store) GetOrCreate(userID uint, date string) (models.DailyLedger, error) {
	if userID == 0 {
		return models.DailyLedger{}, ErrUnauthenticated
	}
	if !ValidDate(date) {
		return models.DailyLedger{}, ErrInvalidDate
	}

	if store.coord == nil {
		return store.loadOrCreate(userID, date)
	}

	value, err := store.coord.GetCached(ledgerCacheKey(userID, date), store.cacheTTL, func() (any, error) {
		entry, loadErr := store.loadOrCreate(userID, date)
		if loadErr != nil {
			return nil, loadErr
		}
		return entry, nil
	})
	if err != nil {
		return models.DailyLedger{}, err
	}
	return value.(models.DailyLedger), nil
}

// AddIngredients appends the batch to the target meal slot as one atomic
// update, assigns fresh ids, recomputes totals and persists. Used both for
// manual entry and recognition imports, so inputs may hold one or many
// ingredients.
func (store *Store) AddIngredients(userID uint, date string, meal models.MealType, inputs []IngredientInput) (models.DailyLedger, error) {
	entry, slot, unlock, err := store.beginMutation(userID, date, meal)
	if err != nil {
		return models.DailyLedger{}, err
	}
	defer unlock()

	if len(inputs) == 0 {
		return *entry, nil
	}

	for _, input := range inputs {
		fiber := 0.0
		if input.Fiber != nil {
			fiber = *input.Fiber
		}
		slot.Ingredients = append(slot.Ingredients, models.Ingredient{
			ID:       uuid.NewString(),
			Name:     input.Name,
			Quantity: input.Quantity,
			Calories: input.Calories,
			Protein:  input.Protein,
			Carbs:    input.Carbs,
			Fats:     input.Fats,
			Fiber:    &fiber,
		})
	}

	return store.finishMutation(userID, date, entry)
}

// RemoveIngredient deletes the matching ingredient from the meal slot. An
// absent id is a no-op, not an error.
func (store *Store) RemoveIngredient(userID uint, date string, meal models.MealType, ingredientID string) (models.DailyLedger, error) {
	entry, slot, unlock, err := store.beginMutation(userID, date, meal)
	if err != nil {
		return models.DailyLedger{}, err
	}
	defer unlock()

	filtered := make([]models.Ingredient, 0, len(slot.Ingredients))
	removed := false
	for _, ingredient := range slot.Ingredients {
		if ingredient.ID == ingredientID {
			removed = true
			continue
		}
		filtered = append(filtered, ingredient)
	}
	if !removed {
		return *entry, nil
	}
	slot.Ingredients = filtered

	return store.finishMutation(userID, date, entry)
}

// beginMutation validates the request, serializes against other writers of
// the same (user, date) row and loads the row with read-time corrections
// applied. The returned unlock must be deferred by the caller.
func (store *Store) beginMutation(userID uint, date string, meal models.MealType) (*models.DailyLedger, *models.MealSlot, func(), error) {
	if userID == 0 {
		return nil, nil, nil, ErrUnauthenticated
	}
	if !ValidDate(date) {
		return nil, nil, nil, ErrInvalidDate
	}
	if _, ok := models.ParseMealType(string(meal)); !ok {
		return nil, nil, nil, ErrUnknownMealType
	}

	unlock := store.lock(userID, date)
	loaded, err := store.loadOrCreateLocked(userID, date)
	if err != nil {
		unlock()
		return nil, nil, nil, err
	}
	entry := &loaded
	return entry, entry.Slot(meal), unlock, nil
}

func (store *Store) finishMutation(userID uint, date string, entry *models.DailyLedger) (models.DailyLedger, error) {
	Recalculate(entry)
	if err := store.ledgers.Save(entry); err != nil {
		return models.DailyLedger{}, err
	}
	store.invalidate(userID, date)
	return *entry, nil
}

func (store *Store) loadOrCreate(userID uint, date string) (models.DailyLedger, error) {
	unlock := store.lock(userID, date)
	defer unlock()
	return store.loadOrCreateLocked(userID, date)
}

func (store *Store) loadOrCreateLocked(userID uint, date string) (models.DailyLedger, error) {
	profile, err := store.profiles.ProfileByUserID(userID)
	if err != nil {
		return models.DailyLedger{}, err
	}
	targets := goals.Calculate(profile)

	entry, found, err := store.ledgers.FindByUserAndDate(userID, date)
	if err != nil {
		return models.DailyLedger{}, err
	}
	if !found {
		entry = newDayLedger(userID, date, targets)
		if err := store.ledgers.Create(&entry); err != nil {
			return models.DailyLedger{}, err
		}
		return entry, nil
	}

	changed := BackfillFiber(&entry)
	if applyTargets(&entry, targets) {
		changed = true
	}
	if changed {
		if err := store.ledgers.Save(&entry); err != nil {
			return models.DailyLedger{}, err
		}
	}
	return entry, nil
}

func newDayLedger(userID uint, date string, targets goals.Targets) models.DailyLedger {
	entry := models.DailyLedger{UserID: userID, Date: date}
	for _, meal := range models.MealTypes() {
		entry.Slot(meal).Ingredients = []models.Ingredient{}
	}
	applyTargets(&entry, targets)
	return entry
}

func applyTargets(entry *models.DailyLedger, targets goals.Targets) bool {
	changed := entry.CaloriesGoal != targets.Calories ||
		entry.ProteinGoal != targets.Protein ||
		entry.CarbsGoal != targets.Carbs ||
		entry.FatsGoal != targets.Fats

	entry.CaloriesGoal = targets.Calories
	entry.ProteinGoal = targets.Protein
	entry.CarbsGoal = targets.Carbs
	entry.FatsGoal = targets.Fats
	return changed
}

// lock serializes same-row writers in-process; a naive read-modify-write
// would otherwise lose updates when two callers race on one (user, date).
func (store *Store) lock(userID uint, date string) func() {
	key := ledgerCacheKey(userID, date)

	store.locksMu.Lock()
	mutex, ok := store.locks[key]
	if !ok {
		mutex = &sync.Mutex{}
		store.locks[key] = mutex
	}
	store.locksMu.Unlock()

	mutex.Lock()
	return mutex.Unlock
}

// InvalidateUser drops every cached read for the user. Profile edits call
// it because stored goals are corrected lazily on the next read.
func (store *Store) InvalidateUser(userID uint) {
	if store.coord == nil {
		return
	}
	store.coord.InvalidatePattern(regexp.MustCompile(fmt.Sprintf(`^ledger:%d:`, userID)))
	store.coord.InvalidatePattern(historyKeyPattern(userID))
}

func (store *Store) invalidate(userID uint, date string) {
	if store.coord == nil {
		return
	}
	store.coord.Invalidate(ledgerCacheKey(userID, date))
	store.coord.InvalidatePattern(historyKeyPattern(userID))
}

func ledgerCacheKey(userID uint, date string) string {
	return fmt.Sprintf("ledger:%d:%s", userID, date)
}

func historyKeyPattern(userID uint) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^history:%d:`, userID))
}
