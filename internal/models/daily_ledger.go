package models

import "time"

// DateLayout is the canonical calendar-day key format. Ledger rows, weight
// entries and pagination cursors all use it; lexicographic order on these
// strings matches chronological order.
const DateLayout = "2006-01-02"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes returns the meal slots of a day in their fixed order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}
}

func ParseMealType(raw string) (MealType, bool) {
	switch MealType(raw) {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return MealType(raw), true
	}
	return "", false
}

// Ingredient is immutable once logged except for deletion. Fiber is a
// pointer because records written before fiber tracking existed lack the
// field entirely; a nil value is backfilled to zero on read.
type Ingredient struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Calories float64  `json:"caloriesKcal"`
	Protein  float64  `json:"proteinG"`
	Carbs    float64  `json:"carbsG"`
	Fats     float64  `json:"fatsG"`
	Fiber    *float64 `json:"fiberG,omitempty"`
}

// MealSlot caches its totals; they always equal the independently rounded
// sums over Ingredients.
type MealSlot struct {
	Ingredients []Ingredient `json:"ingredients"`
	Calories    int          `json:"caloriesKcal"`
	Protein     int          `json:"proteinG"`
	Carbs       int          `json:"carbsG"`
	Fats        int          `json:"fatsG"`
	Fiber       int          `json:"fiberG"`
}

// DailyLedger is one user's nutrition ledger for one calendar day. The
// *_current columns equal the sums of the four slot totals (fiber stays
// slot-level only) and the *_goal columns mirror the goal calculator's
// output for the owning user's current profile.
type DailyLedger struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:uidx_ledger_user_date"`
	Date   string `gorm:"not null;uniqueIndex:uidx_ledger_user_date"`

	CaloriesCurrent int `gorm:"not null;default:0"`
	CaloriesGoal    int `gorm:"not null;default:0"`
	ProteinCurrent  int `gorm:"not null;default:0"`
	ProteinGoal     int `gorm:"not null;default:0"`
	CarbsCurrent    int `gorm:"not null;default:0"`
	CarbsGoal       int `gorm:"not null;default:0"`
	FatsCurrent     int `gorm:"not null;default:0"`
	FatsGoal        int `gorm:"not null;default:0"`

	Breakfast MealSlot `gorm:"serializer:json"`
	Lunch     MealSlot `gorm:"serializer:json"`
	Dinner    MealSlot `gorm:"serializer:json"`
	Snacks    MealSlot `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the addressable meal slot for meal, or nil for an unknown
// meal type.
func (ledger *DailyLedger) Slot(meal MealType) *MealSlot {
	switch meal {
	case MealBreakfast:
		return &ledger.Breakfast
	case MealLunch:
		return &ledger.Lunch
	case MealDinner:
		return &ledger.Dinner
	case MealSnacks:
		return &ledger.Snacks
	}
	return nil
}

// HasEntry reports whether at least one meal slot holds an ingredient. An
// all-empty ledger is still a valid, materialized day.
func (ledger *DailyLedger) HasEntry() bool {
	for _, meal := range MealTypes() {
		if len(ledger.Slot(meal).Ingredients) > 0 {
			return true
		}
	}
	return false
}
