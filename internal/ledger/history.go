package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/rastokopal/macrolog/internal/coordinator"
	"github.com/rastokopal/macrolog/internal/models"
)

const (
	defaultHistoryPageSize = 30
	averagesPageSize       = 100
	averagesItemBudget     = 500
)

// HistoryEntry is the read-only per-day projection served to dashboards
// and exports. HasEntry distinguishes days with logged food from days the
// user merely viewed.
type HistoryEntry struct {
	Date        string `json:"date"`
	Calories    int    `json:"caloriesKcal"`
	Protein     int    `json:"proteinG"`
	Carbs       int    `json:"carbsG"`
	Fats        int    `json:"fatsG"`
	Fiber       int    `json:"fiberG"`
	CalorieGoal int    `json:"calorieGoal"`
	HasEntry    bool   `json:"hasEntry"`
}

type HistoryPage struct {
	Items []HistoryEntry `json:"items"`
	// NextCursor is the last returned date when the page was full, empty
	// when pagination is exhausted.
	NextCursor string `json:"nextCursor,omitempty"`
}

type MacroAverages struct {
	Calories int `json:"caloriesKcal"`
	Protein  int `json:"proteinG"`
	Carbs    int `json:"carbsG"`
	Fats     int `json:"fatsG"`
}

type RangeAverages struct {
	Averages        MacroAverages `json:"averages"`
	DaysWithEntries int           `json:"daysWithEntries"`
}

// Rollup composes many per-day store reads into range listings, pages and
// multi-day averages. Viewing history materializes empty ledgers for every
// day in the range; that side effect is intentional.
type Rollup struct {
	store    *Store
	coord    *coordinator.Coordinator
	cacheTTL time.Duration
}

// NewRollup wires the history reader. coord may be nil; when set, range
// and averages results are cached under history-prefixed keys the store
// evicts after every write.
func NewRollup(store *Store, coord *coordinator.Coordinator, cacheTTL time.Duration) *Rollup {
	return &Rollup{store: store, coord: coord, cacheTTL: cacheTTL}
}

// GetRange returns one entry per calendar day from startDate to endDate
// inclusive, sorted descending by date.
func (rollup *Rollup) GetRange(userID uint, startDate string, endDate string) ([]HistoryEntry, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	dates, err := datesDescending(startDate, endDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("history:%d:range:%s:%s", userID, startDate, endDate)
	value, err := rollup.cached(key, func() (any, error) {
		return rollup.collect(userID, dates)
	})
	if err != nil {
		return nil, err
	}
	return value.([]HistoryEntry), nil
}

// GetPage slices the same descending date universe after cursor (a date
// string) for pageSize items.
func (rollup *Rollup) GetPage(userID uint, startDate string, endDate string, pageSize int, cursor string) (HistoryPage, error) {
	if userID == 0 {
		return HistoryPage{}, ErrUnauthenticated
	}
	if pageSize <= 0 {
		pageSize = defaultHistoryPageSize
	}
	dates, err := datesDescending(startDate, endDate)
	if err != nil {
		return HistoryPage{}, err
	}

	if cursor != "" {
		remaining := make([]string, 0, len(dates))
		for _, date := range dates {
			if date < cursor {
				remaining = append(remaining, date)
			}
		}
		dates = remaining
	}
	if len(dates) > pageSize {
		dates = dates[:pageSize]
	}

	items, err := rollup.collect(userID, dates)
	if err != nil {
		return HistoryPage{}, err
	}

	page := HistoryPage{Items: items}
	if len(items) == pageSize {
		page.NextCursor = items[len(items)-1].Date
	}
	return page, nil
}

// GetAverages pages through the range and averages calories and macros
// over the days that actually have entries. Empty days dilute nothing; a
// range with no logged days yields all-zero averages.
func (rollup *Rollup) GetAverages(userID uint, startDate string, endDate string) (RangeAverages, error) {
	if userID == 0 {
		return RangeAverages{}, ErrUnauthenticated
	}
	if _, err := datesDescending(startDate, endDate); err != nil {
		return RangeAverages{}, err
	}

	key := fmt.Sprintf("history:%d:averages:%s:%s", userID, startDate, endDate)
	value, err := rollup.cached(key, func() (any, error) {
		return rollup.computeAverages(userID, startDate, endDate)
	})
	if err != nil {
		return RangeAverages{}, err
	}
	return value.(RangeAverages), nil
}

func (rollup *Rollup) computeAverages(userID uint, startDate string, endDate string) (RangeAverages, error) {
	var calories, protein, carbs, fats, days int

	cursor := ""
	seen := 0
	for seen < averagesItemBudget {
		page, err := rollup.GetPage(userID, startDate, endDate, averagesPageSize, cursor)
		if err != nil {
			return RangeAverages{}, err
		}

		for _, item := range page.Items {
			if !item.HasEntry {
				continue
			}
			calories += item.Calories
			protein += item.Protein
			carbs += item.Carbs
			fats += item.Fats
			days++
		}

		seen += len(page.Items)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	result := RangeAverages{DaysWithEntries: days}
	if days == 0 {
		return result, nil
	}
	result.Averages = MacroAverages{
		Calories: averageOf(calories, days),
		Protein:  averageOf(protein, days),
		Carbs:    averageOf(carbs, days),
		Fats:     averageOf(fats, days),
	}
	return result, nil
}

func (rollup *Rollup) collect(userID uint, dates []string) ([]HistoryEntry, error) {
	entries := make([]HistoryEntry, 0, len(dates))
	for _, date := range dates {
		entry, err := rollup.store.GetOrCreate(userID, date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, projectHistoryEntry(entry))
	}
	return entries, nil
}

func (rollup *Rollup) cached(key string, compute func() (any, error)) (any, error) {
	if rollup.coord == nil {
		return compute()
	}
	return rollup.coord.GetCached(key, rollup.cacheTTL, compute)
}

func projectHistoryEntry(entry models.DailyLedger) HistoryEntry {
	fiber := 0
	for _, meal := range models.MealTypes() {
		fiber += entry.Slot(meal).Fiber
	}
	return HistoryEntry{
		Date:        entry.Date,
		Calories:    entry.CaloriesCurrent,
		Protein:     entry.ProteinCurrent,
		Carbs:       entry.CarbsCurrent,
		Fats:        entry.FatsCurrent,
		Fiber:       fiber,
		CalorieGoal: entry.CaloriesGoal,
		HasEntry:    entry.HasEntry(),
	}
}

// datesDescending enumerates every calendar day from startDate to endDate
// inclusive, newest first. An inverted range is empty, not an error.
func datesDescending(startDate string, endDate string) ([]string, error) {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	dates := make([]string, 0)
	for cursor := end; !cursor.Before(start); cursor = cursor.AddDate(0, 0, -1) {
		dates = append(dates, cursor.Format(models.DateLayout))
	}
	return dates, nil
}

func averageOf(total int, days int) int {
	return int(math.Round(float64(total) / float64(days)))
}
