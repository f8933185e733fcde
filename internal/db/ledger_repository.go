package db

import (
	"gorm.io/gorm"

	"github.com/rastokopal/macrolog/internal/models"
)

type LedgerRepository struct {
	database *gorm.DB
}

func NewLedgerRepository(database *gorm.DB) *LedgerRepository {
	return &LedgerRepository{database: database}
}

func (repo *LedgerRepository) FindByUserAndDate(userID uint, date string) (models.DailyLedger, bool, error) {
	entry := models.DailyLedger{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLedger{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLedger{}, false, nil
	}
	return entry, true, nil
}

func (repo *LedgerRepository) Create(entry *models.DailyLedger) error {
	return repo.database.Create(entry).Error
}

func (repo *LedgerRepository) Save(entry *models.DailyLedger) error {
	return repo.database.Save(entry).Error
}

// ListByUserDateRangeDesc returns stored days newest first. Dates are
// YYYY-MM-DD strings, so lexicographic comparison is chronological.
// beforeDate is an exclusive cursor; pass "" for the first page and
// limit <= 0 for no cap.
func (repo *LedgerRepository) ListByUserDateRangeDesc(userID uint, fromDate string, toDate string, limit int, beforeDate string) ([]models.DailyLedger, error) {
	query := repo.database.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, fromDate, toDate)
	if beforeDate != "" {
		query = query.Where("date < ?", beforeDate)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	entries := make([]models.DailyLedger, 0)
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
