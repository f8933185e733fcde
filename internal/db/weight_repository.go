package db

import (
	"gorm.io/gorm"

	"github.com/rastokopal/macrolog/internal/models"
)

type WeightRepository struct {
	database *gorm.DB
}

func NewWeightRepository(database *gorm.DB) *WeightRepository {
	return &WeightRepository{database: database}
}

func (repo *WeightRepository) FindByUserAndDate(userID uint, date string) (models.WeightEntry, bool, error) {
	entry := models.WeightEntry{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.WeightEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *WeightRepository) Create(entry *models.WeightEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightRepository) Save(entry *models.WeightEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *WeightRepository) ListByUserDesc(userID uint) ([]models.WeightEntry, error) {
	entries := make([]models.WeightEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
