package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rastokopal/macrolog/internal/models"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUserID(userID uint) (models.Profile, bool, error) {
	var profile models.Profile
	err := repo.database.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	return profile, true, nil
}

func (repo *ProfileRepository) Create(profile *models.Profile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) Save(profile *models.Profile) error {
	return repo.database.Save(profile).Error
}
