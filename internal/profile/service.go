// Package profile manages user profiles and their weight history. The
// ledger store consumes it as the goal source on every read.
package profile

import (
	"errors"
	"time"

	"github.com/rastokopal/macrolog/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidDate     = errors.New("invalid date")
)

type ProfileRepository interface {
	FindByUserID(userID uint) (models.Profile, bool, error)
	Create(profile *models.Profile) error
	Save(profile *models.Profile) error
}

type WeightRepository interface {
	FindByUserAndDate(userID uint, date string) (models.WeightEntry, bool, error)
	Create(entry *models.WeightEntry) error
	Save(entry *models.WeightEntry) error
	ListByUserDesc(userID uint) ([]models.WeightEntry, error)
}

type ProfileInput struct {
	Age            int     `json:"age"`
	HeightCm       float64 `json:"heightCm"`
	WeightKg       float64 `json:"weightKg"`
	Gender         string  `json:"gender"`
	PrimaryGoal    string  `json:"primaryGoal"`
	TargetWeightKg float64 `json:"targetWeightKg"`
	ActivityLevel  string  `json:"activityLevel"`
}

type Service struct {
	profiles ProfileRepository
	weights  WeightRepository
	today    func() string
}

func NewService(profiles ProfileRepository, weights WeightRepository) *Service {
	return &Service{
		profiles: profiles,
		weights:  weights,
		today: func() string {
			return time.Now().UTC().Format(models.DateLayout)
		},
	}
}

// ProfileByUserID satisfies the ledger store's profile port.
func (service *Service) ProfileByUserID(userID uint) (models.Profile, error) {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.Profile{}, err
	}
	if !found {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

// UpsertProfile creates or replaces the user's profile and records the
// submitted weight as today's history point so profile edits and the
// weight log never drift apart.
func (service *Service) UpsertProfile(userID uint, input ProfileInput) (models.Profile, error) {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.Profile{}, err
	}

	if !found {
		profile = models.Profile{UserID: userID}
	}
	profile.Age = input.Age
	profile.HeightCm = input.HeightCm
	profile.WeightKg = input.WeightKg
	profile.Gender = input.Gender
	profile.PrimaryGoal = input.PrimaryGoal
	profile.TargetWeightKg = input.TargetWeightKg
	profile.ActivityLevel = input.ActivityLevel

	if !found {
		err = service.profiles.Create(&profile)
	} else {
		err = service.profiles.Save(&profile)
	}
	if err != nil {
		return models.Profile{}, err
	}

	if input.WeightKg > 0 {
		if _, err := service.upsertWeight(userID, service.today(), input.WeightKg); err != nil {
			return models.Profile{}, err
		}
	}
	return profile, nil
}

// RecordWeight upserts the weight entry for the given calendar day; a
// second log on the same day overwrites instead of duplicating. When the
// entry is the newest one on record, the profile's current weight follows
// it.
func (service *Service) RecordWeight(userID uint, date string, weightKg float64) (models.WeightEntry, error) {
	if date == "" {
		date = service.today()
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.WeightEntry{}, ErrInvalidDate
	}

	entry, err := service.upsertWeight(userID, date, weightKg)
	if err != nil {
		return models.WeightEntry{}, err
	}

	newest, err := service.newestWeightDate(userID)
	if err != nil {
		return models.WeightEntry{}, err
	}
	if date >= newest {
		if err := service.syncProfileWeight(userID, weightKg); err != nil {
			return models.WeightEntry{}, err
		}
	}
	return entry, nil
}

// WeightHistory returns the user's weight entries, newest first.
func (service *Service) WeightHistory(userID uint) ([]models.WeightEntry, error) {
	return service.weights.ListByUserDesc(userID)
}

func (service *Service) upsertWeight(userID uint, date string, weightKg float64) (models.WeightEntry, error) {
	entry, found, err := service.weights.FindByUserAndDate(userID, date)
	if err != nil {
		return models.WeightEntry{}, err
	}
	if !found {
		entry = models.WeightEntry{UserID: userID, Date: date, WeightKg: weightKg}
		if err := service.weights.Create(&entry); err != nil {
			return models.WeightEntry{}, err
		}
		return entry, nil
	}

	entry.WeightKg = weightKg
	if err := service.weights.Save(&entry); err != nil {
		return models.WeightEntry{}, err
	}
	return entry, nil
}

func (service *Service) newestWeightDate(userID uint) (string, error) {
	entries, err := service.weights.ListByUserDesc(userID)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[0].Date, nil
}

func (service *Service) syncProfileWeight(userID uint, weightKg float64) error {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil || !found {
		return err
	}
	profile.WeightKg = weightKg
	return service.profiles.Save(&profile)
}
