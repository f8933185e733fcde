package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Profiles *ProfileRepository
	Weights  *WeightRepository
	Ledgers  *LedgerRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Profiles: NewProfileRepository(database),
		Weights:  NewWeightRepository(database),
		Ledgers:  NewLedgerRepository(database),
	}
}
