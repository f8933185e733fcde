package api

import (
	"github.com/rastokopal/macrolog/internal/coordinator"
	"github.com/rastokopal/macrolog/internal/db"
	"github.com/rastokopal/macrolog/internal/ledger"
	"github.com/rastokopal/macrolog/internal/profile"
	"github.com/rastokopal/macrolog/internal/services"
)

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.coordinator == nil {
		handler.coordinator = coordinator.New()
	}
	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.profileService == nil {
		handler.profileService = profile.NewService(handler.repositories.Profiles, handler.repositories.Weights)
	}
	if handler.store == nil {
		handler.store = ledger.NewStore(handler.repositories.Ledgers, handler.profileService, handler.coordinator, handler.cacheTTL)
	}
	if handler.rollup == nil {
		handler.rollup = ledger.NewRollup(handler.store, handler.coordinator, handler.cacheTTL)
	}
}
