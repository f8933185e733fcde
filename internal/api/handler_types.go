package api

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/rastokopal/macrolog/internal/coordinator"
	"github.com/rastokopal/macrolog/internal/db"
	"github.com/rastokopal/macrolog/internal/ledger"
	"github.com/rastokopal/macrolog/internal/profile"
	"github.com/rastokopal/macrolog/internal/services"
)

// Recognizer is the optional AI ingredient backend. A nil recognizer keeps
// the rest of the API fully functional.
type Recognizer interface {
	Recognize(ctx context.Context, description string) ([]ledger.IngredientInput, error)
}

type Handler struct {
	db         *gorm.DB
	secretKey  []byte
	cacheTTL   time.Duration
	recognizer Recognizer

	repositories   *db.Repositories
	coordinator    *coordinator.Coordinator
	authService    *services.AuthService
	profileService *profile.Service
	store          *ledger.Store
	rollup         *ledger.Rollup
}

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
