// Package recognition turns free-text meal descriptions into ingredient
// inputs for the ledger. Providers are interchangeable AI vendors; the
// Chain tries them in order and the first success wins.
package recognition

import (
	"context"

	"github.com/rastokopal/macrolog/internal/ledger"
)

type Provider interface {
	Name() string
	Recognize(ctx context.Context, description string) ([]ledger.IngredientInput, error)
}
