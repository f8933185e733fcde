package recognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/rastokopal/macrolog/internal/ledger"
)

var (
	ErrNoProviders   = errors.New("recognition: no providers configured")
	ErrEmptyInput    = errors.New("recognition: empty description")
	ErrNoIngredients = errors.New("recognition: no ingredients recognized")
)

// Chain queries providers in order and returns the first non-empty result.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Recognize(ctx context.Context, description string) ([]ledger.IngredientInput, error) {
	if description == "" {
		return nil, ErrEmptyInput
	}
	if len(c.providers) == 0 {
		return nil, ErrNoProviders
	}

	var failures []error
	for _, p := range c.providers {
		items, err := p.Recognize(ctx, description)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if len(items) == 0 {
			failures = append(failures, fmt.Errorf("%s: %w", p.Name(), ErrNoIngredients))
			continue
		}
		return items, nil
	}
	return nil, errors.Join(failures...)
}
