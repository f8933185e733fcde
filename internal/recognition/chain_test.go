package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/rastokopal/macrolog/internal/ledger"
)

type stubProvider struct {
	name  string
	items []ledger.IngredientInput
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Recognize(ctx context.Context, description string) ([]ledger.IngredientInput, error) {
	s.calls++
	return s.items, s.err
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	first := &stubProvider{name: "first", items: []ledger.IngredientInput{{Name: "oats", Quantity: "60g"}}}
	second := &stubProvider{name: "second", items: []ledger.IngredientInput{{Name: "rice", Quantity: "100g"}}}
	chain := NewChain(first, second)

	items, err := chain.Recognize(context.Background(), "a bowl of oats")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(items) != 1 || items[0].Name != "oats" {
		t.Fatalf("expected first provider result, got %#v", items)
	}
	if second.calls != 0 {
		t.Fatalf("expected second provider untouched, got %d calls", second.calls)
	}
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	failing := &stubProvider{name: "failing", err: errors.New("quota exceeded")}
	empty := &stubProvider{name: "empty"}
	working := &stubProvider{name: "working", items: []ledger.IngredientInput{{Name: "egg", Quantity: "50g"}}}
	chain := NewChain(failing, empty, working)

	items, err := chain.Recognize(context.Background(), "two eggs")
	if err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}
	if len(items) != 1 || items[0].Name != "egg" {
		t.Fatalf("expected working provider result, got %#v", items)
	}
	if failing.calls != 1 || empty.calls != 1 {
		t.Fatalf("expected each earlier provider tried once, got %d and %d", failing.calls, empty.calls)
	}
}

func TestChainJoinsAllFailures(t *testing.T) {
	cause := errors.New("timeout")
	chain := NewChain(
		&stubProvider{name: "a", err: cause},
		&stubProvider{name: "b"},
	)

	_, err := chain.Recognize(context.Background(), "mystery meal")
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected joined error to carry the provider failure, got %v", err)
	}
	if !errors.Is(err, ErrNoIngredients) {
		t.Fatalf("expected joined error to carry the empty result, got %v", err)
	}
}

func TestChainValidatesInput(t *testing.T) {
	chain := NewChain(&stubProvider{name: "a"})
	if _, err := chain.Recognize(context.Background(), ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	empty := NewChain()
	if _, err := empty.Recognize(context.Background(), "toast"); !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}
