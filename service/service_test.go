package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/model"
	"github.com/platefork/recipe-core/pkg/testsupport"
)

// spyStore is an in-memory cache.Store that counts calls so tests can tell
// hits from loader reads.
type spyStore struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newSpyStore() *spyStore {
	return &spyStore{data: map[string][]byte{}}
}

func (s *spyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	s.hits++
	return data, nil
}

func (s *spyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.data[key] = value
	return nil
}

func (s *spyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *spyStore) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	return nil
}

func (s *spyStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

func (s *spyStore) hitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// harness wires the services over an in-memory database and a spy store.
type harness struct {
	db           *bun.DB
	store        *spyStore
	coord        *cache.Coordinator
	recipes      *RecipeService
	interactions *InteractionService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testsupport.NewDB(t)
	store := newSpyStore()
	coord, err := cache.New(store, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("failed to create coordinator: %v", err)
	}

	recipeRepo := repositories.NewRecipeRepository(db, nil)
	interactionRepo := repositories.NewInteractionRepository(db, nil)

	return &harness{
		db:           db,
		store:        store,
		coord:        coord,
		recipes:      NewRecipeService(recipeRepo, coord, nil),
		interactions: NewInteractionService(interactionRepo, recipeRepo, coord, nil),
	}
}

func pastaInput() model.RecipeInput {
	return model.RecipeInput{
		Title:        "Weeknight Pasta",
		Description:  "Fast and forgiving.",
		Instructions: []string{"Boil pasta", "Toss with sauce"},
		Ingredients: []model.IngredientInput{
			{Name: "spaghetti", Type: "pasta", Quantity: "200", Unit: "g"},
			{Name: "tomato sauce", Type: "sauce", Quantity: "1", Unit: "cup"},
		},
	}
}
