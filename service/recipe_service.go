package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/model"
)

// RecipeService orchestrates recipe CRUD. Reads go through the cache-aside
// coordinator; every mutation enumerates and invalidates each cache key
// whose snapshot could include the mutated recipe.
type RecipeService struct {
	recipes repositories.RecipeRepository
	cache   *cache.Coordinator
	log     *zap.Logger
}

func NewRecipeService(recipes repositories.RecipeRepository, coord *cache.Coordinator, log *zap.Logger) *RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{recipes: recipes, cache: coord, log: log}
}

// Create validates the input, writes the recipe and its ingredients as one
// transaction, primes the single-recipe key with the fresh snapshot, and
// returns the new recipe's identifier and title.
func (s *RecipeService) Create(ctx context.Context, userID string, in model.RecipeInput) (*model.RecipeSummary, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	for _, ing := range in.Ingredients {
		if err := ing.Validate(); err != nil {
			return nil, err
		}
	}

	recipe := &model.Recipe{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		Image:        in.Image,
		Instructions: model.StringList(in.Instructions),
	}
	ingredients := buildIngredients(recipe.ID, in.Ingredients)

	if err := s.recipes.Create(ctx, recipe, ingredients); err != nil {
		return nil, err
	}

	// The snapshot was validated moments ago, so it gets the long TTL.
	if loaded, err := s.recipes.GetByID(ctx, recipe.ID); err == nil {
		s.cache.Prime(ctx, cache.RecipeKey(recipe.ID), model.ViewOfRecipe(loaded), s.cache.Policy().PrimeTTL)
	} else {
		s.log.Warn("skipping cache prime after create", zap.String("recipe_id", recipe.ID), zap.Error(err))
	}
	s.invalidateListings(ctx, userID)

	return &model.RecipeSummary{ID: recipe.ID, Title: recipe.Title}, nil
}

// GetByID serves the single-recipe snapshot read-through.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*model.RecipeView, error) {
	if id == "" {
		return nil, model.NewValidationError("id")
	}
	return cache.ReadThrough(ctx, s.cache, cache.RecipeKey(id), s.cache.Policy().RecipeTTL,
		func(ctx context.Context) (*model.RecipeView, error) {
			recipe, err := s.recipes.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return model.ViewOfRecipe(recipe), nil
		})
}

// List serves one page keyed by (page, pageSize). Non-positive paging values
// are rejected rather than clamped.
func (s *RecipeService) List(ctx context.Context, page, pageSize int) (*model.RecipePage, error) {
	var bad []string
	if page < 1 {
		bad = append(bad, "page")
	}
	if pageSize < 1 {
		bad = append(bad, "page_size")
	}
	if len(bad) > 0 {
		return nil, model.NewValidationError(bad...)
	}

	offset := (page - 1) * pageSize
	return cache.ReadThrough(ctx, s.cache, cache.PageKey(page, pageSize), s.cache.Policy().ListTTL,
		func(ctx context.Context) (*model.RecipePage, error) {
			recipes, total, err := s.recipes.List(ctx, offset, pageSize)
			if err != nil {
				return nil, err
			}
			items := make([]*model.RecipeItem, 0, len(recipes))
			for _, r := range recipes {
				items = append(items, model.ItemOfRecipe(r))
			}
			return &model.RecipePage{
				Items:       items,
				Total:       total,
				Page:        page,
				PageSize:    pageSize,
				HasNextPage: offset+len(items) < total,
			}, nil
		})
}

// SearchByName returns a single best-effort match for a case-insensitive
// title substring. This is the one path that caches misses: repeated
// searches for absent titles would otherwise hammer the store.
func (s *RecipeService) SearchByName(ctx context.Context, fragment string) (*model.RecipeView, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, model.NewValidationError("name")
	}
	view, err := cache.ReadThrough(ctx, s.cache, cache.SearchKey(fragment), s.cache.Policy().QueryTTL,
		func(ctx context.Context) (*model.RecipeView, error) {
			recipe, err := s.recipes.SearchByTitle(ctx, fragment)
			if errors.Is(err, model.ErrRecipeNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return model.ViewOfRecipe(recipe), nil
		}, cache.CacheEmpty())
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, model.ErrRecipeNotFound
	}
	return view, nil
}

// ListByUser returns every recipe owned by userID, cached per owner.
func (s *RecipeService) ListByUser(ctx context.Context, userID string) ([]*model.RecipeItem, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id")
	}
	return cache.ReadThrough(ctx, s.cache, cache.UserRecipesKey(userID), s.cache.Policy().QueryTTL,
		func(ctx context.Context) ([]*model.RecipeItem, error) {
			recipes, err := s.recipes.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			items := make([]*model.RecipeItem, 0, len(recipes))
			for _, r := range recipes {
				items = append(items, model.ItemOfRecipe(r))
			}
			return items, nil
		})
}

// Update replaces the recipe's scalar fields and its full ingredient set.
// Only the owner may update; the check happens before any write.
func (s *RecipeService) Update(ctx context.Context, id, userID string, in model.RecipeInput) (*model.RecipeSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	for _, ing := range in.Ingredients {
		if err := ing.Validate(); err != nil {
			return nil, err
		}
	}

	recipe, err := s.recipes.GetRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, model.ErrForbidden
	}

	recipe.Title = in.Title
	recipe.Description = in.Description
	recipe.Image = in.Image
	recipe.Instructions = model.StringList(in.Instructions)

	if err := s.recipes.Update(ctx, recipe, buildIngredients(id, in.Ingredients)); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.RecipeKey(id))
	s.invalidateListings(ctx, recipe.UserID)

	return &model.RecipeSummary{ID: recipe.ID, Title: recipe.Title}, nil
}

// Delete removes the recipe after an ownership check and invalidates its
// cache keys before returning, so no follow-up read can serve the stale
// snapshot.
func (s *RecipeService) Delete(ctx context.Context, id, userID string) error {
	recipe, err := s.recipes.GetRow(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return model.ErrForbidden
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.RecipeKey(id))
	s.invalidateListings(ctx, recipe.UserID)
	return nil
}

// invalidateListings drops every listing snapshot that could include the
// owner's recipes: all list pages, the owner key, and all search results.
func (s *RecipeService) invalidateListings(ctx context.Context, ownerID string) {
	s.cache.Invalidate(ctx, cache.UserRecipesKey(ownerID))
	s.cache.InvalidatePrefix(ctx, cache.KeyPrefixPage)
	s.cache.InvalidatePrefix(ctx, cache.KeyPrefixSearch)
}

func buildIngredients(recipeID string, in []model.IngredientInput) []*model.Ingredient {
	ingredients := make([]*model.Ingredient, 0, len(in))
	for _, ing := range in {
		ingredients = append(ingredients, &model.Ingredient{
			ID:       uuid.NewString(),
			RecipeID: recipeID,
			Name:     ing.Name,
			Type:     ing.Type,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return ingredients
}
