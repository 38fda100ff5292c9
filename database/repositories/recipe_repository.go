package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/platefork/recipe-core/model"
)

// RecipeRepository is the authoritative CRUD surface for recipes and their
// ingredients. Multi-row writes (create, ingredient replace, delete) run in
// a single transaction so ingredient rows never outlive or predate their
// recipe.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe, ingredients []*model.Ingredient) error
	GetByID(ctx context.Context, id string) (*model.Recipe, error)
	GetRow(ctx context.Context, id string) (*model.Recipe, error)
	List(ctx context.Context, offset, limit int) ([]*model.Recipe, int, error)
	SearchByTitle(ctx context.Context, fragment string) (*model.Recipe, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Recipe, error)
	Update(ctx context.Context, recipe *model.Recipe, ingredients []*model.Ingredient) error
	Delete(ctx context.Context, id string) error
}

type recipeRepository struct {
	db  *bun.DB
	log *zap.Logger
}

func NewRecipeRepository(db *bun.DB, log *zap.Logger) RecipeRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &recipeRepository{db: db, log: log}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe, ingredients []*model.Ingredient) error {
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	for _, ing := range ingredients {
		ing.RecipeID = recipe.ID
		ing.CreatedAt = now
		ing.UpdatedAt = now
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(recipe).Exec(ctx); err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&ingredients).Exec(ctx)
		return err
	})
	if err != nil {
		return &model.StoreError{Op: "recipe create", Err: err}
	}

	r.log.Debug("recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.String("user_id", recipe.UserID),
		zap.Int("ingredients", len(ingredients)))
	return nil
}

// GetByID loads the recipe with its ingredients, like rows, and the owning
// user for the public author fields.
func (r *recipeRepository) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	recipe := new(model.Recipe)
	err := r.db.NewSelect().
		Model(recipe).
		Relation("Ingredients").
		Relation("Likes").
		Relation("User").
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, &model.StoreError{Op: "recipe get", Err: err}
	}
	return recipe, nil
}

// GetRow loads the bare recipe row, without relations. Services use it for
// ownership checks before mutating.
func (r *recipeRepository) GetRow(ctx context.Context, id string) (*model.Recipe, error) {
	recipe := new(model.Recipe)
	err := r.db.NewSelect().Model(recipe).Where("r.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, &model.StoreError{Op: "recipe get", Err: err}
	}
	return recipe, nil
}

// List returns one page ordered newest-first plus the total row count.
func (r *recipeRepository) List(ctx context.Context, offset, limit int) ([]*model.Recipe, int, error) {
	var recipes []*model.Recipe
	total, err := r.db.NewSelect().
		Model(&recipes).
		Relation("Likes").
		Relation("User").
		Order("r.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, &model.StoreError{Op: "recipe list", Err: err}
	}
	return recipes, total, nil
}

// SearchByTitle returns the newest recipe whose title contains the fragment,
// case-insensitively. A single best-effort match, not a ranked list.
func (r *recipeRepository) SearchByTitle(ctx context.Context, fragment string) (*model.Recipe, error) {
	pattern := "%" + strings.ToLower(fragment) + "%"
	recipe := new(model.Recipe)
	err := r.db.NewSelect().
		Model(recipe).
		Relation("Ingredients").
		Relation("Likes").
		Relation("User").
		Where("LOWER(r.title) LIKE ?", pattern).
		Order("r.created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, &model.StoreError{Op: "recipe search", Err: err}
	}
	return recipe, nil
}

func (r *recipeRepository) ListByUser(ctx context.Context, userID string) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := r.db.NewSelect().
		Model(&recipes).
		Relation("Likes").
		Relation("User").
		Where("r.user_id = ?", userID).
		Order("r.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &model.StoreError{Op: "recipe list by user", Err: err}
	}
	return recipes, nil
}

// Update replaces the recipe's scalar columns and the full ingredient set
// in one transaction. Replace-not-diff is a deliberate tradeoff at this
// scale.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe, ingredients []*model.Ingredient) error {
	now := time.Now()
	recipe.UpdatedAt = now
	for _, ing := range ingredients {
		ing.RecipeID = recipe.ID
		ing.CreatedAt = now
		ing.UpdatedAt = now
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(recipe).
			Column("title", "description", "image", "instructions", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.ErrRecipeNotFound
		}
		if _, err := tx.NewDelete().
			Model((*model.Ingredient)(nil)).
			Where("recipe_id = ?", recipe.ID).
			Exec(ctx); err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return nil
		}
		_, err = tx.NewInsert().Model(&ingredients).Exec(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return err
		}
		return &model.StoreError{Op: "recipe update", Err: err}
	}
	return nil
}

// Delete removes the recipe and everything hanging off it. Ingredients must
// cascade; likes, saves, and comments go too so no interaction row ever
// points at a missing recipe.
func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range []any{
			(*model.Ingredient)(nil),
			(*model.Like)(nil),
			(*model.Save)(nil),
			(*model.Comment)(nil),
		} {
			if _, err := tx.NewDelete().Model(m).Where("recipe_id = ?", id).Exec(ctx); err != nil {
				return err
			}
		}
		res, err := tx.NewDelete().
			Model((*model.Recipe)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.ErrRecipeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return err
		}
		return &model.StoreError{Op: "recipe delete", Err: err}
	}
	r.log.Debug("recipe deleted", zap.String("recipe_id", id))
	return nil
}
