package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/platefork/recipe-core/model"
)

// InteractionRepository covers likes, saves, and comments. The toggles lean
// on the unique (user_id, recipe_id) indexes: the insert attempt itself
// decides the direction, so concurrent duplicate requests cannot double-count.
type InteractionRepository interface {
	ToggleLike(ctx context.Context, userID, recipeID string) (bool, error)
	LikeCount(ctx context.Context, recipeID string) (int, error)
	ToggleSave(ctx context.Context, userID, recipeID string) (bool, error)
	ListSaved(ctx context.Context, userID string) ([]*model.Save, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id string) error
	ListComments(ctx context.Context, recipeID string) ([]*model.Comment, error)
}

type interactionRepository struct {
	db  *bun.DB
	log *zap.Logger
}

func NewInteractionRepository(db *bun.DB, log *zap.Logger) InteractionRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &interactionRepository{db: db, log: log}
}

// ToggleLike inserts with ON CONFLICT DO NOTHING. A row landing means the
// pair was absent (now liked); zero rows affected means it already existed,
// so the pair is removed instead (now unliked).
func (r *interactionRepository) ToggleLike(ctx context.Context, userID, recipeID string) (bool, error) {
	like := &model.Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	res, err := r.db.NewInsert().
		Model(like).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, &model.StoreError{Op: "like toggle", Err: err}
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}
	_, err = r.db.NewDelete().
		Model((*model.Like)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exec(ctx)
	if err != nil {
		return false, &model.StoreError{Op: "like toggle", Err: err}
	}
	return false, nil
}

func (r *interactionRepository) LikeCount(ctx context.Context, recipeID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.Like)(nil)).
		Where("recipe_id = ?", recipeID).
		Count(ctx)
	if err != nil {
		return 0, &model.StoreError{Op: "like count", Err: err}
	}
	return count, nil
}

func (r *interactionRepository) ToggleSave(ctx context.Context, userID, recipeID string) (bool, error) {
	save := &model.Save{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	res, err := r.db.NewInsert().
		Model(save).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, &model.StoreError{Op: "save toggle", Err: err}
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}
	_, err = r.db.NewDelete().
		Model((*model.Save)(nil)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Exec(ctx)
	if err != nil {
		return false, &model.StoreError{Op: "save toggle", Err: err}
	}
	return false, nil
}

// ListSaved returns the user's saves newest-first, each resolved to its
// recipe and the recipe's owning user.
func (r *interactionRepository) ListSaved(ctx context.Context, userID string) ([]*model.Save, error) {
	var saves []*model.Save
	err := r.db.NewSelect().
		Model(&saves).
		Relation("Recipe").
		Relation("Recipe.User").
		Where("sv.user_id = ?", userID).
		Order("sv.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &model.StoreError{Op: "saved list", Err: err}
	}
	return saves, nil
}

func (r *interactionRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(comment).Exec(ctx); err != nil {
		return &model.StoreError{Op: "comment create", Err: err}
	}
	return nil
}

func (r *interactionRepository) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	comment := new(model.Comment)
	err := r.db.NewSelect().Model(comment).Where("cm.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, &model.StoreError{Op: "comment get", Err: err}
	}
	return comment, nil
}

func (r *interactionRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	comment.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(comment).
		Column("content", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return &model.StoreError{Op: "comment update", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *interactionRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*model.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return &model.StoreError{Op: "comment delete", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *interactionRepository) ListComments(ctx context.Context, recipeID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.NewSelect().
		Model(&comments).
		Relation("User").
		Where("cm.recipe_id = ?", recipeID).
		Order("cm.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, &model.StoreError{Op: "comment list", Err: err}
	}
	return comments, nil
}
