package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/model"
)

// InteractionService orchestrates like and save toggles and the comment
// lifecycle. Like toggles invalidate the recipe snapshots that embed
// like-author ids; saves and comments appear only in uncached reads.
type InteractionService struct {
	interactions repositories.InteractionRepository
	recipes      repositories.RecipeRepository
	cache        *cache.Coordinator
	log          *zap.Logger
}

func NewInteractionService(
	interactions repositories.InteractionRepository,
	recipes repositories.RecipeRepository,
	coord *cache.Coordinator,
	log *zap.Logger,
) *InteractionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InteractionService{interactions: interactions, recipes: recipes, cache: coord, log: log}
}

// ToggleLike flips the (user, recipe) like pair and reports the resulting
// state. Safe under concurrent duplicate calls: the storage-level unique
// index decides, not an existence check.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, recipeID string) (bool, error) {
	if err := requirePair(userID, recipeID); err != nil {
		return false, err
	}
	recipe, err := s.recipes.GetRow(ctx, recipeID)
	if err != nil {
		return false, err
	}
	liked, err := s.interactions.ToggleLike(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	// Single-recipe and listing snapshots carry liked_by.
	s.cache.Invalidate(ctx, cache.RecipeKey(recipeID), cache.UserRecipesKey(recipe.UserID))
	s.cache.InvalidatePrefix(ctx, cache.KeyPrefixPage)
	s.cache.InvalidatePrefix(ctx, cache.KeyPrefixSearch)
	return liked, nil
}

// LikeCount needs no auth and no cache.
func (s *InteractionService) LikeCount(ctx context.Context, recipeID string) (int, error) {
	if recipeID == "" {
		return 0, model.NewValidationError("recipe_id")
	}
	return s.interactions.LikeCount(ctx, recipeID)
}

// ToggleSave flips the (user, recipe) save pair, same contract as
// ToggleLike. Saves are not embedded in any cached snapshot.
func (s *InteractionService) ToggleSave(ctx context.Context, userID, recipeID string) (bool, error) {
	if err := requirePair(userID, recipeID); err != nil {
		return false, err
	}
	if _, err := s.recipes.GetRow(ctx, recipeID); err != nil {
		return false, err
	}
	return s.interactions.ToggleSave(ctx, userID, recipeID)
}

// ListSaved returns the user's saved recipes, most recently saved first.
func (s *InteractionService) ListSaved(ctx context.Context, userID string) ([]*model.SavedRecipe, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id")
	}
	saves, err := s.interactions.ListSaved(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.SavedRecipe, 0, len(saves))
	for _, sv := range saves {
		if sv.Recipe == nil {
			continue
		}
		item := &model.SavedRecipe{
			RecipeID: sv.RecipeID,
			Title:    sv.Recipe.Title,
			Image:    sv.Recipe.Image,
			SavedAt:  sv.CreatedAt,
		}
		if sv.Recipe.User != nil {
			item.Author = sv.Recipe.User.Public()
		}
		out = append(out, item)
	}
	return out, nil
}

// AddComment validates the content, checks the recipe exists, and inserts.
func (s *InteractionService) AddComment(ctx context.Context, userID, recipeID, content string) (*model.Comment, error) {
	if err := requirePair(userID, recipeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, model.NewValidationError("content")
	}
	if _, err := s.recipes.GetRow(ctx, recipeID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		ID:       uuid.NewString(),
		UserID:   userID,
		RecipeID: recipeID,
		Content:  content,
	}
	if err := s.interactions.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits a comment's content. Owner only.
func (s *InteractionService) UpdateComment(ctx context.Context, commentID, userID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.NewValidationError("content")
	}
	comment, err := s.interactions.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, model.ErrForbidden
	}
	comment.Content = content
	if err := s.interactions.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment hard-deletes a comment. Owner only.
func (s *InteractionService) DeleteComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.interactions.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.ErrForbidden
	}
	return s.interactions.DeleteComment(ctx, commentID)
}

// ListComments returns a recipe's comments newest-first with each author's
// public name and avatar.
func (s *InteractionService) ListComments(ctx context.Context, recipeID string) ([]*model.CommentView, error) {
	if recipeID == "" {
		return nil, model.NewValidationError("recipe_id")
	}
	comments, err := s.interactions.ListComments(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.CommentView, 0, len(comments))
	for _, cm := range comments {
		view := &model.CommentView{
			ID:        cm.ID,
			RecipeID:  cm.RecipeID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		}
		if cm.User != nil {
			view.Author.Name = cm.User.Name
			view.Author.Avatar = cm.User.Avatar
		}
		out = append(out, view)
	}
	return out, nil
}

func requirePair(userID, recipeID string) error {
	var bad []string
	if userID == "" {
		bad = append(bad, "user_id")
	}
	if recipeID == "" {
		bad = append(bad, "recipe_id")
	}
	if len(bad) > 0 {
		return model.NewValidationError(bad...)
	}
	return nil
}
