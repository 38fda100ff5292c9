package service

import (
	"context"
	"errors"
	"testing"

	"github.com/platefork/recipe-core/model"
	"github.com/platefork/recipe-core/pkg/testsupport"
)

func TestInteractionService_ToggleLike_UpdatesSnapshot(t *testing.T) {
	h := newHarness(t)
	user := testsupport.SeedUser(t, h.db, "avery")
	ctx := context.Background()

	summary, err := h.recipes.Create(ctx, user.ID, pastaInput())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	liked, err := h.interactions.ToggleLike(ctx, user.ID, summary.ID)
	if err != nil {
		t.Fatalf("failed to toggle like: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}

	// The primed snapshot predates the like; the read after the toggle must
	// reflect it.
	view, err := h.recipes.GetByID(ctx, summary.ID)
	if err != nil {
		t.Fatalf("failed to get recipe: %v", err)
	}
	if len(view.LikedBy) != 1 || view.LikedBy[0] != user.ID {
		t.Errorf("expected liked_by to carry the liker, got %v", view.LikedBy)
	}

	liked, err = h.interactions.ToggleLike(ctx, user.ID, summary.ID)
	if err != nil {
		t.Fatalf("failed to toggle like: %v", err)
	}
	if liked {
		t.Error("expected second toggle to unlike")
	}
	view, err = h.recipes.GetByID(ctx, summary.ID)
	if err != nil {
		t.Fatalf("failed to get recipe: %v", err)
	}
	if len(view.LikedBy) != 0 {
		t.Errorf("expected liked_by to empty after unlike, got %v", view.LikedBy)
	}
}

func TestInteractionService_ToggleLike_MissingRecipe(t *testing.T) {
	h := newHarness(t)
	user := testsupport.SeedUser(t, h.db, "avery")

	if _, err := h.interactions.ToggleLike(context.Background(), user.ID, "absent"); !errors.Is(err, model.ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound but got: %v", err)
	}
}

func TestInteractionService_ToggleLike_RequiresIdentifiers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.interactions.ToggleLike(ctx, "", "r1"); !model.IsValidation(err) {
		t.Errorf("expected validation error but got: %v", err)
	}
	if _, err := h.interactions.ToggleLike(ctx, "u1", ""); !model.IsValidation(err) {
		t.Errorf("expected validation error but got: %v", err)
	}
}

func TestInteractionService_LikeCount(t *testing.T) {
	h := newHarness(t)
	user := testsupport.SeedUser(t, h.db, "avery")
	recipe := testsupport.SeedRecipe(t, h.db, user.ID, "Pasta")
	ctx := context.Background()

	if _, err := h.interactions.ToggleLike(ctx, user.ID, recipe.ID); err != nil {
		t.Fatalf("failed to like: %v", err)
	}
	count, err := h.interactions.LikeCount(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 like but got %d", count)
	}
}

func TestInteractionService_SaveAndListSaved(t *testing.T) {
	h := newHarness(t)
	avery := testsupport.SeedUser(t, h.db, "avery")
	blake := testsupport.SeedUser(t, h.db, "blake")
	recipe := testsupport.SeedRecipe(t, h.db, blake.ID, "Soup")
	ctx := context.Background()

	saved, err := h.interactions.ToggleSave(ctx, avery.ID, recipe.ID)
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if !saved {
		t.Error("expected first toggle to save")
	}

	list, err := h.interactions.ListSaved(ctx, avery.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 saved recipe but got %d", len(list))
	}
	if list[0].Title != "Soup" || list[0].Author.Name != "blake" {
		t.Errorf("unexpected saved entry: %+v", list[0])
	}

	if _, err := h.interactions.ToggleSave(ctx, avery.ID, recipe.ID); err != nil {
		t.Fatalf("failed to unsave: %v", err)
	}
	list, err = h.interactions.ListSaved(ctx, avery.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty saved list but got %d entries", len(list))
	}
}

func TestInteractionService_CommentLifecycleWithOwnership(t *testing.T) {
	h := newHarness(t)
	avery := testsupport.SeedUser(t, h.db, "avery")
	blake := testsupport.SeedUser(t, h.db, "blake")
	recipe := testsupport.SeedRecipe(t, h.db, avery.ID, "Pasta")
	ctx := context.Background()

	comment, err := h.interactions.AddComment(ctx, avery.ID, recipe.ID, "needs more garlic")
	if err != nil {
		t.Fatalf("failed to add comment: %v", err)
	}

	// Only the author may edit or delete.
	if _, err := h.interactions.UpdateComment(ctx, comment.ID, blake.ID, "hijacked"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("expected ErrForbidden on foreign update but got: %v", err)
	}
	if err := h.interactions.DeleteComment(ctx, comment.ID, blake.ID); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("expected ErrForbidden on foreign delete but got: %v", err)
	}

	updated, err := h.interactions.UpdateComment(ctx, comment.ID, avery.ID, "perfect as is")
	if err != nil {
		t.Fatalf("failed to update comment: %v", err)
	}
	if updated.Content != "perfect as is" {
		t.Errorf("unexpected content: %q", updated.Content)
	}

	views, err := h.interactions.ListComments(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("failed to list comments: %v", err)
	}
	if len(views) != 1 || views[0].Author.Name != "avery" {
		t.Errorf("unexpected comment views: %+v", views)
	}

	if err := h.interactions.DeleteComment(ctx, comment.ID, avery.ID); err != nil {
		t.Fatalf("failed to delete comment: %v", err)
	}
	views, err = h.interactions.ListComments(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("failed to list comments: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected no comments but got %d", len(views))
	}
}

func TestInteractionService_AddComment_Validation(t *testing.T) {
	h := newHarness(t)
	user := testsupport.SeedUser(t, h.db, "avery")
	recipe := testsupport.SeedRecipe(t, h.db, user.ID, "Pasta")
	ctx := context.Background()

	if _, err := h.interactions.AddComment(ctx, user.ID, recipe.ID, "   "); !model.IsValidation(err) {
		t.Errorf("expected validation error for blank content but got: %v", err)
	}
	if _, err := h.interactions.AddComment(ctx, user.ID, "absent", "hello"); !errors.Is(err, model.ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound but got: %v", err)
	}
}
