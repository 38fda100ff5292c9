package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/platefork/recipe-core/database"
	"github.com/platefork/recipe-core/model"
)

// NewDB opens an in-memory sqlite database with the full schema applied.
// The handle is closed when the test finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// SeedUser inserts a user row and returns it.
func SeedUser(t *testing.T, db *bun.DB, name string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     name + "@example.com",
		Name:      name,
		Password:  "hashed",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.NewInsert().Model(user).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}

	return user
}

// SeedRecipe inserts a recipe row owned by userID and returns it. The row
// carries no ingredients; tests that need them insert through the repository.
func SeedRecipe(t *testing.T, db *bun.DB, userID, title string) *model.Recipe {
	t.Helper()

	now := time.Now()
	recipe := &model.Recipe{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Instructions: model.StringList{"combine and serve"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.NewInsert().Model(recipe).Exec(context.Background()); err != nil {
		t.Fatalf("failed to seed recipe %s: %v", title, err)
	}

	return recipe
}
