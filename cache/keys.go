package cache

import (
	"fmt"
	"strings"
)

// Key formats are a persisted wire contract: they must stay stable across
// restarts for cache hits to remain valid, and two different query shapes
// must never collide on the same key.
const (
	KeyPrefixPage   = "recipes:page:"
	KeyPrefixUser   = "recipe:user:"
	KeyPrefixSearch = "recipe:search:"
)

// RecipeKey addresses the single-recipe snapshot: recipe:{recipeId}.
func RecipeKey(recipeID string) string {
	return "recipe:" + recipeID
}

// PageKey addresses one list page: recipes:page:{page}:{limit}. Page and
// limit are separate segments, so (1, 23) and (12, 3) cannot collide.
func PageKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", KeyPrefixPage, page, limit)
}

// UserRecipesKey addresses the per-owner listing: recipe:user:{userId}.
func UserRecipesKey(userID string) string {
	return KeyPrefixUser + userID
}

// SearchKey addresses a title search result: recipe:search:{fragment}.
// The fragment is normalized so equivalent case-insensitive queries share
// one entry.
func SearchKey(fragment string) string {
	return KeyPrefixSearch + strings.ToLower(strings.TrimSpace(fragment))
}
