package model

import "time"

// RecipeSummary is what create and update hand back to the caller.
type RecipeSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RecipeView is the cached single-recipe snapshot: the recipe, its
// ingredients, the ids of users who liked it, and the owner's public profile.
type RecipeView struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Image        string        `json:"image,omitempty"`
	Instructions []string      `json:"instructions"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Author       PublicUser    `json:"author"`
	Ingredients  []*Ingredient `json:"ingredients"`
	LikedBy      []string      `json:"liked_by"`
}

// RecipeItem is the compact shape used in paginated and per-user listings.
type RecipeItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Author      PublicUser `json:"author"`
	LikedBy     []string   `json:"liked_by"`
}

// RecipePage is the cached snapshot of one list page.
type RecipePage struct {
	Items       []*RecipeItem `json:"items"`
	Total       int           `json:"total"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	HasNextPage bool          `json:"has_next_page"`
}

// SavedRecipe resolves a save to its recipe, newest save first.
type SavedRecipe struct {
	RecipeID string     `json:"recipe_id"`
	Title    string     `json:"title"`
	Image    string     `json:"image,omitempty"`
	Author   PublicUser `json:"author"`
	SavedAt  time.Time  `json:"saved_at"`
}

// CommentView resolves a comment to its author's public name and avatar.
type CommentView struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar,omitempty"`
	} `json:"author"`
}

// ViewOfRecipe flattens a recipe loaded with its relations into the snapshot
// shape. The owning user's credential hash never crosses this boundary.
func ViewOfRecipe(r *Recipe) *RecipeView {
	v := &RecipeView{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Instructions: r.Instructions,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Ingredients:  r.Ingredients,
		LikedBy:      likedBy(r.Likes),
	}
	if v.Ingredients == nil {
		v.Ingredients = []*Ingredient{}
	}
	if r.User != nil {
		v.Author = r.User.Public()
	}
	return v
}

// ItemOfRecipe flattens a recipe into the listing shape.
func ItemOfRecipe(r *Recipe) *RecipeItem {
	it := &RecipeItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		LikedBy:     likedBy(r.Likes),
	}
	if r.User != nil {
		it.Author = r.User.Public()
	}
	return it
}

func likedBy(likes []*Like) []string {
	ids := make([]string, 0, len(likes))
	for _, lk := range likes {
		ids = append(ids, lk.UserID)
	}
	return ids
}
