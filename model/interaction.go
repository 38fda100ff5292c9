package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Like marks a (user, recipe) pair. Presence means liked. The unique group
// backs the conflict-safe toggle: concurrent duplicate inserts collapse into
// a single row at the storage layer instead of racing an existence check.
type Like struct {
	bun.BaseModel `bun:"table:likes,alias:lk"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull,unique:likes_user_recipe" json:"user_id"`
	RecipeID  string    `bun:"recipe_id,notnull,unique:likes_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Save has the same shape and lifecycle as Like, independent of it.
type Save struct {
	bun.BaseModel `bun:"table:saves,alias:sv"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull,unique:saves_user_recipe" json:"user_id"`
	RecipeID  string    `bun:"recipe_id,notnull,unique:saves_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`

	Recipe *Recipe `bun:"rel:belongs-to,join:recipe_id=id" json:"-"`
}

// Comment is editable and deletable only by its owning user.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	RecipeID  string    `bun:"recipe_id,notnull" json:"recipe_id"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// RegisteredDevice stores a push token per (user, device name) pair.
// Notification delivery itself happens out of band.
type RegisteredDevice struct {
	bun.BaseModel `bun:"table:registered_devices,alias:dev"`

	ID         string    `bun:"id,pk" json:"id"`
	UserID     string    `bun:"user_id,notnull,unique:devices_user_name" json:"user_id"`
	DeviceName string    `bun:"device_name,notnull,unique:devices_user_name" json:"device_name"`
	PushToken  string    `bun:"push_token,notnull" json:"push_token"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}
