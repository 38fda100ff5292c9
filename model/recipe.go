package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// StringList stores an ordered sequence of strings as a JSON text column so
// the same model works on both the postgres and sqlite dialects.
type StringList []string

var _ driver.Valuer = (StringList)(nil)

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("string list: unsupported source type %T", src)
	}
}

// Recipe is the authoritative recipe row. Ingredients are created and
// deleted in the same transaction scope as the recipe itself.
type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:r"`

	ID           string     `bun:"id,pk" json:"id"`
	UserID       string     `bun:"user_id,notnull" json:"user_id"`
	Title        string     `bun:"title,notnull" json:"title"`
	Description  string     `bun:"description" json:"description,omitempty"`
	Image        string     `bun:"image" json:"image,omitempty"`
	Instructions StringList `bun:"instructions,notnull" json:"instructions"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull" json:"updated_at"`

	Ingredients []*Ingredient `bun:"rel:has-many,join:id=recipe_id" json:"ingredients,omitempty"`
	Likes       []*Like       `bun:"rel:has-many,join:id=recipe_id" json:"likes,omitempty"`
	User        *User         `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// Ingredient belongs to exactly one recipe and never outlives it.
type Ingredient struct {
	bun.BaseModel `bun:"table:ingredients,alias:ing"`

	ID        string    `bun:"id,pk" json:"id"`
	RecipeID  string    `bun:"recipe_id,notnull" json:"recipe_id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Type      string    `bun:"type,notnull" json:"type"`
	Quantity  string    `bun:"quantity,notnull" json:"quantity"`
	Unit      string    `bun:"unit,notnull" json:"unit"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
