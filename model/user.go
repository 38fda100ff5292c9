package model

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the account row. The password column holds the credential hash
// produced by the external auth collaborator; it must never be exposed
// through any view type.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID               string    `bun:"id,pk" json:"id"`
	Name             string    `bun:"name,notnull" json:"name"`
	Email            string    `bun:"email,notnull,unique" json:"email"`
	Password         string    `bun:"password,notnull" json:"-"`
	Avatar           string    `bun:"avatar" json:"avatar,omitempty"`
	IsVerified       bool      `bun:"is_verified" json:"is_verified"`
	VerificationCode string    `bun:"verification_code" json:"-"`
	CreatedAt        time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// PublicUser is the profile shape embedded in recipe and comment views.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Public strips the credential hash and verification state.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}
