package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RecipeInput carries the fields a caller submits for create and update.
// Update replaces the full ingredient set rather than diffing it.
type RecipeInput struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	Instructions []string          `json:"instructions"`
	Ingredients  []IngredientInput `json:"ingredients"`
}

type IngredientInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Validate enforces the recipe invariant: a title, at least one instruction
// step, and at least one ingredient.
func (in RecipeInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Instructions, validation.Required, validation.Length(1, 0)),
		validation.Field(&in.Ingredients, validation.Required, validation.Length(1, 0)),
	)
	return WrapValidation(err)
}

func (in IngredientInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Type, validation.Required),
		validation.Field(&in.Quantity, validation.Required),
		validation.Field(&in.Unit, validation.Required),
	)
	return WrapValidation(err)
}

// DeviceInput registers a push-notification target for a user.
type DeviceInput struct {
	DeviceName string `json:"device_name"`
	PushToken  string `json:"push_token"`
}

func (in DeviceInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.DeviceName, validation.Required),
		validation.Field(&in.PushToken, validation.Required),
	)
	return WrapValidation(err)
}
