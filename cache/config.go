package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the TTL policy and the store-call budget. The TTLs balance
// staleness against load: a freshly created snapshot was just validated, so
// it may live much longer than one that has been sitting in the store.
type Config struct {
	// RecipeTTL bounds the single-recipe snapshot.
	RecipeTTL time.Duration

	// ListTTL bounds one paginated list page.
	ListTTL time.Duration

	// QueryTTL bounds search and by-user results.
	QueryTTL time.Duration

	// PrimeTTL is used when a snapshot is written at creation time.
	PrimeTTL time.Duration

	// StoreTimeout caps every individual store call. It must stay well below
	// the overall request timeout so a slow cache degrades to store reads
	// instead of stalling the request.
	StoreTimeout time.Duration
}

// DefaultConfig returns the policy the service ships with.
func DefaultConfig() Config {
	return Config{
		RecipeTTL:    100 * time.Second,
		ListTTL:      300 * time.Second,
		QueryTTL:     300 * time.Second,
		PrimeTTL:     3600 * time.Second,
		StoreTimeout: 250 * time.Millisecond,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RecipeTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.ListTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.QueryTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.PrimeTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.StoreTimeout, validation.Required, validation.Min(time.Millisecond)),
	)
}
