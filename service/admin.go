package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/model"
)

// Authenticator is the external auth collaborator: it resolves a bearer
// credential to a user identifier. The core trusts that identifier verbatim
// for ownership checks.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (string, error)
}

// Authorizer decides whether a user may run administrative operations.
type Authorizer interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Admin holds the operations that act on the whole cache store. The full
// flush used to be an open endpoint; it now demands an authenticated admin.
type Admin struct {
	auth  Authenticator
	authz Authorizer
	cache *cache.Coordinator
	log   *zap.Logger
}

func NewAdmin(auth Authenticator, authz Authorizer, coord *cache.Coordinator, log *zap.Logger) *Admin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Admin{auth: auth, authz: authz, cache: coord, log: log}
}

// FlushCache drops every cache entry unconditionally. The next read of each
// key repopulates from the relational store.
func (a *Admin) FlushCache(ctx context.Context, credential string) error {
	userID, err := a.auth.Authenticate(ctx, credential)
	if err != nil {
		return fmt.Errorf("flush cache: %w", model.ErrUnauthenticated)
	}
	ok, err := a.authz.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("flush cache: %w", model.ErrForbidden)
	}
	if err := a.cache.Flush(ctx); err != nil {
		return err
	}
	a.log.Info("cache flushed", zap.String("user_id", userID))
	return nil
}
