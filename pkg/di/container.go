// Package di wires the application graph: cache store, coordinator,
// database handle, repositories, and services. It manages singleton
// instances so every consumer sees the same coordinator and key registry.
package di

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/config"
	"github.com/platefork/recipe-core/database"
	"github.com/platefork/recipe-core/database/repositories"
	"github.com/platefork/recipe-core/internal/cacheinfra"
	"github.com/platefork/recipe-core/service"
)

// Container holds singleton instances of every component.
type Container struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *bun.DB
	store cache.Store
	coord *cache.Coordinator

	recipes      *service.RecipeService
	interactions *service.InteractionService
	devices      *service.DeviceService
}

// NewContainer builds the full graph from configuration. The cache backend
// is chosen by cfg.Cache.Backend; the database handle is postgres.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return newContainer(cfg, log, db)
}

// NewContainerWithDB builds the graph around an existing database handle.
// Tests use this with an in-memory sqlite handle.
func NewContainerWithDB(cfg *config.Config, log *zap.Logger, db *bun.DB) (*Container, error) {
	return newContainer(cfg, log, db)
}

func newContainer(cfg *config.Config, log *zap.Logger, db *bun.DB) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	coord, err := cache.New(store, cfg.Cache.Policy(), log.Named("cache"))
	if err != nil {
		return nil, err
	}

	recipeRepo := repositories.NewRecipeRepository(db, log.Named("recipes"))
	interactionRepo := repositories.NewInteractionRepository(db, log.Named("interactions"))
	deviceRepo := repositories.NewDeviceRepository(db)

	return &Container{
		cfg:          cfg,
		log:          log,
		db:           db,
		store:        store,
		coord:        coord,
		recipes:      service.NewRecipeService(recipeRepo, coord, log.Named("recipes")),
		interactions: service.NewInteractionService(interactionRepo, recipeRepo, coord, log.Named("interactions")),
		devices:      service.NewDeviceService(deviceRepo),
	}, nil
}

func newStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cacheinfra.NewRedisStore(cacheinfra.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case config.BackendMemory:
		return cacheinfra.NewSturdycStore(cacheinfra.DefaultSturdycConfig())
	default:
		return nil, fmt.Errorf("di: unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Recipes returns the singleton recipe service.
func (c *Container) Recipes() *service.RecipeService {
	return c.recipes
}

// Interactions returns the singleton interaction service.
func (c *Container) Interactions() *service.InteractionService {
	return c.interactions
}

// Devices returns the singleton device service.
func (c *Container) Devices() *service.DeviceService {
	return c.devices
}

// Coordinator exposes the cache coordinator for advanced use, such as the
// admin flush.
func (c *Container) Coordinator() *cache.Coordinator {
	return c.coord
}

// NewAdmin constructs the admin surface with the caller's auth collaborators.
func (c *Container) NewAdmin(auth service.Authenticator, authz service.Authorizer) *service.Admin {
	return service.NewAdmin(auth, authz, c.coord, c.log.Named("admin"))
}

// DB exposes the underlying handle for schema management.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Close releases the database handle and, when the store holds connections,
// the store too.
func (c *Container) Close() error {
	var firstErr error
	if closer, ok := c.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
