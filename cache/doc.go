// Package cache implements the cache-aside coordinator that sits between
// the recipe services and the key-value store.
//
// The coordinator owns three things:
//
//   - the key-naming contract (recipe:{id}, recipes:page:{page}:{limit},
//     recipe:user:{userId}, recipe:search:{fragment}), which is persisted
//     state: keys must remain stable across restarts or every restart turns
//     into a cold start,
//   - the TTL policy, configured per key class in Config,
//   - invalidation, both by exact key and by tracked-key prefix.
//
// Reads go through the generic ReadThrough helper:
//
//	view, err := cache.ReadThrough(ctx, coord, cache.RecipeKey(id),
//		coord.Policy().RecipeTTL,
//		func(ctx context.Context) (*model.RecipeView, error) {
//			return repo.GetByID(ctx, id)
//		})
//
// On a hit the snapshot is decoded and returned without touching the
// relational store. On a miss the loader runs and a non-empty result is
// written back under the key. Empty results are not cached unless the
// caller opts in with CacheEmpty.
//
// Every store call is bounded by Config.StoreTimeout and treated as
// best-effort: an unreachable or slow cache store degrades reads to the
// loader and drops writes with a logged warning. Only the relational store
// can fail a request.
package cache
