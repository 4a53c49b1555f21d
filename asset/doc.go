// Package asset implements the engine's async asset cache: a single place
// to request cached, lazily-loaded resources under a bounded memory
// budget, with priority-scheduled background loads.
//
// Go has no method-level generics, so the Cache itself is untyped: it
// stores type-erased Loader values keyed by a reflect.Type assigned at
// RegisterLoader[T] registration, and the public API is a set of free
// generic functions (LoadSync[T], LoadAsync[T], Get[T], Preload[T]) that
// type-assert the cache's internal any values back to *T. TextureLoader
// and FontLoader are the two built-in loaders, producing TextureAsset and
// atlas.Font values respectively.
//
// A Cache never evicts on load. TrimToThreshold (aliased as Compact)
// evicts least-recently-used records, by ascending (AccessCount,
// LastAccess), until usage falls back under TrimThreshold × MaxMemory;
// callers decide when that happens, typically once per frame or level
// transition.
//
//	workers := pool.New(0)
//	cache := asset.NewCache(asset.Config{MaxMemory: 256 << 20}, workers)
//	asset.RegisterLoader[asset.TextureAsset](cache, asset.NewTextureLoader(device))
//
//	tex, err := asset.LoadSync[asset.TextureAsset](cache, "ui/panel.png", "", nil)
//	future := asset.LoadAsync[atlas.Font](cache, "fonts/roboto.ttf", "", nil, pool.Normal)
//	font, err := future.Wait()
package asset
