// Package cache provides ShardedCache, a generic sharded LRU cache for
// high-concurrency paths, such as the atlas Shaper's per-(font, text,
// size, direction) shaped-run cache. Sixteen shards keep per-key locking independent, and each shard
// evicts with a proper LRU list rather than a soft-limit sweep.
//
//	c := cache.NewSharded[string, int](256, cache.StringHasher)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// ShardedCache must not be copied after construction; it holds mutexes.
package cache
