package asset

import (
	"time"

	"github.com/kairoui/engine/internal/pool"
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/kairoprof"
)

// RegisterLoader associates loader with type T. Subsequent LoadSync[T] /
// LoadAsync[T] calls dispatch to it.
func RegisterLoader[T any](c *Cache, loader Loader) {
	c.registerLoader(typeOf[T](), loader)
}

// UnregisterLoader removes the loader registered for T, if any.
func UnregisterLoader[T any](c *Cache) {
	c.unregisterLoader(typeOf[T]())
}

// Get looks up an already-loaded asset without triggering a load. It
// bumps the record's access stats on a hit.
func Get[T any](c *Cache, path, variant string) (*T, bool) {
	key := keyFor[T](path, variant)

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[key]
	if !ok || rec.Status != Loaded {
		return nil, false
	}
	c.bumpAccess(rec)
	return rec.Value.(*T), true
}

// LoadSync loads an asset of type T, blocking until it is available. A
// cache hit on a Loaded record returns immediately; a hit on a Loading
// record waits for the in-flight load to finish; a miss calls the
// registered loader synchronously on the calling goroutine.
func LoadSync[T any](c *Cache, path, variant string, params any) (*T, error) {
	key := keyFor[T](path, variant)

	c.mu.Lock()
	if rec, ok := c.records[key]; ok {
		switch rec.Status {
		case Loaded:
			c.bumpAccess(rec)
			c.mu.Unlock()
			return rec.Value.(*T), nil
		case Loading:
			c.mu.Unlock()
			return waitForLoad[T](c, key)
		}
		// Failed or NotLoaded: fall through to a fresh load attempt.
	}
	c.mu.Unlock()

	return loadNow[T](c, key, params)
}

// waitForLoad polls rec's status under the cache mutex with short sleeps,
// per the concurrency model's "no condition variable required" contract.
func waitForLoad[T any](c *Cache, key Key) (*T, error) {
	for {
		time.Sleep(time.Millisecond)

		c.mu.Lock()
		rec, ok := c.records[key]
		if !ok {
			c.mu.Unlock()
			return nil, kairoerr.New(kairoerr.AssetLoadFailed, "asset: record disappeared while waiting")
		}
		switch rec.Status {
		case Loaded:
			c.bumpAccess(rec)
			c.mu.Unlock()
			return rec.Value.(*T), nil
		case Failed:
			err := rec.Err
			c.mu.Unlock()
			return nil, err
		default:
			c.mu.Unlock()
		}
	}
}

// loadNow performs the synchronous load-from-scratch path: find the
// loader, call it outside the lock, then record the outcome.
func loadNow[T any](c *Cache, key Key, params any) (*T, error) {
	loader, ok := c.loaderFor(key.Type)
	if !ok {
		return nil, kairoerr.Newf(kairoerr.AssetNotFound, "asset: no loader registered for %s", key.Type)
	}

	c.mu.Lock()
	c.records[key] = &Record{Key: key, Status: Loading}
	c.mu.Unlock()

	done := kairoprof.Begin("asset.load")
	raw, err := loader.Load(key.Path, params)
	done()
	if err != nil {
		c.finishFailed(key, err)
		return nil, kairoerr.Wrapf(kairoerr.AssetLoadFailed, err, "asset: load %s", key.Path)
	}

	value := raw.(*T)
	c.finishLoaded(key, value, loader.EstimateMemory(key.Path))
	return value, nil
}

func (c *Cache) finishLoaded(key Key, value any, memory uint64) {
	c.mu.Lock()
	rec := c.records[key]
	rec.Status = Loaded
	rec.Value = value
	rec.MemoryUsage = memory
	rec.LoadTime = time.Now()
	c.bumpAccess(rec)
	c.currentTotal += memory
	c.mu.Unlock()

	c.fireLoaded(key.Path, key.Type)
}

func (c *Cache) finishFailed(key Key, err error) {
	c.mu.Lock()
	rec := c.records[key]
	rec.Status = Failed
	rec.Err = err
	c.mu.Unlock()

	c.fireFailed(key.Path, key.Type, err.Error())
}

// LoadAsync loads an asset of type T on the cache's worker pool at the
// given priority. Critical priority runs synchronously on the calling
// goroutine, per the pool's contract. A cache hit on an already-Loaded
// record resolves the returned Future immediately.
func LoadAsync[T any](c *Cache, path, variant string, params any, priority pool.Priority) *Future[T] {
	key := keyFor[T](path, variant)

	c.mu.Lock()
	if rec, ok := c.records[key]; ok && rec.Status == Loaded {
		c.bumpAccess(rec)
		value := rec.Value.(*T)
		c.mu.Unlock()
		return resolvedFuture[T](value, nil)
	}
	if rec, ok := c.records[key]; ok && rec.Status == Loading {
		c.mu.Unlock()
		future := newFuture[T]()
		go func() {
			value, err := waitForLoad[T](c, key)
			future.resolve(value, err)
		}()
		return future
	}
	c.records[key] = &Record{Key: key, Status: Loading}
	c.mu.Unlock()

	future := newFuture[T]()
	task := func() {
		loader, ok := c.loaderFor(key.Type)
		if !ok {
			err := kairoerr.Newf(kairoerr.AssetNotFound, "asset: no loader registered for %s", key.Type)
			c.finishFailed(key, err)
			future.resolve(nil, err)
			return
		}
		done := kairoprof.Begin("asset.load")
		raw, err := loader.Load(key.Path, params)
		done()
		if err != nil {
			wrapped := kairoerr.Wrapf(kairoerr.AssetLoadFailed, err, "asset: load %s", key.Path)
			c.finishFailed(key, wrapped)
			future.resolve(nil, wrapped)
			return
		}
		value := raw.(*T)
		c.finishLoaded(key, value, loader.EstimateMemory(key.Path))
		future.resolve(value, nil)
	}

	if c.pool != nil {
		c.pool.Submit(task, priority)
	} else {
		go task()
	}
	return future
}

// Preload is LoadAsync at Low priority with the future discarded, for
// warming the cache without blocking the caller on the result.
func Preload[T any](c *Cache, path, variant string, params any) {
	LoadAsync[T](c, path, variant, params, pool.Low)
}

// Unload deletes one record from the cache and fires OnUnloaded. A no-op
// if the record does not exist or is currently Loading.
func Unload[T any](c *Cache, path, variant string) {
	key := keyFor[T](path, variant)

	c.mu.Lock()
	rec, ok := c.records[key]
	if !ok || rec.Status == Loading {
		c.mu.Unlock()
		return
	}
	delete(c.records, key)
	c.currentTotal -= rec.MemoryUsage
	c.mu.Unlock()

	c.fireUnloaded(key.Path, key.Type)
}

// UnloadAllOfType removes every non-Loading record of type T.
func UnloadAllOfType[T any](c *Cache) {
	typ := typeOf[T]()

	c.mu.Lock()
	var victims []*Record
	for key, rec := range c.records {
		if key.Type != typ || rec.Status == Loading {
			continue
		}
		victims = append(victims, rec)
		delete(c.records, key)
		c.currentTotal -= rec.MemoryUsage
	}
	c.mu.Unlock()

	for _, rec := range victims {
		c.fireUnloaded(rec.Key.Path, rec.Key.Type)
	}
}
