package asset

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/kairoui/engine"
	"github.com/kairoui/engine/internal/pool"
	"github.com/kairoui/engine/kairoerr"
)

// Config configures a Cache's memory budget and worker pool.
type Config struct {
	// MaxMemory is the budget, in bytes, that TrimToThreshold scales by
	// TrimThreshold. Loads never check it. A value of 0 disables trimming.
	MaxMemory uint64
	// TrimThreshold is the fraction of MaxMemory above which TrimToThreshold
	// evicts records. Must be in (0, 1].
	TrimThreshold float64
	// Logger receives structured log records. Defaults to engine.Logger().
	Logger *slog.Logger
}

// Cache is the asset cache: a map of Key to Record guarded by a single
// mutex, a table of registered Loaders, and a priority worker pool for
// async loads.
type Cache struct {
	mu      sync.Mutex
	records map[Key]*Record
	loaders map[reflect.Type]Loader

	pool *pool.Pool

	maxMemory     uint64
	trimThreshold float64
	currentTotal  uint64
	tick          uint64

	onLoaded   []func(path string, typ reflect.Type)
	onUnloaded []func(path string, typ reflect.Type)
	onFailed   []func(path string, typ reflect.Type, errMsg string)

	logger *slog.Logger
}

// NewCache creates a Cache. workers is the pool async loads submit to;
// Critical-priority loads bypass it and run synchronously regardless.
func NewCache(cfg Config, workers *pool.Pool) *Cache {
	threshold := cfg.TrimThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	logger := cfg.Logger
	if logger == nil {
		logger = engine.Logger()
	}
	return &Cache{
		records:       make(map[Key]*Record),
		loaders:       make(map[reflect.Type]Loader),
		pool:          workers,
		maxMemory:     cfg.MaxMemory,
		trimThreshold: threshold,
		logger:        logger,
	}
}

// OnLoaded registers a callback invoked, outside the cache mutex, every
// time a record transitions to Loaded.
func (c *Cache) OnLoaded(fn func(path string, typ reflect.Type)) {
	c.mu.Lock()
	c.onLoaded = append(c.onLoaded, fn)
	c.mu.Unlock()
}

// OnUnloaded registers a callback invoked when a record is unloaded,
// whether explicitly or through eviction.
func (c *Cache) OnUnloaded(fn func(path string, typ reflect.Type)) {
	c.mu.Lock()
	c.onUnloaded = append(c.onUnloaded, fn)
	c.mu.Unlock()
}

// OnFailed registers a callback invoked when a load fails.
func (c *Cache) OnFailed(fn func(path string, typ reflect.Type, errMsg string)) {
	c.mu.Lock()
	c.onFailed = append(c.onFailed, fn)
	c.mu.Unlock()
}

func (c *Cache) fireLoaded(path string, typ reflect.Type) {
	c.mu.Lock()
	fns := append([]func(string, reflect.Type){}, c.onLoaded...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(path, typ)
	}
}

func (c *Cache) fireUnloaded(path string, typ reflect.Type) {
	c.mu.Lock()
	fns := append([]func(string, reflect.Type){}, c.onUnloaded...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(path, typ)
	}
}

func (c *Cache) fireFailed(path string, typ reflect.Type, msg string) {
	c.mu.Lock()
	fns := append([]func(string, reflect.Type, string){}, c.onFailed...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(path, typ, msg)
	}
}

// registerLoader stores loader under typ. Internal; RegisterLoader[T] is
// the public generic entry point in generic.go.
func (c *Cache) registerLoader(typ reflect.Type, loader Loader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[typ] = loader
	c.logger.Info("asset: loader registered", "type", typ.String())
}

func (c *Cache) unregisterLoader(typ reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.loaders, typ)
}

func (c *Cache) loaderFor(typ reflect.Type) (Loader, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.loaders[typ]
	return l, ok
}

// bumpAccess advances the access clock and stats for rec. Caller must
// hold c.mu.
func (c *Cache) bumpAccess(rec *Record) {
	c.tick++
	rec.AccessCount++
	rec.LastAccess = c.tick
}

// Stats summarizes the cache's current state.
type Stats struct {
	TotalRecords int
	LoadedCount  int
	LoadingCount int
	FailedCount  int
	CurrentBytes uint64
	MaxBytes     uint64
}

// Stats returns a snapshot of the cache's current state.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{MaxBytes: c.maxMemory, CurrentBytes: c.currentTotal, TotalRecords: len(c.records)}
	for _, rec := range c.records {
		switch rec.Status {
		case Loaded:
			s.LoadedCount++
		case Loading:
			s.LoadingCount++
		case Failed:
			s.FailedCount++
		}
	}
	return s
}

// Clear unloads every record and resets the cache to empty.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := make([]*Record, 0, len(c.records))
	for key, rec := range c.records {
		evicted = append(evicted, rec)
		delete(c.records, key)
	}
	c.currentTotal = 0
	c.mu.Unlock()

	for _, rec := range evicted {
		c.fireUnloaded(rec.Key.Path, rec.Key.Type)
	}
}

// TrimToThreshold evicts least-recently-used, non-Loading records while
// the cache's total memory usage exceeds TrimThreshold × MaxMemory. It
// returns the number of records evicted.
func (c *Cache) TrimToThreshold() int {
	if c.maxMemory == 0 {
		return 0
	}
	threshold := uint64(float64(c.maxMemory) * c.trimThreshold)

	evicted := 0
	for {
		c.mu.Lock()
		if c.currentTotal <= threshold {
			c.mu.Unlock()
			break
		}
		victim := c.pickEvictionVictimLocked()
		if victim == nil {
			c.mu.Unlock()
			break
		}
		delete(c.records, victim.Key)
		c.currentTotal -= victim.MemoryUsage
		c.mu.Unlock()

		c.fireUnloaded(victim.Key.Path, victim.Key.Type)
		evicted++
	}
	return evicted
}

// Compact is an alias for TrimToThreshold, matching the teacher's atlas
// manager naming for the same operation.
func (c *Cache) Compact() int { return c.TrimToThreshold() }

// pickEvictionVictimLocked returns the Loaded record with the smallest
// (AccessCount, LastAccess), skipping Loading records. Caller must hold
// c.mu.
func (c *Cache) pickEvictionVictimLocked() *Record {
	var victim *Record
	for _, rec := range c.records {
		if rec.Status == Loading {
			continue
		}
		if victim == nil {
			victim = rec
			continue
		}
		if rec.AccessCount < victim.AccessCount ||
			(rec.AccessCount == victim.AccessCount && rec.LastAccess < victim.LastAccess) {
			victim = rec
		}
	}
	return victim
}

// UnloadUnused evicts every Loaded record that was never accessed again
// after its initial load (AccessCount == 1). Go's garbage collector makes
// true external-reference tracking unnecessary; this heuristic substitutes
// for the source's shared_ptr refcount check.
func (c *Cache) UnloadUnused() int {
	c.mu.Lock()
	var victims []*Record
	for key, rec := range c.records {
		if rec.Status == Loaded && rec.AccessCount <= 1 {
			victims = append(victims, rec)
			delete(c.records, key)
			c.currentTotal -= rec.MemoryUsage
		}
	}
	c.mu.Unlock()

	for _, rec := range victims {
		c.fireUnloaded(rec.Key.Path, rec.Key.Type)
	}
	return len(victims)
}

// CancelAllLoads marks every Loading record as Failed with "cancelled"
// and resolves any waiters polling it.
func (c *Cache) CancelAllLoads() int {
	c.mu.Lock()
	var cancelled []*Record
	for _, rec := range c.records {
		if rec.Status == Loading {
			rec.Status = Failed
			rec.Err = kairoerr.New(kairoerr.AssetLoadFailed, "cancelled")
			cancelled = append(cancelled, rec)
		}
	}
	c.mu.Unlock()

	for _, rec := range cancelled {
		c.fireFailed(rec.Key.Path, rec.Key.Type, "cancelled")
	}
	return len(cancelled)
}
