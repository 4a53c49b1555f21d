package asset

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/kairoui/engine/internal/pool"
	"github.com/kairoui/engine/kairoerr"
)

type blob struct{ Size uint64 }

// fakeLoader returns blobs of a fixed size, counting how many times Load
// was actually invoked so tests can assert cache hits avoid reloading.
type fakeLoader struct {
	mu    sync.Mutex
	size  uint64
	calls int
	fail  bool
}

func (l *fakeLoader) Load(path string, params any) (any, error) {
	l.mu.Lock()
	l.calls++
	fail := l.fail
	l.mu.Unlock()
	if fail {
		return nil, errors.New("fake load failure")
	}
	return &blob{Size: l.size}, nil
}

func (l *fakeLoader) CanLoad(path string) bool          { return true }
func (l *fakeLoader) SupportedExtensions() []string     { return []string{".blob"} }
func (l *fakeLoader) EstimateMemory(path string) uint64 { return l.size }

func (l *fakeLoader) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func newTestCache(t *testing.T, cfg Config) (*Cache, *pool.Pool) {
	t.Helper()
	p := pool.New(2)
	t.Cleanup(p.Close)
	return NewCache(cfg, p), p
}

func TestLoadSyncIsIdempotent(t *testing.T) {
	cache, _ := newTestCache(t, Config{})
	loader := &fakeLoader{size: 10}
	RegisterLoader[blob](cache, loader)

	first, err := LoadSync[blob](cache, "a.blob", "", nil)
	if err != nil {
		t.Fatalf("LoadSync: %v", err)
	}
	second, err := LoadSync[blob](cache, "a.blob", "", nil)
	if err != nil {
		t.Fatalf("LoadSync (cached): %v", err)
	}
	if first != second {
		t.Fatalf("expected cached pointer identity, got distinct values")
	}
	if got := loader.callCount(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}

	value, ok := Get[blob](cache, "a.blob", "")
	if !ok || value != first {
		t.Fatalf("Get after LoadSync: ok=%v value=%v", ok, value)
	}
}

// TestEvictionPicksLeastRecentlyUsed exercises the LRU eviction scenario:
// three 512-byte assets loaded in order a, b, c against a 1024-byte budget
// with a 0.5 trim threshold. 'a' is accessed once more before trimming, so
// 'b' (never re-accessed) is evicted first; 'a' survives.
func TestEvictionPicksLeastRecentlyUsed(t *testing.T) {
	cache, _ := newTestCache(t, Config{MaxMemory: 1024, TrimThreshold: 0.5})
	loader := &fakeLoader{size: 512}
	RegisterLoader[blob](cache, loader)

	var unloaded []string
	cache.OnUnloaded(func(path string, typ reflect.Type) {
		unloaded = append(unloaded, path)
	})

	if _, err := LoadSync[blob](cache, "a.blob", "", nil); err != nil {
		t.Fatalf("load a: %v", err)
	}
	if _, err := LoadSync[blob](cache, "b.blob", "", nil); err != nil {
		t.Fatalf("load b: %v", err)
	}
	if _, err := LoadSync[blob](cache, "c.blob", "", nil); err != nil {
		t.Fatalf("load c: %v", err)
	}
	if _, ok := Get[blob](cache, "a.blob", ""); !ok {
		t.Fatal("expected a.blob to still be present before trim")
	}

	evicted := cache.TrimToThreshold()
	if evicted != 2 {
		t.Fatalf("evicted = %d, want 2", evicted)
	}
	if len(unloaded) != 2 || unloaded[0] != "b.blob" {
		t.Fatalf("unloaded = %v, want [b.blob, ...] with b evicted first", unloaded)
	}
	if _, ok := Get[blob](cache, "a.blob", ""); !ok {
		t.Fatal("a.blob should have survived trimming")
	}
	if _, ok := Get[blob](cache, "b.blob", ""); ok {
		t.Fatal("b.blob should have been evicted")
	}
	if stats := cache.Stats(); stats.CurrentBytes > 512 {
		t.Fatalf("CurrentBytes = %d, want <= 512", stats.CurrentBytes)
	}
}

func TestLoadSyncDoesNotAutoEvict(t *testing.T) {
	cache, _ := newTestCache(t, Config{MaxMemory: 600, TrimThreshold: 0.5})
	loader := &fakeLoader{size: 512}
	RegisterLoader[blob](cache, loader)

	if _, err := LoadSync[blob](cache, "a.blob", "", nil); err != nil {
		t.Fatalf("load a: %v", err)
	}
	if _, err := LoadSync[blob](cache, "b.blob", "", nil); err != nil {
		t.Fatalf("load b: %v", err)
	}

	if _, ok := Get[blob](cache, "a.blob", ""); !ok {
		t.Fatal("loading over budget must not evict until TrimToThreshold is called")
	}
	if _, ok := Get[blob](cache, "b.blob", ""); !ok {
		t.Fatal("loading over budget must not evict until TrimToThreshold is called")
	}
}

// TestLoadAsyncFailurePath implements the always-fails-loader scenario: the
// future resolves with an error, the record ends Failed with a non-empty
// message, and on_failed fires exactly once.
func TestLoadAsyncFailurePath(t *testing.T) {
	cache, _ := newTestCache(t, Config{})
	loader := &fakeLoader{fail: true}
	RegisterLoader[blob](cache, loader)

	var failedCount int
	var failedMsg string
	var mu sync.Mutex
	cache.OnFailed(func(path string, typ reflect.Type, msg string) {
		mu.Lock()
		failedCount++
		failedMsg = msg
		mu.Unlock()
	})

	future := LoadAsync[blob](cache, "broken.blob", "", nil, pool.Normal)
	value, err := future.Wait()
	if err == nil {
		t.Fatal("expected future to resolve with an error")
	}
	if value != nil {
		t.Fatalf("expected nil value on failure, got %v", value)
	}
	if !kairoerr.Is(err, kairoerr.AssetLoadFailed) {
		t.Fatalf("expected AssetLoadFailed, got %v", err)
	}

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		count := failedCount
		mu.Unlock()
		if count > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("on_failed callback was not observed")
		case <-time.After(time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if failedCount != 1 {
		t.Fatalf("on_failed fired %d times, want 1", failedCount)
	}
	if failedMsg == "" {
		t.Fatal("expected a non-empty failure message")
	}
}

func TestUnloadUnusedKeepsRevisitedAssets(t *testing.T) {
	cache, _ := newTestCache(t, Config{})
	loader := &fakeLoader{size: 16}
	RegisterLoader[blob](cache, loader)

	if _, err := LoadSync[blob](cache, "touched.blob", "", nil); err != nil {
		t.Fatalf("load touched: %v", err)
	}
	if _, err := LoadSync[blob](cache, "untouched.blob", "", nil); err != nil {
		t.Fatalf("load untouched: %v", err)
	}
	if _, ok := Get[blob](cache, "touched.blob", ""); !ok {
		t.Fatal("expected touched.blob to be loaded")
	}

	evicted := cache.UnloadUnused()
	if evicted != 1 {
		t.Fatalf("UnloadUnused evicted %d, want 1", evicted)
	}
	if _, ok := Get[blob](cache, "touched.blob", ""); !ok {
		t.Fatal("touched.blob should survive UnloadUnused")
	}
	if _, ok := Get[blob](cache, "untouched.blob", ""); ok {
		t.Fatal("untouched.blob should have been evicted by UnloadUnused")
	}
}

func TestCancelAllLoadsFailsInFlightRecords(t *testing.T) {
	cache, _ := newTestCache(t, Config{})

	cache.mu.Lock()
	cache.records[Key{Path: "pending.blob", Type: typeOf[blob]()}] = &Record{
		Key:    Key{Path: "pending.blob", Type: typeOf[blob]()},
		Status: Loading,
	}
	cache.mu.Unlock()

	cancelled := cache.CancelAllLoads()
	if cancelled != 1 {
		t.Fatalf("cancelled = %d, want 1", cancelled)
	}

	cache.mu.Lock()
	rec := cache.records[Key{Path: "pending.blob", Type: typeOf[blob]()}]
	cache.mu.Unlock()
	if rec.Status != Failed || rec.Err == nil {
		t.Fatalf("expected Failed with an error, got status=%v err=%v", rec.Status, rec.Err)
	}
}
