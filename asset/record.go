package asset

import "time"

// Record is the cache's bookkeeping for one asset: its lifecycle status,
// access statistics, and the loaded value. Value is type-erased; callers
// never see a Record directly, only through the typed Get/LoadSync/
// LoadAsync functions.
type Record struct {
	Key Key

	Status Status
	Value  any
	Err    error

	MemoryUsage uint64
	AccessCount uint64
	LastAccess  uint64
	LoadTime    time.Time
}
