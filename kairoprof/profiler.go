// Package kairoprof provides lightweight scope-timing markers for hot
// paths like the batcher's flush and the asset cache's load operations.
//
// Begin(name) starts a timer and returns a closer; calling the closer
// records the elapsed duration against name and logs it through the
// shared engine logger at Debug level. Because that logger defaults to
// a no-op handler, the logging call costs nothing beyond a stats update
// until a caller opts in with engine.SetLogger.
package kairoprof

import (
	"sync"
	"time"

	"github.com/kairoui/engine"
)

// Stats summarizes the recorded calls for one named section.
type Stats struct {
	CallCount int
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
	LastTime  time.Duration
}

var (
	mu       sync.Mutex
	sections = make(map[string]*Stats)
)

// Begin starts timing a named section and returns a function that ends
// it. The idiomatic call shape is:
//
//	defer kairoprof.Begin("batch.flush")()
func Begin(name string) func() {
	start := time.Now()
	return func() {
		record(name, time.Since(start))
	}
}

func record(name string, elapsed time.Duration) {
	mu.Lock()
	s, ok := sections[name]
	if !ok {
		s = &Stats{MinTime: elapsed}
		sections[name] = s
	}
	s.CallCount++
	s.TotalTime += elapsed
	s.LastTime = elapsed
	if elapsed < s.MinTime {
		s.MinTime = elapsed
	}
	if elapsed > s.MaxTime {
		s.MaxTime = elapsed
	}
	mu.Unlock()

	engine.Logger().Debug("profile scope", "section", name, "duration", elapsed)
}

// SectionStats returns the accumulated stats for name, if any calls to
// Begin(name) have completed.
func SectionStats(name string) (Stats, bool) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := sections[name]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Reset clears all recorded stats.
func Reset() {
	mu.Lock()
	sections = make(map[string]*Stats)
	mu.Unlock()
}
