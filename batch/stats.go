package batch

// Stats accumulates counters describing what the batcher did since the
// last Begin or ResetStats; Begin always resets them.
type Stats struct {
	DrawCalls        uint64
	VerticesRendered uint64
	IndicesRendered  uint64
	BatchesCreated   uint64
	TextureSwitches  uint64
	CulledElements   uint64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.DrawCalls += other.DrawCalls
	s.VerticesRendered += other.VerticesRendered
	s.IndicesRendered += other.IndicesRendered
	s.BatchesCreated += other.BatchesCreated
	s.TextureSwitches += other.TextureSwitches
	s.CulledElements += other.CulledElements
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	*s = Stats{}
}
