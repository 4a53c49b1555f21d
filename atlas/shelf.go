package atlas

// shelfAllocator packs rectangles into horizontal shelves: each shelf has a
// fixed height set by the tallest glyph placed on it, and glyphs are placed
// left to right until a shelf runs out of width, at which point a new shelf
// starts below. It favors fast, good-enough packing over the density of a
// full bin-packing algorithm, which suits glyph pages where most rects are
// similarly sized.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

type shelf struct {
	y      int
	height int
	x      int
}

// newShelfAllocator creates an allocator for a page of the given dimensions.
// padding is added between adjacent glyphs and between shelves to avoid SDF
// bleed from neighboring glyphs during bilinear sampling.
func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w x h rectangle, returning its top-left
// position. ok is false if the page has no remaining room.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		s := &a.shelves[i]

		if s.x+paddedW > a.width {
			continue
		}

		if h > s.height {
			if i == len(a.shelves)-1 {
				newBottom := s.y + paddedH
				if newBottom <= a.height {
					s.height = h
					x, y = s.x, s.y
					s.x += paddedW
					a.usedArea += w * h
					return x, y, true
				}
			}
			continue
		}

		x, y = s.x, s.y
		s.x += paddedW
		a.usedArea += w * h
		return x, y, true
	}

	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}

	if newY+paddedH > a.height {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.usedArea += w * h

	return 0, newY, true
}

// canFit reports whether a w x h rectangle could be placed without actually
// placing it.
func (a *shelfAllocator) canFit(w, h int) bool {
	paddedW := w + a.padding
	paddedH := h + a.padding

	if paddedW > a.width || paddedH > a.height {
		return false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.width {
			continue
		}
		if h <= s.height {
			return true
		}
		if i == len(a.shelves)-1 && s.y+paddedH <= a.height {
			return true
		}
	}

	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}
	return newY+paddedH <= a.height
}

// reset clears all allocations without releasing the shelf slice's capacity.
func (a *shelfAllocator) reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization returns the fraction of page area currently occupied.
func (a *shelfAllocator) utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}
