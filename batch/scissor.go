package batch

// ScissorRect is an axis-aligned clip rectangle in screen space, origin
// top-left.
type ScissorRect struct {
	X, Y, W, H float32
}

// Valid reports whether the rectangle has positive area.
func (r ScissorRect) Valid() bool {
	return r.W > 0 && r.H > 0
}

func (r ScissorRect) left() float32   { return r.X }
func (r ScissorRect) top() float32    { return r.Y }
func (r ScissorRect) right() float32  { return r.X + r.W }
func (r ScissorRect) bottom() float32 { return r.Y + r.H }

// Intersects reports whether r and other overlap.
func (r ScissorRect) Intersects(other ScissorRect) bool {
	return !(r.right() <= other.left() || other.right() <= r.left() ||
		r.bottom() <= other.top() || other.bottom() <= r.top())
}

// Clip returns the intersection of r and other. If they do not overlap,
// the result is the zero ScissorRect, which is invalid.
func (r ScissorRect) Clip(other ScissorRect) ScissorRect {
	if !r.Intersects(other) {
		return ScissorRect{}
	}
	x := max32(r.left(), other.left())
	y := max32(r.top(), other.top())
	w := min32(r.right(), other.right()) - x
	h := min32(r.bottom(), other.bottom()) - y
	return ScissorRect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether the point (px, py) lies within r.
func (r ScissorRect) Contains(px, py float32) bool {
	return px >= r.left() && px < r.right() && py >= r.top() && py < r.bottom()
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// scissorStack is a push/pop stack of scissor rectangles; each push
// clips against the current top. An empty stack means "full screen."
type scissorStack struct {
	rects []ScissorRect
}

func (s *scissorStack) push(r ScissorRect, screenW, screenH float32) {
	if len(s.rects) > 0 {
		r = r.Clip(s.rects[len(s.rects)-1])
	}
	s.rects = append(s.rects, r)
}

func (s *scissorStack) pop() {
	if len(s.rects) > 0 {
		s.rects = s.rects[:len(s.rects)-1]
	}
}

func (s *scissorStack) clear() {
	s.rects = s.rects[:0]
}

// current returns the effective scissor, defaulting to the full screen
// when the stack is empty.
func (s *scissorStack) current(screenW, screenH float32) ScissorRect {
	if len(s.rects) == 0 {
		return ScissorRect{X: 0, Y: 0, W: screenW, H: screenH}
	}
	return s.rects[len(s.rects)-1]
}
