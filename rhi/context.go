package rhi

// Rect is an axis-aligned integer rectangle in pixel coordinates, origin at
// the top-left, y increasing downward. It is used for both viewports and
// scissor rects.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// Contains reports whether p lies within r (inclusive of the top-left edge,
// exclusive of the bottom-right edge).
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlapping rectangle of r and o. If they do not
// overlap, the result has Width or Height <= 0.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max32(r.X, o.X)
	y0 := max32(r.Y, o.Y)
	x1 := min32(r.X+r.Width, o.X+o.Width)
	y1 := min32(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// DrawCmd describes one indexed draw call submitted to a Context.
type DrawCmd struct {
	IndexCount   uint32
	FirstIndex   uint32
	BaseVertex   int32
	VertexBuffer Buffer
	VertexOffset uint64
	IndexBuffer  Buffer
	IndexOffset  uint64
}

// Context records rendering commands for a single frame. It is not
// thread-safe; each frame is recorded by a single goroutine.
type Context interface {
	// SetViewport sets the viewport rectangle in pixels.
	SetViewport(r Rect)

	// SetScissor sets the active scissor rectangle in pixels. A zero-area
	// rect means nothing passes the scissor test.
	SetScissor(r Rect)

	// BindPipeline binds the given pipeline state for subsequent draws.
	BindPipeline(p PipelineState)

	// BindTexture binds t and its sampler at the given slot.
	BindTexture(slot uint32, t Texture, s Sampler)

	// Draw submits one indexed draw call using the currently bound pipeline,
	// textures, and scissor rect.
	Draw(cmd DrawCmd)

	// Release frees any per-frame resources the context holds. Buffers and
	// textures bound during the frame are not released.
	Release()
}
