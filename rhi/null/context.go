package null

import "github.com/kairoui/engine/rhi"

// textureBinding records one BindTexture call.
type textureBinding struct {
	slot    uint32
	texture rhi.Texture
	sampler rhi.Sampler
}

// Context records every command submitted to it so tests can assert on draw
// call counts, scissor rects, and bound state without a real GPU.
type Context struct {
	viewport      rhi.Rect
	scissor       rhi.Rect
	boundPipeline rhi.PipelineState
	bindings      map[uint32]textureBinding
	draws         []rhi.DrawCmd
	released      bool
}

func newContext() *Context {
	return &Context{bindings: make(map[uint32]textureBinding)}
}

func (c *Context) SetViewport(r rhi.Rect) { c.viewport = r }
func (c *Context) SetScissor(r rhi.Rect)  { c.scissor = r }

func (c *Context) BindPipeline(p rhi.PipelineState) {
	c.boundPipeline = p
	p.Apply(c)
}

func (c *Context) BindTexture(slot uint32, t rhi.Texture, s rhi.Sampler) {
	c.bindings[slot] = textureBinding{slot: slot, texture: t, sampler: s}
}

func (c *Context) Draw(cmd rhi.DrawCmd) {
	c.draws = append(c.draws, cmd)
}

func (c *Context) Release() { c.released = true }

// Viewport returns the last rectangle passed to SetViewport, for assertions.
func (c *Context) Viewport() rhi.Rect { return c.viewport }

// Scissor returns the last rectangle passed to SetScissor, for assertions.
func (c *Context) Scissor() rhi.Rect { return c.scissor }

// Draws returns every draw call recorded this frame, in submission order.
func (c *Context) Draws() []rhi.DrawCmd { return c.draws }

// BoundPipeline returns the most recently bound pipeline, or nil.
func (c *Context) BoundPipeline() rhi.PipelineState { return c.boundPipeline }

// BoundTexture returns the texture bound at slot, or nil if none.
func (c *Context) BoundTexture(slot uint32) rhi.Texture {
	return c.bindings[slot].texture
}
