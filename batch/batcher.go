package batch

import (
	"log/slog"

	"github.com/kairoui/engine/atlas"
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/kairoprof"
	"github.com/kairoui/engine/rhi"
	"github.com/kairoui/engine/ringbuffer"
)

// DefaultMaxVertices bounds how many vertices a single flush may carry
// before the batcher flushes early to stay under a batch's vertex cap.
const DefaultMaxVertices = 65536

// DefaultMaxIndices is sized for the worst case of all-quad geometry (6
// indices per 4 vertices).
const DefaultMaxIndices = DefaultMaxVertices / 4 * 6

// Config configures a Batcher's ring-buffer sizing.
type Config struct {
	// VertexRingBytes is the size, in bytes, of each vertex ring sub-buffer.
	VertexRingBytes uint64
	// IndexRingBytes is the size, in bytes, of each index ring sub-buffer.
	IndexRingBytes uint64
	// MaxVertices bounds the vertex count of a single flush.
	MaxVertices int
}

// DefaultConfig sizes ring buffers for DefaultMaxVertices worth of
// geometry per frame.
func DefaultConfig() Config {
	return Config{
		VertexRingBytes: DefaultMaxVertices * SizeOfVertex,
		IndexRingBytes:  DefaultMaxIndices * 4,
		MaxVertices:     DefaultMaxVertices,
	}
}

// Batcher accumulates 2D drawing primitives and flushes them as indexed
// draw calls through an rhi.Context, allocating transient vertex/index
// storage from per-frame ring buffers.
type Batcher struct {
	device rhi.Device

	vertexRing *ringbuffer.RingBuffer
	indexRing  *ringbuffer.RingBuffer
	pipelines  *pipelineSet
	sampler    rhi.Sampler

	maxVertices int

	screenW, screenH float32
	viewport         rhi.Rect
	depthTest        bool

	scissors scissorStack

	textures        [MaxTextures]rhi.Texture
	bound           [MaxTextures]bool
	slotSwitches    uint64
	nextEvictedSlot uint32

	vertices []Vertex
	indices  []uint32
	textured bool
	isText   bool

	ctx   rhi.Context
	stats Stats
}

// New creates a Batcher backed by device, allocating its ring buffers and
// a shared linear-clamp sampler.
func New(device rhi.Device, cfg Config) (*Batcher, error) {
	vertexRing, err := ringbuffer.New(device, ringbuffer.DefaultFrameCount, cfg.VertexRingBytes, rhi.BufferUsageVertex, ringbuffer.WithAlignment(16))
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.ResourceCreation, err, "batch: create vertex ring buffer")
	}
	indexRing, err := ringbuffer.New(device, ringbuffer.DefaultFrameCount, cfg.IndexRingBytes, rhi.BufferUsageIndex, ringbuffer.WithAlignment(4))
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.ResourceCreation, err, "batch: create index ring buffer")
	}

	sampler, err := device.CreateSampler(rhi.SamplerDesc{
		Label:        "batch-linear-clamp",
		MinFilter:    rhi.FilterLinear,
		MagFilter:    rhi.FilterLinear,
		AddressModeU: rhi.AddressClampToEdge,
		AddressModeV: rhi.AddressClampToEdge,
	})
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.ResourceCreation, err, "batch: create sampler")
	}

	maxVertices := cfg.MaxVertices
	if maxVertices <= 0 {
		maxVertices = DefaultMaxVertices
	}

	return &Batcher{
		device:      device,
		vertexRing:  vertexRing,
		indexRing:   indexRing,
		pipelines:   newPipelineSet(device),
		sampler:     sampler,
		maxVertices: maxVertices,
		screenW:     1280,
		screenH:     720,
	}, nil
}

// SetScreenSize sets the reference size used to convert screen-pixel
// coordinates to clip space.
func (b *Batcher) SetScreenSize(w, h float32) {
	b.screenW, b.screenH = w, h
}

// SetViewport sets the pixel viewport rectangle bound at flush time.
func (b *Batcher) SetViewport(r rhi.Rect) {
	b.viewport = r
}

// SetDepthTest records whether depth testing is wanted. rhi.PipelineDesc
// carries no depth state, so the batcher's pipelines never depth-test;
// nothing in the batcher reads the stored flag.
func (b *Batcher) SetDepthTest(enabled bool) {
	b.depthTest = enabled
}

// Stats returns the cumulative stats since the last Begin or ResetStats.
func (b *Batcher) Stats() Stats {
	return b.stats
}

// ResetStats zeroes the stats counters without otherwise touching batcher
// state.
func (b *Batcher) ResetStats() {
	b.stats.Reset()
}

// Begin starts a new frame: advances the ring buffers, resets stats and
// the current batch, clears texture bindings, and opens a new rhi.Context.
func (b *Batcher) Begin() error {
	b.vertexRing.NextFrame()
	b.indexRing.NextFrame()
	b.stats.Reset()
	b.resetBatch()
	b.textures = [MaxTextures]rhi.Texture{}
	b.bound = [MaxTextures]bool{}
	b.scissors.clear()

	ctx, err := b.device.BeginFrame()
	if err != nil {
		return kairoerr.Wrap(kairoerr.Device, err, "batch: begin frame")
	}
	b.ctx = ctx
	return nil
}

// End flushes any pending geometry and submits the frame.
func (b *Batcher) End() error {
	b.flush()
	if b.ctx == nil {
		return nil
	}
	err := b.device.Submit(b.ctx)
	b.ctx = nil
	if err != nil {
		return kairoerr.Wrap(kairoerr.Device, err, "batch: submit frame")
	}
	return nil
}

func (b *Batcher) resetBatch() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.textured = false
	b.isText = false
}

// effectiveScissor returns the active clip rectangle, or the full screen
// if no scissor is pushed.
func (b *Batcher) effectiveScissor() ScissorRect {
	return b.scissors.current(b.screenW, b.screenH)
}

// PushScissor intersects rect with the current scissor and pushes the
// result, flushing the batch since the effective clip region changed.
func (b *Batcher) PushScissor(rect ScissorRect) {
	before := b.effectiveScissor()
	b.scissors.push(rect, b.screenW, b.screenH)
	if b.effectiveScissor() != before {
		b.flush()
	}
}

// PopScissor restores the previous scissor, flushing if it differs from
// the one just active.
func (b *Batcher) PopScissor() {
	before := b.effectiveScissor()
	b.scissors.pop()
	if b.effectiveScissor() != before {
		b.flush()
	}
}

// ClearScissor empties the scissor stack, flushing if that changes the
// effective clip region.
func (b *Batcher) ClearScissor() {
	before := b.effectiveScissor()
	b.scissors.clear()
	if b.effectiveScissor() != before {
		b.flush()
	}
}

// CurrentScissor returns the active clip rectangle.
func (b *Batcher) CurrentScissor() ScissorRect {
	return b.effectiveScissor()
}

// SetTexture binds handle to slot. If the slot's effective binding changes
// — including its very first bind to a non-nil handle — the batch flushes
// first so no vertex written against the old binding survives into the
// new one, and the change counts toward TextureSwitches. Binding nil
// clears the slot without flushing and does not count as a switch.
func (b *Batcher) SetTexture(slot uint32, handle rhi.Texture) {
	if slot >= MaxTextures {
		return
	}
	if handle != nil && (!b.bound[slot] || b.textures[slot] != handle) {
		b.flush()
		b.slotSwitches++
	}
	b.textures[slot] = handle
	b.bound[slot] = handle != nil
}

// ClearTextures unbinds every texture slot.
func (b *Batcher) ClearTextures() {
	b.textures = [MaxTextures]rhi.Texture{}
	b.bound = [MaxTextures]bool{}
}

// ensureTextureSlot finds the slot already bound to tex, or binds it to a
// free (or round-robin evicted) slot, flushing if that displaces a
// different texture.
func (b *Batcher) ensureTextureSlot(tex rhi.Texture) uint32 {
	for slot, bound := range b.textures {
		if bound == tex {
			return uint32(slot)
		}
	}
	for slot, bound := range b.textures {
		if bound == nil {
			b.SetTexture(uint32(slot), tex)
			return uint32(slot)
		}
	}
	slot := b.nextEvictedSlot % MaxTextures
	b.nextEvictedSlot++
	b.SetTexture(slot, tex)
	return slot
}

// AddRect emits an untextured rectangle. colorARGB is a packed
// 0xAARRGGBB color.
func (b *Batcher) AddRect(x, y, w, h float32, colorARGB uint32) {
	clipped, ok := clipRect(x, y, w, h, b.effectiveScissor())
	if !ok {
		b.stats.CulledElements++
		return
	}
	if b.textured {
		b.flush()
	}
	b.appendRectVertices(clipped.X, clipped.Y, clipped.W, clipped.H, 0, 0, 1, 1, colorARGB, NoTexture)
}

// AddQuad emits an arbitrary convex 4-corner quad with a single color,
// untextured. Corners are given in order (x0,y0)..(x3,y3).
func (b *Batcher) AddQuad(x0, y0, x1, y1, x2, y2, x3, y3 float32, colorARGB uint32) {
	if b.textured {
		b.flush()
	}
	color := ColorARGBToRGBA(colorARGB)
	base := uint32(len(b.vertices))
	b.vertices = append(b.vertices,
		Vertex{X: ToClipX(x0, b.screenW), Y: ToClipY(y0, b.screenH), Color: color, TexSlot: NoTexture},
		Vertex{X: ToClipX(x1, b.screenW), Y: ToClipY(y1, b.screenH), Color: color, TexSlot: NoTexture},
		Vertex{X: ToClipX(x2, b.screenW), Y: ToClipY(y2, b.screenH), Color: color, TexSlot: NoTexture},
		Vertex{X: ToClipX(x3, b.screenW), Y: ToClipY(y3, b.screenH), Color: color, TexSlot: NoTexture},
	)
	b.indices = append(b.indices, base, base+1, base+2, base+2, base+3, base)
	b.maybeFlushForCapacity()
}

// AddTexturedRect emits a textured rectangle sampling tex in [uv0, uv1].
func (b *Batcher) AddTexturedRect(x, y, w, h float32, uv0, uv1 [2]float32, colorARGB uint32, slot uint32) {
	clipped, ok := clipRectUV(x, y, w, h, uv0, uv1, b.effectiveScissor())
	if !ok {
		b.stats.CulledElements++
		return
	}
	if !b.textured || b.isText {
		b.flush()
	}
	b.textured = true
	b.appendRectVertices(clipped.x, clipped.y, clipped.w, clipped.h, clipped.u0[0], clipped.u0[1], clipped.u1[0], clipped.u1[1], colorARGB, slot)
}

// BeginText enters text-drawing mode, flushing the pending non-text batch
// first if the batcher was not already in text mode. Calls between
// BeginText and EndText do not flush against each other.
func (b *Batcher) BeginText() {
	if !b.isText {
		b.flush()
		b.isText = true
		b.textured = true
	}
}

// EndText exits text-drawing mode and flushes.
func (b *Batcher) EndText() {
	b.isText = false
	b.flush()
}

// AddText shapes text with shaper and emits one textured rect per glyph
// from mgr's atlas. Inside a BeginText/EndText bracket it only appends to
// the current text batch; outside one it is wrapped in an implicit
// BeginText/EndText pair.
func (b *Batcher) AddText(x, y float32, text string, colorARGB uint32, font *atlas.Font, pixelSize float64, shaper *atlas.Shaper, mgr *atlas.Manager) error {
	if b.isText {
		return b.addGlyphs(x, y, text, colorARGB, font, pixelSize, shaper, mgr)
	}
	b.BeginText()
	err := b.addGlyphs(x, y, text, colorARGB, font, pixelSize, shaper, mgr)
	b.EndText()
	return err
}

// addGlyphs lays out text and appends its glyph quads to the current
// batch without changing text mode, for use inside a BeginText/EndText
// bracket shared across multiple strings.
func (b *Batcher) addGlyphs(x, y float32, text string, colorARGB uint32, font *atlas.Font, pixelSize float64, shaper *atlas.Shaper, mgr *atlas.Manager) error {
	glyphs := shaper.LayoutLine(font, text, pixelSize, atlas.DirectionLTR, float64(x), float64(y))

	for _, g := range glyphs {
		info, err := mgr.Get(g.Key, font)
		if err != nil {
			slog.Debug("batch: glyph rasterization failed, skipping", "err", err)
			continue
		}
		if info.Page < 0 {
			continue // whitespace: advance only, nothing to draw
		}

		pageTex := mgr.PageTexture(info.Page)
		if pageTex == nil {
			if err := mgr.UploadDirty(); err != nil {
				return kairoerr.Wrap(kairoerr.ResourceCreation, err, "batch: upload atlas page")
			}
			pageTex = mgr.PageTexture(info.Page)
		}
		slot := b.ensureTextureSlot(pageTex)

		left := float32(g.PenX) + info.BearingX
		top := float32(g.PenY) - info.BearingY
		b.appendRectVertices(left, top, info.QuadSize, info.QuadSize, info.U0, info.V0, info.U1, info.V1, colorARGB, slot)
	}
	return nil
}

// appendRectVertices appends 4 vertices and 6 indices for an axis-aligned
// rect in screen space, converting to clip space and the vertex color
// layout.
func (b *Batcher) appendRectVertices(x, y, w, h, u0, v0, u1, v1 float32, colorARGB uint32, slot uint32) {
	color := ColorARGBToRGBA(colorARGB)
	base := uint32(len(b.vertices))

	x0c, y0c := ToClipX(x, b.screenW), ToClipY(y, b.screenH)
	x1c, y1c := ToClipX(x+w, b.screenW), ToClipY(y+h, b.screenH)

	b.vertices = append(b.vertices,
		Vertex{X: x0c, Y: y0c, U: u0, V: v0, Color: color, TexSlot: slot},
		Vertex{X: x1c, Y: y0c, U: u1, V: v0, Color: color, TexSlot: slot},
		Vertex{X: x1c, Y: y1c, U: u1, V: v1, Color: color, TexSlot: slot},
		Vertex{X: x0c, Y: y1c, U: u0, V: v1, Color: color, TexSlot: slot},
	)
	b.indices = append(b.indices, base, base+1, base+2, base+2, base+3, base)
	b.maybeFlushForCapacity()
}

func (b *Batcher) maybeFlushForCapacity() {
	if len(b.vertices) >= b.maxVertices {
		b.flush()
	}
}

// flush implements the batch-flush algorithm: allocate ring-buffer space,
// copy geometry, bind pipeline/textures/scissor, and issue one indexed
// draw call.
func (b *Batcher) flush() {
	if len(b.vertices) == 0 || b.ctx == nil {
		return
	}
	defer kairoprof.Begin("batch.flush")()

	vbytes := vertexBytes(b.vertices)
	vbuf, voffset, err := b.vertexRing.Allocate(uint64(len(vbytes)))
	if err != nil {
		slog.Warn("batch: vertex ring buffer exhausted, dropping batch", "err", err)
		b.resetBatch()
		return
	}
	if err := b.device.WriteBuffer(vbuf, voffset, vbytes); err != nil {
		slog.Warn("batch: vertex upload failed, dropping batch", "err", err)
		b.resetBatch()
		return
	}

	ibytes := indexBytes(b.indices)
	ibuf, ioffset, err := b.indexRing.Allocate(uint64(len(ibytes)))
	if err != nil {
		slog.Warn("batch: index ring buffer exhausted, dropping batch", "err", err)
		b.resetBatch()
		return
	}
	if err := b.device.WriteBuffer(ibuf, ioffset, ibytes); err != nil {
		slog.Warn("batch: index upload failed, dropping batch", "err", err)
		b.resetBatch()
		return
	}

	variant := selectVariant(b.isText, b.textured)
	pipeline, err := b.pipelines.get(variant)
	if err != nil {
		slog.Warn("batch: pipeline unavailable, dropping batch", "err", err)
		b.resetBatch()
		return
	}

	b.ctx.SetViewport(b.viewport)
	b.ctx.SetScissor(scissorToRect(b.effectiveScissor()))
	b.ctx.BindPipeline(pipeline)

	for slot, tex := range b.textures {
		if tex != nil {
			b.ctx.BindTexture(uint32(slot), tex, b.sampler)
		}
	}

	b.ctx.Draw(rhi.DrawCmd{
		IndexCount:   uint32(len(b.indices)),
		VertexBuffer: vbuf,
		VertexOffset: voffset,
		IndexBuffer:  ibuf,
		IndexOffset:  ioffset,
	})

	b.stats.DrawCalls++
	b.stats.VerticesRendered += uint64(len(b.vertices))
	b.stats.IndicesRendered += uint64(len(b.indices))
	b.stats.BatchesCreated++
	b.stats.TextureSwitches += b.slotSwitches
	b.slotSwitches = 0

	b.resetBatch()
}

func scissorToRect(s ScissorRect) rhi.Rect {
	return rhi.Rect{X: int32(s.X), Y: int32(s.Y), Width: int32(s.W), Height: int32(s.H)}
}
