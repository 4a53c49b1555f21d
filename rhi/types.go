// Package rhi defines the render hardware interface: the thin contract the
// UI batcher, glyph atlas, and ring buffer render against. It describes
// shapes only — no backend is implemented here except the deterministic
// stub in rhi/null, used for tests and headless tooling.
package rhi

// BufferUsage is a bitmask describing how a buffer will be bound.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageCopySrc
	BufferUsageCopyDst
	BufferUsageMapWrite
)

// TextureFormat enumerates the pixel formats the batcher and atlas produce
// or consume.
type TextureFormat uint32

const (
	TextureFormatUnknown TextureFormat = iota
	TextureFormatRGBA8Unorm
	TextureFormatBGRA8Unorm
	TextureFormatR8Unorm // single-channel, used for SDF glyph pages
)

// TextureUsage is a bitmask describing how a texture will be bound.
type TextureUsage uint32

const (
	TextureUsageCopyDst TextureUsage = 1 << iota
	TextureUsageCopySrc
	TextureUsageSampled
	TextureUsageRenderTarget
)

// FilterMode selects nearest or linear sampling.
type FilterMode uint32

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AddressMode selects how out-of-range texture coordinates are handled.
type AddressMode uint32

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

// PrimitiveTopology selects how vertex data is assembled into primitives.
type PrimitiveTopology uint32

const (
	PrimitiveTriangleList PrimitiveTopology = iota
	PrimitiveTriangleStrip
)

// BlendFactor is one operand of a blend equation.
type BlendFactor uint32

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendOp selects how source and destination blend terms combine.
type BlendOp uint32

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendDesc describes a single render-target blend state.
type BlendDesc struct {
	Enabled   bool
	SrcColor  BlendFactor
	DstColor  BlendFactor
	ColorOp   BlendOp
	SrcAlpha  BlendFactor
	DstAlpha  BlendFactor
	AlphaOp   BlendOp
	WriteMask uint32
}

// VertexFormat describes the scalar layout of one vertex attribute.
type VertexFormat uint32

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
)

// VertexAttribute describes one attribute within a vertex buffer layout.
type VertexAttribute struct {
	Format   VertexFormat
	Offset   uint32
	Location uint32
}

// VertexLayout describes the stride and attributes of one vertex buffer.
type VertexLayout struct {
	Stride     uint32
	Attributes []VertexAttribute
}

// PipelineVariant names the fixed set of pipeline states the batcher flushes
// against. Each variant's pipeline state is created once, on first use,
// and reused for the batcher's lifetime.
type PipelineVariant uint32

const (
	PipelineOpaque PipelineVariant = iota
	PipelineTextured
	PipelineTextSDF
)

// ShaderStage identifies a programmable stage.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)
