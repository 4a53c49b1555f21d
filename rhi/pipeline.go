package rhi

// InputElementDesc describes one vertex attribute binding in a pipeline's
// input layout, naming the shader-visible semantic it feeds.
type InputElementDesc struct {
	Semantic string
	Format   VertexFormat
	Offset   uint32
}

// RasterizerDesc controls primitive rasterization. The batcher always draws
// unculled, unclipped-by-depth triangle lists, so this is intentionally
// small relative to a general-purpose RHI.
type RasterizerDesc struct {
	ScissorTestEnabled bool
}

// PipelineDesc describes a graphics pipeline state object.
type PipelineDesc struct {
	Label      string
	Variant    PipelineVariant
	Topology   PrimitiveTopology
	VertexIn   []InputElementDesc
	Blend      BlendDesc
	Rasterizer RasterizerDesc
}

// PipelineState is an opaque, immutable graphics pipeline handle. The
// batcher creates one PipelineState per PipelineVariant the first time a
// flush needs it and reuses it afterwards; it never rebuilds one.
type PipelineState interface {
	Variant() PipelineVariant

	// Apply binds this pipeline state on ctx for subsequent draw calls.
	Apply(ctx Context)

	Release()
}
