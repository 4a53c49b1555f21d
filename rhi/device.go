package rhi

// Device creates and owns GPU resources. A Device implementation is the
// only place backend-specific code lives; every other package in this
// module depends only on the interfaces in this package.
type Device interface {
	// CreateBuffer allocates a new buffer. Returns a kairoerr.Error of Kind
	// ResourceCreation on failure.
	CreateBuffer(desc BufferDesc) (Buffer, error)

	// CreateTexture allocates a new texture. Returns a kairoerr.Error of
	// Kind ResourceCreation on failure.
	CreateTexture(desc TextureDesc) (Texture, error)

	// CreateSampler allocates a new sampler.
	CreateSampler(desc SamplerDesc) (Sampler, error)

	// CreatePipeline allocates a new pipeline state object. Returns a
	// kairoerr.Error of Kind Shader or ResourceCreation on failure.
	CreatePipeline(desc PipelineDesc) (PipelineState, error)

	// WriteBuffer uploads data into dst at the given byte offset. The
	// batcher uses it to fill the ranges it allocates from its ring
	// buffers; atlas pages are updated through WriteTexture.
	WriteBuffer(dst Buffer, offset uint64, data []byte) error

	// WriteTexture uploads pixel data into a rectangular region of dst.
	WriteTexture(dst Texture, region Rect, data []byte, bytesPerRow uint32) error

	// BeginFrame returns a new Context for recording one frame's commands.
	BeginFrame() (Context, error)

	// Submit executes the commands recorded on ctx and presents, if the
	// device is associated with a swap chain.
	Submit(ctx Context) error
}
