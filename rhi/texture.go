package rhi

// TextureDesc describes a texture to be created by a Device.
type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
	Format TextureFormat
	Usage  TextureUsage
}

// Texture is an opaque GPU texture handle.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() TextureFormat

	// Release returns the underlying resource to the backend.
	Release()
}

// SamplerDesc describes a sampler to be created by a Device.
type SamplerDesc struct {
	Label         string
	MinFilter     FilterMode
	MagFilter     FilterMode
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	MipLODBias    float32
	MaxAnisotropy float32
	MinLOD        float32
	MaxLOD        float32
}

// Sampler is an opaque sampler state handle.
type Sampler interface {
	Release()
}
