package null

import "github.com/kairoui/engine/rhi"

// Device is a deterministic, CPU-only rhi.Device. It creates real
// byte-backed resources and records every frame submitted to it, so tests
// can inspect exactly what the code under test produced.
type Device struct {
	submitted []*Context
}

// NewDevice constructs a Device. There is no configuration: the null
// backend has no adapter, no swap chain, and no GPU memory limits.
func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateBuffer(desc rhi.BufferDesc) (rhi.Buffer, error) {
	return newBuffer(desc), nil
}

func (d *Device) CreateTexture(desc rhi.TextureDesc) (rhi.Texture, error) {
	return newTexture(desc), nil
}

func (d *Device) CreateSampler(desc rhi.SamplerDesc) (rhi.Sampler, error) {
	return newSampler(desc), nil
}

func (d *Device) CreatePipeline(desc rhi.PipelineDesc) (rhi.PipelineState, error) {
	return newPipeline(desc), nil
}

func (d *Device) WriteBuffer(dst rhi.Buffer, offset uint64, data []byte) error {
	b := dst.(*Buffer)
	return b.write(offset, data)
}

func (d *Device) WriteTexture(dst rhi.Texture, region rhi.Rect, data []byte, bytesPerRow uint32) error {
	t := dst.(*Texture)
	t.writeRegion(region, data, bytesPerRow)
	return nil
}

func (d *Device) BeginFrame() (rhi.Context, error) {
	return newContext(), nil
}

func (d *Device) Submit(ctx rhi.Context) error {
	c := ctx.(*Context)
	d.submitted = append(d.submitted, c)
	return nil
}

// SubmittedFrames returns every Context passed to Submit, in order, for
// test assertions.
func (d *Device) SubmittedFrames() []*Context {
	return d.submitted
}
