package null

import "github.com/kairoui/engine/rhi"

// Texture is a byte-slice-backed rhi.Texture.
type Texture struct {
	label   string
	width   uint32
	height  uint32
	format  rhi.TextureFormat
	usage   rhi.TextureUsage
	data    []byte
	release bool
}

func bytesPerPixel(f rhi.TextureFormat) uint32 {
	switch f {
	case rhi.TextureFormatRGBA8Unorm, rhi.TextureFormatBGRA8Unorm:
		return 4
	case rhi.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}

func newTexture(desc rhi.TextureDesc) *Texture {
	bpp := bytesPerPixel(desc.Format)
	return &Texture{
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		usage:  desc.Usage,
		data:   make([]byte, uint64(desc.Width)*uint64(desc.Height)*uint64(bpp)),
	}
}

func (t *Texture) Width() uint32              { return t.width }
func (t *Texture) Height() uint32             { return t.height }
func (t *Texture) Format() rhi.TextureFormat  { return t.format }
func (t *Texture) Release()                   { t.release = true }
func (t *Texture) Released() bool             { return t.release }
func (t *Texture) Bytes() []byte              { return t.data }

func (t *Texture) writeRegion(region rhi.Rect, data []byte, bytesPerRow uint32) {
	bpp := bytesPerPixel(t.format)
	dstStride := t.width * bpp
	for row := int32(0); row < region.Height; row++ {
		srcStart := uint32(row) * bytesPerRow
		srcEnd := srcStart + uint32(region.Width)*bpp
		if int(srcEnd) > len(data) {
			break
		}
		dstY := region.Y + row
		if dstY < 0 || uint32(dstY) >= t.height {
			continue
		}
		dstStart := uint32(dstY)*dstStride + uint32(region.X)*bpp
		dstEnd := dstStart + uint32(region.Width)*bpp
		if int(dstEnd) > len(t.data) {
			continue
		}
		copy(t.data[dstStart:dstEnd], data[srcStart:srcEnd])
	}
}

// Sampler is a no-op rhi.Sampler; the null backend never samples.
type Sampler struct {
	desc    rhi.SamplerDesc
	release bool
}

func newSampler(desc rhi.SamplerDesc) *Sampler {
	return &Sampler{desc: desc}
}

func (s *Sampler) Release()       { s.release = true }
func (s *Sampler) Released() bool { return s.release }
