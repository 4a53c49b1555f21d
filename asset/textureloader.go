package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kairoui/engine/rhi"
)

// TextureParams configures a TextureLoader.Load call. A zero value decodes
// the image's native format and uploads it with a linear-clamp sampler.
type TextureParams struct {
	Sampler rhi.SamplerDesc
}

// TextureAsset is the loaded result of a TextureLoader.Load call: a
// GPU-resident texture plus the sampler it was uploaded with.
type TextureAsset struct {
	Texture rhi.Texture
	Sampler rhi.Sampler
}

// TextureLoader decodes PNG/JPEG images via the standard library and
// uploads them through an injected Device, for use with RegisterLoader[TextureAsset].
type TextureLoader struct {
	Device rhi.Device
}

// NewTextureLoader returns a TextureLoader bound to device.
func NewTextureLoader(device rhi.Device) *TextureLoader {
	return &TextureLoader{Device: device}
}

func (l *TextureLoader) Load(path string, params any) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())
	pixels := make([]byte, width*height*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pixels[i+0] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
			i += 4
		}
	}

	tex, err := l.Device.CreateTexture(rhi.TextureDesc{
		Label:  filepath.Base(path),
		Width:  width,
		Height: height,
		Format: rhi.TextureFormatRGBA8Unorm,
		Usage:  rhi.TextureUsageCopyDst | rhi.TextureUsageSampled,
	})
	if err != nil {
		return nil, fmt.Errorf("asset: create texture for %s: %w", path, err)
	}
	region := rhi.Rect{X: 0, Y: 0, Width: int32(width), Height: int32(height)}
	if err := l.Device.WriteTexture(tex, region, pixels, width*4); err != nil {
		tex.Release()
		return nil, fmt.Errorf("asset: upload texture for %s: %w", path, err)
	}

	samplerDesc := rhi.SamplerDesc{
		Label:        filepath.Base(path) + "-sampler",
		MinFilter:    rhi.FilterLinear,
		MagFilter:    rhi.FilterLinear,
		AddressModeU: rhi.AddressClampToEdge,
		AddressModeV: rhi.AddressClampToEdge,
	}
	if p, ok := params.(TextureParams); ok && p.Sampler != (rhi.SamplerDesc{}) {
		samplerDesc = p.Sampler
	}
	sampler, err := l.Device.CreateSampler(samplerDesc)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("asset: create sampler for %s: %w", path, err)
	}

	return &TextureAsset{Texture: tex, Sampler: sampler}, nil
}

func (l *TextureLoader) CanLoad(path string) bool {
	for _, ext := range l.SupportedExtensions() {
		if strings.EqualFold(filepath.Ext(path), ext) {
			return true
		}
	}
	return false
}

func (l *TextureLoader) SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

func (l *TextureLoader) EstimateMemory(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	// Decoded RGBA8 is typically several times the compressed file size.
	// The cache keeps this estimate as the record's MemoryUsage; it is not
	// revised from the decoded texture's dimensions.
	return uint64(info.Size()) * 4
}
