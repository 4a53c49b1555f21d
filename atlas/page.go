package atlas

import (
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
)

// page is one square single-channel SDF texture page, shelf-packed with
// glyph cells. Rasterization happens on the CPU into pixels; the GPU
// texture is created lazily and kept in sync via upload.
type page struct {
	index  int
	size   int
	alloc  *shelfAllocator
	pixels []byte

	texture rhi.Texture
	dirty   bool
	dirtyX0, dirtyY0, dirtyX1, dirtyY1 int32

	glyphCount int
}

func newPage(index, size, padding int) *page {
	return &page{
		index:  index,
		size:   size,
		alloc:  newShelfAllocator(size, size, padding),
		pixels: make([]byte, size*size),
	}
}

// place allocates a w x h cell on this page.
func (p *page) place(w, h int) (x, y int, ok bool) {
	return p.alloc.allocate(w, h)
}

func (p *page) canFit(w, h int) bool {
	return p.alloc.canFit(w, h)
}

// blit copies an w x h single-channel bitmap into the page at (x, y) and
// extends the dirty rectangle to cover it.
func (p *page) blit(x, y, w, h int, src []byte) {
	for row := 0; row < h; row++ {
		dstOff := (y+row)*p.size + x
		srcOff := row * w
		copy(p.pixels[dstOff:dstOff+w], src[srcOff:srcOff+w])
	}
	p.glyphCount++
	p.markDirty(int32(x), int32(y), int32(x+w), int32(y+h))
}

func (p *page) markDirty(x0, y0, x1, y1 int32) {
	if !p.dirty {
		p.dirtyX0, p.dirtyY0, p.dirtyX1, p.dirtyY1 = x0, y0, x1, y1
		p.dirty = true
		return
	}
	if x0 < p.dirtyX0 {
		p.dirtyX0 = x0
	}
	if y0 < p.dirtyY0 {
		p.dirtyY0 = y0
	}
	if x1 > p.dirtyX1 {
		p.dirtyX1 = x1
	}
	if y1 > p.dirtyY1 {
		p.dirtyY1 = y1
	}
}

// ensureTexture creates the backing GPU texture the first time it is
// needed.
func (p *page) ensureTexture(device rhi.Device) error {
	if p.texture != nil {
		return nil
	}
	tex, err := device.CreateTexture(rhi.TextureDesc{
		Label:  "glyph-atlas-page",
		Width:  uint32(p.size),
		Height: uint32(p.size),
		Format: rhi.TextureFormatR8Unorm,
		Usage:  rhi.TextureUsageCopyDst | rhi.TextureUsageSampled,
	})
	if err != nil {
		return kairoerr.Wrap(kairoerr.ResourceCreation, err, "atlas: create page texture")
	}
	p.texture = tex
	return nil
}

// upload pushes the dirty region to the GPU texture and clears dirty state.
// It is a no-op if the page has no pending changes.
func (p *page) upload(device rhi.Device) error {
	if !p.dirty {
		return nil
	}
	if err := p.ensureTexture(device); err != nil {
		return err
	}

	region := rhi.Rect{
		X:      p.dirtyX0,
		Y:      p.dirtyY0,
		Width:  p.dirtyX1 - p.dirtyX0,
		Height: p.dirtyY1 - p.dirtyY0,
	}

	rowData := make([]byte, int(region.Width)*int(region.Height))
	for row := int32(0); row < region.Height; row++ {
		srcOff := (int(region.Y+row))*p.size + int(region.X)
		dstOff := int(row) * int(region.Width)
		copy(rowData[dstOff:dstOff+int(region.Width)], p.pixels[srcOff:srcOff+int(region.Width)])
	}

	if err := device.WriteTexture(p.texture, region, rowData, uint32(region.Width)); err != nil {
		return kairoerr.Wrap(kairoerr.ResourceCreation, err, "atlas: upload page texture")
	}

	p.dirty = false
	return nil
}

func (p *page) utilization() float64 {
	return p.alloc.utilization()
}
