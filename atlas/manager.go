package atlas

import (
	"sync"
	"sync/atomic"

	"golang.org/x/image/font/sfnt"

	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
)

// ManagerConfig configures a Manager's page layout and SDF quality.
type ManagerConfig struct {
	// PageSize is the width and height, in pixels, of each atlas page.
	// Must be a power of two.
	PageSize int

	// Padding separates adjacent glyph cells to prevent bilinear sampling
	// bleed between neighbors.
	Padding int

	// MaxPages bounds how many pages the Manager will create before
	// returning AtlasFull.
	MaxPages int

	// CellSize is the SDF rasterization resolution per glyph, independent
	// of the glyph's requested point size.
	CellSize int

	// Range is the SDF's distance falloff range in pixels; see sdfConfig.
	Range float32
}

// DefaultManagerConfig returns sensible defaults: 1024px pages, 2px
// padding, up to 8 pages, 32px SDF cells with a 4px range.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		PageSize: 1024,
		Padding:  2,
		MaxPages: 8,
		CellSize: 32,
		Range:    4,
	}
}

// Manager owns every atlas page and the glyph lookup table for one
// rendering context. It lazily rasterizes a glyph's SDF on first request
// and reuses the cached cell afterward.
type Manager struct {
	mu     sync.RWMutex
	cfg    ManagerConfig
	device rhi.Device
	pages  []*page
	lookup map[GlyphKey]GlyphInfo
	gen    *sdfGenerator

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewManager creates a Manager that allocates its GPU-backed pages through
// device, rejecting an invalid cfg.
func NewManager(device rhi.Device, cfg ManagerConfig) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		cfg:    cfg,
		device: device,
		lookup: make(map[GlyphKey]GlyphInfo),
		gen: newSDFGenerator(sdfConfig{
			CellSize:   cfg.CellSize,
			Range:      cfg.Range,
			CurveSteps: 8,
		}),
	}, nil
}

// Get returns the GlyphInfo for key, rasterizing and packing it into a page
// on first request. Repeated calls with the same key return the identical
// cached GlyphInfo without regenerating the SDF.
func (m *Manager) Get(key GlyphKey, font *Font) (GlyphInfo, error) {
	m.mu.RLock()
	if info, ok := m.lookup[key]; ok {
		m.mu.RUnlock()
		m.hits.Add(1)
		return info, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if info, ok := m.lookup[key]; ok {
		m.hits.Add(1)
		return info, nil
	}
	m.misses.Add(1)

	info, err := m.rasterize(key, font)
	if err != nil {
		return GlyphInfo{}, err
	}

	m.lookup[key] = info
	return info, nil
}

func (m *Manager) rasterize(key GlyphKey, font *Font) (GlyphInfo, error) {
	outline, err := font.Outline(sfnt.GlyphIndex(key.GlyphID), float64(key.PixelSize))
	if err != nil {
		return GlyphInfo{}, kairoerr.Wrap(kairoerr.AssetLoadFailed, err, "atlas: extract glyph outline")
	}

	// Whitespace glyphs carry no ink: no page allocation needed, only the
	// advance matters for layout.
	if outline.Empty() {
		return GlyphInfo{Page: -1, Advance: outline.Advance}, nil
	}

	pixels, scale := m.gen.generate(outline)
	cell := m.cfg.CellSize

	pg, x, y, err := m.placeInPage(cell, cell)
	if err != nil {
		return GlyphInfo{}, err
	}

	pg.blit(x, y, cell, cell, pixels)

	atlasSize := float32(m.cfg.PageSize)
	quadSize := float32(cell) / scale
	rangeWorld := m.cfg.Range / scale

	return GlyphInfo{
		Page:      pg.index,
		X:         int32(x),
		Y:         int32(y),
		Width:     int32(cell),
		Height:    int32(cell),
		U0:        float32(x) / atlasSize,
		V0:        float32(y) / atlasSize,
		U1:        float32(x+cell) / atlasSize,
		V1:        float32(y+cell) / atlasSize,
		BearingX:  outline.MinX - rangeWorld,
		BearingY:  outline.MinY + (float32(cell)-m.cfg.Range)/scale,
		QuadSize:  quadSize,
		Advance:   outline.Advance,
	}, nil
}

// placeInPage finds a page with room for a w x h cell, creating a new page
// if none of the existing ones fit and MaxPages has not been reached.
func (m *Manager) placeInPage(w, h int) (*page, int, int, error) {
	for _, pg := range m.pages {
		if x, y, ok := pg.place(w, h); ok {
			return pg, x, y, nil
		}
	}

	if len(m.pages) >= m.cfg.MaxPages {
		return nil, 0, 0, kairoerr.Newf(kairoerr.AtlasFull,
			"atlas: all %d pages full, cannot place %dx%d glyph cell", m.cfg.MaxPages, w, h)
	}

	pg := newPage(len(m.pages), m.cfg.PageSize, m.cfg.Padding)
	if !pg.canFit(w, h) {
		return nil, 0, 0, kairoerr.Newf(kairoerr.InvalidArgument,
			"atlas: cell %dx%d does not fit a %dx%d page", w, h, m.cfg.PageSize, m.cfg.PageSize)
	}
	x, y, _ := pg.place(w, h)
	m.pages = append(m.pages, pg)
	return pg, x, y, nil
}

// UploadDirty pushes every page with pending CPU-side changes to the GPU.
// Call once per frame before drawing text.
func (m *Manager) UploadDirty() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, pg := range m.pages {
		if err := pg.upload(m.device); err != nil {
			return err
		}
	}
	return nil
}

// PageTexture returns the GPU texture for page index, or nil if the page
// does not exist yet or has never been uploaded.
func (m *Manager) PageTexture(index int) rhi.Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.pages) {
		return nil
	}
	return m.pages[index].texture
}

// PageCount returns the number of pages currently allocated.
func (m *Manager) PageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// Stats returns cumulative hit/miss counters across the Manager's
// lifetime.
func (m *Manager) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// HasGlyph reports whether key is already cached, without rasterizing it.
func (m *Manager) HasGlyph(key GlyphKey) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.lookup[key]
	return ok
}
