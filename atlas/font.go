package atlas

import (
	"bytes"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/kairoui/engine/kairoerr"
)

// FontID uniquely identifies a loaded Font for glyph-key purposes. It is
// assigned sequentially at load time, not derived from content, since two
// Font values loaded from identical bytes are still distinct caches.
type FontID uint32

// Font wraps one parsed font file with the two views the pipeline needs:
// an sfnt.Font for outline extraction (feeding the SDF generator) and a
// go-text/typesetting font.Font for shaping (feeding layout).
type Font struct {
	id         FontID
	name       string
	sfntFont   *sfnt.Font
	shapeFont  *gotextfont.Font
	unitsPerEm int32

	extractorPool sync.Pool
}

var fontIDCounter struct {
	mu   sync.Mutex
	next FontID
}

func nextFontID() FontID {
	fontIDCounter.mu.Lock()
	defer fontIDCounter.mu.Unlock()
	fontIDCounter.next++
	return fontIDCounter.next
}

// ParseFont parses TTF/OTF bytes into a Font. The data is parsed twice,
// once per library, since sfnt.Font and go-text's font.Font serve
// different, non-interchangeable pipeline stages.
func ParseFont(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, kairoerr.New(kairoerr.InvalidArgument, "atlas: empty font data for "+name)
	}

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.AssetLoadFailed, err, "atlas: parse sfnt font "+name)
	}

	face, err := gotextfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.AssetLoadFailed, err, "atlas: parse shaping font "+name)
	}

	unitsPerEm, err := sf.UnitsPerEm()
	if err != nil {
		unitsPerEm = 1000
	}

	f := &Font{
		id:         nextFontID(),
		name:       name,
		sfntFont:   sf,
		shapeFont:  face.Font,
		unitsPerEm: int32(unitsPerEm),
	}
	f.extractorPool.New = func() any { return newOutlineExtractor() }
	return f, nil
}

// ID returns the Font's identity, used as part of GlyphKey.
func (f *Font) ID() FontID { return f.id }

// Name returns the name this Font was loaded under, typically a file path
// or logical font family name.
func (f *Font) Name() string { return f.name }

// UnitsPerEm returns the font's design grid resolution.
func (f *Font) UnitsPerEm() int32 { return f.unitsPerEm }

// ShapeFont returns the go-text/typesetting font used for shaping.
func (f *Font) ShapeFont() *gotextfont.Font { return f.shapeFont }

// Outline extracts the vector outline for gid at pixelSize pixels per em.
func (f *Font) Outline(gid sfnt.GlyphIndex, pixelSize float64) (*Outline, error) {
	ex := f.extractorPool.Get().(*outlineExtractor)
	defer f.extractorPool.Put(ex)
	return ex.extract(f.sfntFont, gid, pixelSize)
}

// GlyphIndex resolves a rune to the font's internal glyph index.
func (f *Font) GlyphIndex(r rune) (sfnt.GlyphIndex, error) {
	var buf sfnt.Buffer
	return f.sfntFont.GlyphIndex(&buf, r)
}

// Kerning consults the font's kern table for the pair (a, b) and returns
// the horizontal advance adjustment, scaled to pixelSize pixels per em.
// Zero if the font has no kern table entry for the pair, or either rune
// has no glyph.
//
// Full shaped text (Shaper.ShapeRun/LayoutLine, and therefore
// Shaper.MeasureText/WrapText) already folds kerning into its advances
// via GPOS, so callers measuring or laying out whole runs should shape
// rather than call Kerning pairwise themselves; Kerning exists for
// callers that need the adjustment for a single, specific pair.
func (f *Font) Kerning(a, b rune, pixelSize float64) float64 {
	gidA, errA := f.GlyphIndex(a)
	gidB, errB := f.GlyphIndex(b)
	if errA != nil || errB != nil {
		return 0
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(pixelSize * 64)
	kern, err := f.sfntFont.Kern(&buf, gidA, gidB, ppem, 0)
	if err != nil {
		return 0
	}
	return float64(kern) / 64
}

// fontCache caches parsed fonts by name so repeated loads of the same
// font file (common across many text widgets sharing a family) reparse
// once. Capacity is small: real deployments load on the order of tens of
// font files, not hundreds.
var fontCache = newFontCache(64)

type fontCacheT struct {
	lru *lru.Cache[string, *Font]
}

func newFontCache(size int) *fontCacheT {
	c, err := lru.New[string, *Font](size)
	if err != nil {
		// size is a compile-time constant > 0; this cannot fail.
		panic(err)
	}
	return &fontCacheT{lru: c}
}

// LoadFontCached parses data under name, reusing a previously parsed Font
// for the same name if one is cached.
func LoadFontCached(name string, data []byte) (*Font, error) {
	if f, ok := fontCache.lru.Get(name); ok {
		return f, nil
	}
	f, err := ParseFont(name, data)
	if err != nil {
		return nil, err
	}
	fontCache.lru.Add(name, f)
	return f, nil
}
