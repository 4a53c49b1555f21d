package atlas

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/kairoui/engine/internal/cache"
)

// Direction is the reading direction of a run of shaped text.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// ShapedGlyph is one positioned glyph produced by shaping a run of text.
type ShapedGlyph struct {
	GlyphID  uint16
	Cluster  int
	X, Y     float64
	XAdvance float64
	YAdvance float64
}

// bidiRun is a maximal substring of uniform bidi direction.
type bidiRun struct {
	Text      string
	Start     int
	End       int
	Direction Direction
}

// segmentBidi splits text into directional runs using the Unicode
// bidirectional algorithm, seeded with baseDir as the paragraph default.
func segmentBidi(text string, baseDir Direction) []bidiRun {
	if text == "" {
		return nil
	}

	defaultDir := bidi.LeftToRight
	if baseDir == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return []bidiRun{{Text: text, Start: 0, End: len(text), Direction: baseDir}}
	}

	ordering, err := p.Order()
	if err != nil {
		return []bidiRun{{Text: text, Start: 0, End: len(text), Direction: baseDir}}
	}

	runes := []rune(text)
	byteOffsets := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		byteOffsets[i] = offset
		offset += len(string(r))
	}
	byteOffsets[len(runes)] = len(text)

	runs := make([]bidiRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		endRune++ // Pos returns an inclusive end rune index
		if startRune < 0 || endRune > len(runes) || startRune >= endRune {
			continue
		}

		dir := DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}

		startByte, endByte := byteOffsets[startRune], byteOffsets[endRune]
		runs = append(runs, bidiRun{
			Text:      text[startByte:endByte],
			Start:     startByte,
			End:       endByte,
			Direction: dir,
		})
	}

	if len(runs) == 0 {
		return []bidiRun{{Text: text, Start: 0, End: len(text), Direction: baseDir}}
	}
	return runs
}

// shapedRunKey identifies a cached shaping result.
type shapedRunKey struct {
	font      FontID
	text      string
	pixelSize uint16
	dir       Direction
}

func shapedRunHash(k shapedRunKey) uint64 {
	h := cache.StringHasher(fmt.Sprintf("%d|%d|%d|%s", k.font, k.pixelSize, k.dir, k.text))
	return h
}

// Shaper turns text into positioned glyphs using HarfBuzz shaping, caching
// shaped runs so repeated layout of the same string (common for static UI
// labels) doesn't re-shape every frame.
type Shaper struct {
	pool  sync.Pool
	cache *cache.ShardedCache[shapedRunKey, []ShapedGlyph]
}

// NewShaper creates a Shaper with a shaped-run cache sized for typical UI
// workloads.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		cache: cache.NewSharded[shapedRunKey, []ShapedGlyph](64, shapedRunHash),
	}
}

// ShapeRun shapes text in font at pixelSize, returning positioned glyphs
// relative to a pen starting at the origin.
func (s *Shaper) ShapeRun(font *Font, text string, pixelSize float64, dir Direction) []ShapedGlyph {
	if text == "" || font == nil {
		return nil
	}

	key := shapedRunKey{font: font.ID(), text: text, pixelSize: uint16(pixelSize), dir: dir}
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	glyphs := s.shape(font, text, pixelSize, dir)
	s.cache.Set(key, glyphs)
	return glyphs
}

func (s *Shaper) shape(font *Font, text string, pixelSize float64, dir Direction) []ShapedGlyph {
	face := gotextfont.NewFace(font.ShapeFont())
	runes := []rune(text)

	hbDir := di.DirectionLTR
	if dir == DirectionRTL {
		hbDir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: hbDir,
		Face:      face,
		Size:      fixed.Int26_6(pixelSize * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	s.pool.Put(shaper)

	return convertShapedGlyphs(output.Glyphs, hbDir)
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func convertShapedGlyphs(glyphs []shaping.Glyph, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x, y float64

	for i, g := range glyphs {
		xOff := fixedToFloat(g.XOffset)
		yOff := fixedToFloat(g.YOffset)

		result[i] = ShapedGlyph{
			GlyphID: uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + xOff,
			Y:       y + yOff,
		}

		if dir.IsVertical() {
			adv := fixedToFloat(g.Advance)
			result[i].YAdvance = adv
			y += adv
		} else {
			adv := fixedToFloat(g.Advance)
			result[i].XAdvance = adv
			x += adv
		}
	}

	return result
}

// PositionedGlyph is a shaped glyph placed at an absolute pen position
// within a laid-out line, ready to be looked up in an atlas Manager.
type PositionedGlyph struct {
	Key     GlyphKey
	PenX    float64
	PenY    float64
	Cluster int
}

// LayoutLine shapes text as one visual line, resolving bidi runs in visual
// order and stacking their glyphs left to right from penX.
func (s *Shaper) LayoutLine(font *Font, text string, pixelSize float64, baseDir Direction, penX, penY float64) []PositionedGlyph {
	runs := segmentBidi(text, baseDir)
	fontID := font.ID()
	pixelSizeKey := uint16(pixelSize)

	out := make([]PositionedGlyph, 0, len(text))
	x := penX

	for _, run := range runs {
		glyphs := s.ShapeRun(font, run.Text, pixelSize, run.Direction)
		var runWidth float64
		for _, g := range glyphs {
			out = append(out, PositionedGlyph{
				Key:     GlyphKey{Font: fontID, GlyphID: g.GlyphID, PixelSize: pixelSizeKey},
				PenX:    x + g.X,
				PenY:    penY + g.Y,
				Cluster: run.Start + g.Cluster,
			})
			runWidth += g.XAdvance
		}
		x += runWidth
	}

	return out
}

// CacheStats reports the Shaper's shaped-run cache hit/miss counters.
func (s *Shaper) CacheStats() cache.Stats {
	return s.cache.Stats()
}
