package atlas

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlinePoint is a single coordinate in font outline space.
type OutlinePoint struct {
	X, Y float32
}

// OutlineOp is a path construction operation.
type OutlineOp uint8

const (
	OutlineMoveTo OutlineOp = iota
	OutlineLineTo
	OutlineQuadTo
	OutlineCubicTo
)

// OutlineSegment is one step of a glyph's vector outline. Point usage
// depends on Op: MoveTo/LineTo use Points[0]; QuadTo uses Points[0] as
// control and Points[1] as the target; CubicTo uses Points[0] and
// Points[1] as controls and Points[2] as the target.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// Outline is the vector outline of a single glyph, extracted at a given
// pixel size, in pixel-space coordinates with y increasing upward.
type Outline struct {
	Segments []OutlineSegment
	MinX     float32
	MinY     float32
	MaxX     float32
	MaxY     float32
	Advance  float32
}

// Empty reports whether the outline has no drawable segments, which is the
// case for whitespace glyphs.
func (o *Outline) Empty() bool {
	return o == nil || len(o.Segments) == 0
}

// outlineExtractor extracts glyph outlines from a parsed sfnt.Font. It
// holds a reusable sfnt.Buffer, so one extractor should be used per
// goroutine rather than shared.
type outlineExtractor struct {
	buf sfnt.Buffer
}

func newOutlineExtractor() *outlineExtractor {
	return &outlineExtractor{}
}

// extract returns the outline for glyph gid rendered at pixelSize pixels
// per em. A glyph that exists but has no outline (e.g. space) yields a
// non-nil Outline with no segments and only Advance set.
func (e *outlineExtractor) extract(f *sfnt.Font, gid sfnt.GlyphIndex, pixelSize float64) (*Outline, error) {
	ppem := fixed.Int26_6(pixelSize * 64)

	segments, err := f.LoadGlyph(&e.buf, gid, ppem, nil)
	if err != nil {
		return nil, err
	}

	advance := glyphAdvance(f, &e.buf, gid, ppem)

	if len(segments) == 0 {
		return &Outline{Advance: advance}, nil
	}

	out := &Outline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		MinX:     1e10, MinY: 1e10, MaxX: -1e10, MaxY: -1e10,
		Advance: advance,
	}

	for _, seg := range segments {
		var os OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			os.Op = OutlineMoveTo
			os.Points[0] = fixedToPoint(seg.Args[0])
			out.extend(os.Points[0])
		case sfnt.SegmentOpLineTo:
			os.Op = OutlineLineTo
			os.Points[0] = fixedToPoint(seg.Args[0])
			out.extend(os.Points[0])
		case sfnt.SegmentOpQuadTo:
			os.Op = OutlineQuadTo
			os.Points[0] = fixedToPoint(seg.Args[0])
			os.Points[1] = fixedToPoint(seg.Args[1])
			out.extend(os.Points[0])
			out.extend(os.Points[1])
		case sfnt.SegmentOpCubeTo:
			os.Op = OutlineCubicTo
			os.Points[0] = fixedToPoint(seg.Args[0])
			os.Points[1] = fixedToPoint(seg.Args[1])
			os.Points[2] = fixedToPoint(seg.Args[2])
			out.extend(os.Points[0])
			out.extend(os.Points[1])
			out.extend(os.Points[2])
		}
		out.Segments = append(out.Segments, os)
	}

	return out, nil
}

func (o *Outline) extend(p OutlinePoint) {
	if p.X < o.MinX {
		o.MinX = p.X
	}
	if p.Y < o.MinY {
		o.MinY = p.Y
	}
	if p.X > o.MaxX {
		o.MaxX = p.X
	}
	if p.Y > o.MaxY {
		o.MaxY = p.Y
	}
}

func fixedToPoint(p fixed.Point26_6) OutlinePoint {
	// sfnt yields y-down coordinates; Outline is y-up.
	return OutlinePoint{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
}

func glyphAdvance(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem fixed.Int26_6) float32 {
	adv, err := f.GlyphAdvance(buf, gid, ppem, 0)
	if err != nil {
		return 0
	}
	return float32(adv) / 64
}
