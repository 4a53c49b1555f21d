package atlas

import "math"

// sdfConfig controls signed-distance-field rasterization of a single glyph
// cell.
type sdfConfig struct {
	// CellSize is the width and height, in pixels, of the rasterized cell
	// (excluding the shared page padding).
	CellSize int

	// Range is the distance, in pixels, at which the field saturates to
	// fully inside (255) or fully outside (0). Smaller values produce
	// crisper edges when scaled up; larger values tolerate more scaling
	// before banding appears.
	Range float32

	// CurveSteps is the number of line segments used to flatten each
	// quadratic or cubic curve.
	CurveSteps int
}

func defaultSDFConfig() sdfConfig {
	return sdfConfig{CellSize: 32, Range: 4, CurveSteps: 8}
}

// sdfGenerator rasterizes glyph outlines into single-channel signed
// distance fields. It flattens curves into line segments, then for every
// pixel in the cell computes the minimum distance to any edge and the
// inside/outside sign via the nonzero winding rule.
//
// This is a brute-force O(pixels * edges) implementation; it runs once per
// distinct (font, glyph, size) the first time it is needed, not per frame,
// so the simplicity is worth the clarity.
type sdfGenerator struct {
	cfg sdfConfig
}

func newSDFGenerator(cfg sdfConfig) *sdfGenerator {
	return &sdfGenerator{cfg: cfg}
}

type edge struct {
	x0, y0, x1, y1 float32
}

// generate rasterizes outline into a CellSize x CellSize single-channel
// bitmap. It returns the pixel buffer and the scale factor applied to fit
// the outline into the cell, which callers need to compute bearings.
func (g *sdfGenerator) generate(o *Outline) (pixels []byte, scale float32) {
	size := g.cfg.CellSize
	pixels = make([]byte, size*size)

	if o.Empty() {
		// An empty outline (e.g. space) is fully "outside" everywhere.
		return pixels, 1
	}

	edges := flattenOutline(o, g.cfg.CurveSteps)
	if len(edges) == 0 {
		return pixels, 1
	}

	w := o.MaxX - o.MinX
	h := o.MaxY - o.MinY
	span := w
	if h > span {
		span = h
	}
	if span <= 0 {
		span = 1
	}
	// Leave a margin equal to Range on every side so the field doesn't clip
	// at the cell edge.
	usable := float32(size) - 2*g.cfg.Range
	if usable < 1 {
		usable = 1
	}
	scale = usable / span

	toCell := func(x, y float32) (float32, float32) {
		cx := (x-o.MinX)*scale + g.cfg.Range
		cy := (y-o.MinY)*scale + g.cfg.Range
		return cx, float32(size) - cy // flip to top-down pixel space
	}

	scaledEdges := make([]edge, len(edges))
	for i, e := range edges {
		x0, y0 := toCell(e.x0, e.y0)
		x1, y1 := toCell(e.x1, e.y1)
		scaledEdges[i] = edge{x0, y0, x1, y1}
	}

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			cx, cy := float32(px)+0.5, float32(py)+0.5
			dist := minDistance(scaledEdges, cx, cy)
			inside := windingInside(scaledEdges, cx, cy)
			signed := dist
			if inside {
				signed = -dist
			}
			pixels[py*size+px] = distanceToByte(signed, g.cfg.Range)
		}
	}

	return pixels, scale
}

func distanceToByte(signedDistance, rangePixels float32) byte {
	// Inside is negative distance; encode inside as > 128.
	v := 0.5 - signedDistance/(2*rangePixels)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255 + 0.5)
}

func minDistance(edges []edge, px, py float32) float32 {
	best := float32(math.MaxFloat32)
	for _, e := range edges {
		d := pointSegmentDistance(px, py, e.x0, e.y0, e.x1, e.y1)
		if d < best {
			best = d
		}
	}
	return best
}

func pointSegmentDistance(px, py, x0, y0, x1, y1 float32) float32 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := x0 + t*dx
	cy := y0 + t*dy
	return hypot(px-cx, py-cy)
}

func hypot(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// windingInside determines whether (px, py) is inside the glyph using the
// nonzero winding rule: cast a ray in +x and sum signed crossings.
func windingInside(edges []edge, px, py float32) bool {
	winding := 0
	for _, e := range edges {
		y0, y1 := e.y0, e.y1
		if y0 == y1 {
			continue
		}
		if (py >= y0 && py < y1) || (py >= y1 && py < y0) {
			t := (py - y0) / (y1 - y0)
			x := e.x0 + t*(e.x1-e.x0)
			if x > px {
				if y1 > y0 {
					winding++
				} else {
					winding--
				}
			}
		}
	}
	return winding != 0
}

func flattenOutline(o *Outline, steps int) []edge {
	edges := make([]edge, 0, len(o.Segments)*2)
	var start, cur OutlinePoint
	have := false

	lineTo := func(to OutlinePoint) {
		if have {
			edges = append(edges, edge{cur.X, cur.Y, to.X, to.Y})
		}
		cur = to
	}

	for _, seg := range o.Segments {
		switch seg.Op {
		case OutlineMoveTo:
			if have && (cur.X != start.X || cur.Y != start.Y) {
				edges = append(edges, edge{cur.X, cur.Y, start.X, start.Y})
			}
			start = seg.Points[0]
			cur = start
			have = true
		case OutlineLineTo:
			lineTo(seg.Points[0])
		case OutlineQuadTo:
			flattenQuad(cur, seg.Points[0], seg.Points[1], steps, lineTo)
		case OutlineCubicTo:
			flattenCubic(cur, seg.Points[0], seg.Points[1], seg.Points[2], steps, lineTo)
		}
	}
	if have && (cur.X != start.X || cur.Y != start.Y) {
		edges = append(edges, edge{cur.X, cur.Y, start.X, start.Y})
	}

	return edges
}

func flattenQuad(p0, p1, p2 OutlinePoint, steps int, emit func(OutlinePoint)) {
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X
		y := mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y
		emit(OutlinePoint{X: x, Y: y})
	}
}

func flattenCubic(p0, p1, p2, p3 OutlinePoint, steps int, emit func(OutlinePoint)) {
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		mt := 1 - t
		x := mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X
		y := mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y
		emit(OutlinePoint{X: x, Y: y})
	}
}
