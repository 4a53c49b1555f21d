package atlas

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics holds font metrics scaled to a specific pixel size.
type Metrics struct {
	Ascent    float64
	Descent   float64
	LineGap   float64
	XHeight   float64
	CapHeight float64
}

// LineHeight returns the recommended distance between baselines of
// consecutive lines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Metrics computes font metrics scaled to pixelSize pixels per em.
func (f *Font) Metrics(pixelSize float64) Metrics {
	var buf sfnt.Buffer
	mm, err := f.sfntFont.Metrics(&buf, fixedPPEM(pixelSize), 0)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:    fixedToFloat(mm.Ascent),
		Descent:   fixedToFloat(mm.Descent),
		LineGap:   fixedToFloat(mm.Height) - fixedToFloat(mm.Ascent) - fixedToFloat(mm.Descent),
		XHeight:   fixedToFloat(mm.XHeight),
		CapHeight: fixedToFloat(mm.CapHeight),
	}
}

func fixedPPEM(pixelSize float64) fixed.Int26_6 {
	return fixed.Int26_6(pixelSize * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
