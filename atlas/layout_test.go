package atlas

import "testing"

func TestShapeRunProducesOneGlyphPerRune(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()

	glyphs := shaper.ShapeRun(font, "abc", 16, DirectionLTR)
	if len(glyphs) != 3 {
		t.Fatalf("ShapeRun(\"abc\") produced %d glyphs, want 3", len(glyphs))
	}
	for i, g := range glyphs {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d has non-positive XAdvance: %v", i, g.XAdvance)
		}
	}
}

func TestShapeRunIsCached(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()

	_ = shaper.ShapeRun(font, "hello", 16, DirectionLTR)
	stats := shaper.CacheStats()
	if stats.Misses != 1 {
		t.Fatalf("expected 1 miss after first shape, got %+v", stats)
	}

	_ = shaper.ShapeRun(font, "hello", 16, DirectionLTR)
	stats = shaper.CacheStats()
	if stats.Hits != 1 {
		t.Fatalf("expected 1 hit after repeat shape, got %+v", stats)
	}
}

func TestLayoutLineAdvancesPenPosition(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()

	glyphs := shaper.LayoutLine(font, "hi", 16, DirectionLTR, 0, 0)
	if len(glyphs) != 2 {
		t.Fatalf("LayoutLine(\"hi\") produced %d glyphs, want 2", len(glyphs))
	}
	if glyphs[1].PenX <= glyphs[0].PenX {
		t.Errorf("second glyph should be positioned after the first: %+v", glyphs)
	}
	for _, g := range glyphs {
		if g.Key.Font != font.ID() {
			t.Errorf("glyph key has wrong font id: %+v", g.Key)
		}
	}
}

func TestSegmentBidiSingleRunForLatin(t *testing.T) {
	runs := segmentBidi("hello world", DirectionLTR)
	if len(runs) != 1 {
		t.Fatalf("expected a single LTR run for pure Latin text, got %d: %+v", len(runs), runs)
	}
	if runs[0].Direction != DirectionLTR {
		t.Errorf("expected DirectionLTR, got %v", runs[0].Direction)
	}
}
