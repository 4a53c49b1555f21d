package atlas

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi/null"
)

func testManager(t *testing.T) (*Manager, *Font) {
	t.Helper()
	device := null.NewDevice()
	mgr, err := NewManager(device, DefaultManagerConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	font := testFont(t)
	return mgr, font
}

func TestManagerConfigValidation(t *testing.T) {
	device := null.NewDevice()
	cfg := DefaultManagerConfig()
	cfg.PageSize = 100 // not a power of two

	_, err := NewManager(device, cfg)
	if err == nil {
		t.Fatal("expected error for non-power-of-two PageSize")
	}
	if !kairoerr.Is(err, kairoerr.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestManagerGetIsIdempotent(t *testing.T) {
	mgr, font := testManager(t)
	gid, err := font.GlyphIndex('A')
	if err != nil {
		t.Fatalf("GlyphIndex: %v", err)
	}
	key := GlyphKey{Font: font.ID(), GlyphID: uint16(gid), PixelSize: 32}

	first, err := mgr.Get(key, font)
	if err != nil {
		t.Fatalf("Get (first): %v", err)
	}
	second, err := mgr.Get(key, font)
	if err != nil {
		t.Fatalf("Get (second): %v", err)
	}

	if first != second {
		t.Fatalf("Get returned different GlyphInfo on repeat lookup: %+v vs %+v", first, second)
	}

	hits, misses := mgr.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", hits, misses)
	}
}

func TestManagerDistinctGlyphsDoNotOverlap(t *testing.T) {
	mgr, font := testManager(t)

	letters := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	type region struct {
		page           int
		x0, y0, x1, y1 int32
	}
	var regions []region

	for _, r := range letters {
		gid, err := font.GlyphIndex(r)
		if err != nil {
			t.Fatalf("GlyphIndex(%q): %v", r, err)
		}
		key := GlyphKey{Font: font.ID(), GlyphID: uint16(gid), PixelSize: 24}
		info, err := mgr.Get(key, font)
		if err != nil {
			t.Fatalf("Get(%q): %v", r, err)
		}
		if info.Page < 0 {
			continue // whitespace or empty glyph, no page region to check
		}
		regions = append(regions, region{info.Page, info.X, info.Y, info.X + info.Width, info.Y + info.Height})
	}

	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]
			if a.page != b.page {
				continue
			}
			overlapX := a.x0 < b.x1 && b.x0 < a.x1
			overlapY := a.y0 < b.y1 && b.y0 < a.y1
			if overlapX && overlapY {
				t.Fatalf("glyph cells %d and %d overlap on page %d: %+v vs %+v", i, j, a.page, a, b)
			}
		}
	}
}

func TestManagerUploadDirtyCreatesTexture(t *testing.T) {
	mgr, font := testManager(t)
	gid, _ := font.GlyphIndex('X')
	key := GlyphKey{Font: font.ID(), GlyphID: uint16(gid), PixelSize: 32}

	if _, err := mgr.Get(key, font); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := mgr.UploadDirty(); err != nil {
		t.Fatalf("UploadDirty: %v", err)
	}
	if mgr.PageTexture(0) == nil {
		t.Fatal("expected page 0 to have a texture after UploadDirty")
	}
}

func TestManagerWhitespaceGlyphHasNoPage(t *testing.T) {
	mgr, font := testManager(t)
	gid, err := font.GlyphIndex(' ')
	if err != nil {
		t.Fatalf("GlyphIndex(' '): %v", err)
	}
	key := GlyphKey{Font: font.ID(), GlyphID: uint16(gid), PixelSize: 16}

	info, err := mgr.Get(key, font)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if info.Page != -1 {
		t.Errorf("expected whitespace glyph to have Page -1, got %d", info.Page)
	}
}
