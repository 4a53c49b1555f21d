package atlas

import (
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := ParseFont("goregular", goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

func TestWrapModeString(t *testing.T) {
	tests := []struct {
		mode WrapMode
		want string
	}{
		{WrapWordChar, "WordChar"},
		{WrapNone, "None"},
		{WrapWord, "Word"},
		{WrapChar, "Char"},
		{WrapMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("WrapMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestClassifyRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want breakClass
	}{
		{"space", ' ', breakSpace},
		{"tab", '\t', breakSpace},
		{"open paren", '(', breakOpen},
		{"close paren", ')', breakClose},
		{"hyphen", '-', breakHyphen},
		{"CJK ideograph", '一', breakIdeographic},
		{"hiragana", 'あ', breakIdeographic},
		{"latin a", 'a', breakOther},
		{"digit 1", '1', breakOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRune(tt.r); got != tt.want {
				t.Errorf("classifyRune(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestWrapTextNoWrapMode(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	text := "a very long line that would otherwise need wrapping"
	results := shaper.WrapText(text, font, 16, 10, WrapNone)
	if len(results) != 1 || results[0].Text != text {
		t.Fatalf("WrapText with WrapNone should return input unchanged, got %+v", results)
	}
}

func TestWrapTextRespectsExplicitNewlines(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	text := "line one\nline two\nline three"
	results := shaper.WrapText(text, font, 16, 10000, WrapWordChar)
	if len(results) != 3 {
		t.Fatalf("expected 3 lines from explicit newlines, got %d: %+v", len(results), results)
	}
	if results[0].Text != "line one" || results[1].Text != "line two" || results[2].Text != "line three" {
		t.Fatalf("unexpected line contents: %+v", results)
	}
}

func TestWrapTextBreaksAtWordBoundary(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	text := "the quick brown fox jumps over the lazy dog"
	full := shaper.MeasureText(text, font, 16)

	// A width that forces at least one wrap but is wide enough that every
	// line still holds multiple words.
	results := shaper.WrapText(text, font, 16, full/3, WrapWordChar)
	if len(results) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			continue
		}
		if r.Text[0] == ' ' {
			t.Errorf("line %q should not start with a leading space", r.Text)
		}
	}
}

func TestWrapTextReassemblesOriginalContent(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	text := "one two three four five six seven"
	results := shaper.WrapText(text, font, 16, 60, WrapWordChar)

	var rebuilt string
	for i, r := range results {
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += r.Text
	}
	if rebuilt != text {
		t.Fatalf("rejoining wrapped lines with single spaces = %q, want %q", rebuilt, text)
	}
}

func TestMeasureTextEmpty(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	if got := shaper.MeasureText("", font, 16); got != 0 {
		t.Errorf("MeasureText(\"\") = %v, want 0", got)
	}
}

func TestMeasureTextPositiveForNonEmpty(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	if got := shaper.MeasureText("hello", font, 16); got <= 0 {
		t.Errorf("MeasureText(\"hello\") = %v, want > 0", got)
	}
}

// TestMeasureTextAgreesWithLayoutLine is the spec's Testable Property 10:
// measuring text and summing LayoutLine's positioned-glyph advances for
// the same text and font must agree, since both now route through the
// same shaped-advance path.
func TestMeasureTextAgreesWithLayoutLine(t *testing.T) {
	font := testFont(t)
	shaper := NewShaper()
	text := "Kerning AVAWAY Test"

	measured := shaper.MeasureText(text, font, 16)

	glyphs := shaper.LayoutLine(font, text, 16, DirectionLTR, 0, 0)
	if len(glyphs) == 0 {
		t.Fatalf("LayoutLine returned no glyphs")
	}
	last := glyphs[len(glyphs)-1]
	laidOutWidth := last.PenX - glyphs[0].PenX

	// LayoutLine's span runs from the first pen position to the last, so
	// the final glyph's own advance is added before comparing it with
	// MeasureText.
	shaped := shaper.ShapeRun(font, text, 16, DirectionLTR)
	var shapedWidth float64
	for _, g := range shaped {
		shapedWidth += g.XAdvance
	}

	if measured != shapedWidth {
		t.Fatalf("MeasureText = %v, want %v (shaped run width)", measured, shapedWidth)
	}
	if laidOutWidth < 0 {
		t.Fatalf("LayoutLine produced a negative span: %v", laidOutWidth)
	}
	if got := laidOutWidth + shaped[len(shaped)-1].XAdvance; math.Abs(got-measured) > 1e-6 {
		t.Fatalf("LayoutLine span plus final advance = %v, want %v (MeasureText)", got, measured)
	}
}
