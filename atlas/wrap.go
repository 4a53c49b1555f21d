package atlas

import (
	"strings"
	"unicode"
)

// WrapMode selects how WrapText breaks long lines.
type WrapMode uint8

const (
	// WrapWordChar breaks at word boundaries first, falling back to
	// character boundaries for words wider than maxWidth. Default mode.
	WrapWordChar WrapMode = iota

	// WrapNone disables wrapping; lines may exceed maxWidth.
	WrapNone

	// WrapWord breaks only at word boundaries; long words overflow.
	WrapWord

	// WrapChar breaks at any character boundary.
	WrapChar
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapWord:
		return "Word"
	case WrapChar:
		return "Char"
	case WrapWordChar:
		return "WordChar"
	default:
		return "Unknown"
	}
}

// breakClass is a simplified UAX #14 line-breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZero
	breakOpen
	breakClose
	breakHyphen
	breakIdeographic
)

func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '​':
		return breakZero
	case '(', '[', '{', '“', '‘':
		return breakOpen
	case ')', ']', '}', '”', '’':
		return breakClose
	case '-', '‐', '‑', '–', '—':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0xFF00 && r <= 0xFFEF)
}

// breakOpportunity describes whether a line may break before a rune.
type breakOpportunity uint8

const (
	breakNo breakOpportunity = iota
	breakAllowed
	breakMandatory
)

func findBreakOpportunities(text string, mode WrapMode) []breakOpportunity {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	n := len(runes)
	breaks := make([]breakOpportunity, n)
	breaks[0] = breakNo

	if mode == WrapNone {
		return breaks
	}

	classes := make([]breakClass, n)
	for i, r := range runes {
		classes[i] = classifyRune(r)
	}

	for i := 1; i < n; i++ {
		breaks[i] = computeBreak(runes, classes, i, mode)
	}
	return breaks
}

func computeBreak(runes []rune, classes []breakClass, i int, mode WrapMode) breakOpportunity {
	prevRune := runes[i-1]
	currClass := classes[i]
	prevClass := classes[i-1]

	if prevRune == '\n' {
		return breakMandatory
	}
	if currClass == breakClose {
		return breakNo
	}
	if prevClass == breakOpen {
		return breakNo
	}
	if prevClass == breakZero {
		return breakAllowed
	}

	switch mode {
	case WrapChar:
		return breakAllowed
	case WrapWord, WrapWordChar:
		return computeWordBreak(prevRune, runes[i], prevClass, currClass)
	default:
		return breakNo
	}
}

func computeWordBreak(prevRune, currRune rune, prevClass, currClass breakClass) breakOpportunity {
	if prevClass == breakSpace {
		return breakAllowed
	}
	if prevClass == breakHyphen && currClass != breakHyphen {
		return breakAllowed
	}
	if currClass == breakIdeographic {
		return breakAllowed
	}
	if prevClass == breakIdeographic && currClass != breakClose {
		return breakAllowed
	}
	if isBreakBetweenCategories(prevRune, currRune) {
		return breakAllowed
	}
	return breakNo
}

func isBreakBetweenCategories(prev, curr rune) bool {
	if (unicode.IsLetter(prev) || unicode.IsDigit(prev)) && unicode.IsPunct(curr) {
		if curr != '\'' && curr != '.' && curr != ',' {
			return true
		}
	}
	if unicode.IsPunct(prev) && prev != '\'' && unicode.IsLetter(curr) {
		return true
	}
	return false
}

type wrapTextInfo struct {
	text        string
	runes       []rune
	breaks      []breakOpportunity
	byteOffsets []int
}

func newWrapTextInfo(text string, mode WrapMode) *wrapTextInfo {
	runes := []rune(text)
	n := len(runes)

	offsets := make([]int, n+1)
	offset := 0
	for i, r := range runes {
		offsets[i] = offset
		offset += len(string(r))
	}
	offsets[n] = len(text)

	return &wrapTextInfo{
		text:        text,
		runes:       runes,
		breaks:      findBreakOpportunities(text, mode),
		byteOffsets: offsets,
	}
}

func (w *wrapTextInfo) canBreakAt(i int) bool {
	if i <= 0 || i >= len(w.breaks) {
		return false
	}
	return w.breaks[i] != breakNo
}

func (w *wrapTextInfo) mustBreakAt(i int) bool {
	if i <= 0 || i >= len(w.breaks) {
		return false
	}
	return w.breaks[i] == breakMandatory
}

func (w *wrapTextInfo) runeToByteOffset(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(w.byteOffsets) {
		return w.byteOffsets[len(w.byteOffsets)-1]
	}
	return w.byteOffsets[i]
}

// WrapResult is one line produced by WrapText. Start and End are byte
// offsets into the input after CRLF and lone CR have been turned into LF,
// which matches the original input when it contains no CR.
type WrapResult struct {
	Text  string
	Start int
	End   int
}

// WrapText splits text into lines no wider than maxWidth pixels when set in
// font at pixelSize, honoring explicit newlines as paragraph breaks and
// wrapping each paragraph independently according to mode. Whitespace at
// a break is left out of both lines. With WrapNone, or maxWidth <= 0, the
// whole text comes back as one result, newlines included.
//
// Line-break decisions shape each candidate rune on its own through s, so
// kerning between adjacent runes is not counted and a line's laid-out
// width can differ from the measured sum by that kerning.
func (s *Shaper) WrapText(text string, font *Font, pixelSize float64, maxWidth float64, mode WrapMode) []WrapResult {
	if text == "" || maxWidth <= 0 || mode == WrapNone {
		return []WrapResult{{Text: text, Start: 0, End: len(text)}}
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	paragraphs := strings.Split(normalized, "\n")

	results := make([]WrapResult, 0, len(paragraphs))
	byteOffset := 0

	for _, para := range paragraphs {
		if para == "" {
			results = append(results, WrapResult{Start: byteOffset, End: byteOffset})
			byteOffset++
			continue
		}

		paraResults := s.wrapParagraph(para, font, pixelSize, maxWidth, mode)
		for i := range paraResults {
			paraResults[i].Start += byteOffset
			paraResults[i].End += byteOffset
		}
		results = append(results, paraResults...)
		byteOffset += len(para) + 1
	}

	return results
}

func (s *Shaper) wrapParagraph(para string, font *Font, pixelSize, maxWidth float64, mode WrapMode) []WrapResult {
	w := newWrapTextInfo(para, mode)
	if len(w.runes) == 0 {
		return []WrapResult{{Text: para, Start: 0, End: len(para)}}
	}

	results := make([]WrapResult, 0, 4)
	lineStart := 0

	for lineStart < len(w.runes) {
		lineEnd := s.findLineEnd(w, lineStart, font, pixelSize, maxWidth, mode)

		trimEnd := lineEnd
		for trimEnd > lineStart && unicode.IsSpace(w.runes[trimEnd-1]) {
			trimEnd--
		}
		startByte := w.runeToByteOffset(lineStart)
		endByte := w.runeToByteOffset(trimEnd)
		results = append(results, WrapResult{
			Text:  w.text[startByte:endByte],
			Start: startByte,
			End:   endByte,
		})

		lineStart = lineEnd
		for lineStart < len(w.runes) && unicode.IsSpace(w.runes[lineStart]) {
			lineStart++
		}
	}

	return results
}

func (s *Shaper) findLineEnd(w *wrapTextInfo, lineStart int, font *Font, pixelSize, maxWidth float64, mode WrapMode) int {
	if lineStart >= len(w.runes) {
		return lineStart
	}

	var width float64
	lastBreakPoint := -1

	for i := lineStart; i < len(w.runes); i++ {
		if w.mustBreakAt(i) && i > lineStart {
			return i
		}

		width += s.measureRune(w.runes[i], font, pixelSize)

		if w.canBreakAt(i) {
			lastBreakPoint = i
		}

		if width > maxWidth && i > lineStart {
			return calculateLineBreakPosition(w, i, lineStart, lastBreakPoint, mode)
		}
	}

	return len(w.runes)
}

func calculateLineBreakPosition(w *wrapTextInfo, pos, lineStart, lastBreakPoint int, mode WrapMode) int {
	if lastBreakPoint > lineStart {
		return lastBreakPoint
	}

	switch mode {
	case WrapWordChar, WrapChar:
		return pos
	case WrapWord:
		for j := pos; j < len(w.runes); j++ {
			if w.canBreakAt(j) {
				return j
			}
		}
		return len(w.runes)
	default:
		return pos
	}
}

// measureRune returns the shaped advance width of a single rune at
// pixelSize. It shapes the rune alone through s, so kerning with its
// neighbours is not included.
func (s *Shaper) measureRune(r rune, font *Font, pixelSize float64) float64 {
	glyphs := s.ShapeRun(font, string(r), pixelSize, DirectionLTR)
	var width float64
	for _, g := range glyphs {
		width += g.XAdvance
	}
	return width
}

// MeasureText returns the total shaped advance width of text set in font
// at pixelSize, ignoring wrapping. It shapes the whole string through s,
// the same path LayoutLine uses to position glyphs, so measure(text)
// agrees with the bounding box of LayoutLine's output for the same text
// and font.
func (s *Shaper) MeasureText(text string, font *Font, pixelSize float64) float64 {
	if text == "" || font == nil {
		return 0
	}
	glyphs := s.ShapeRun(font, text, pixelSize, DirectionLTR)
	var width float64
	for _, g := range glyphs {
		width += g.XAdvance
	}
	return width
}
