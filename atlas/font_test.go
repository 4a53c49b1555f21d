package atlas

import "testing"

func TestKerningIsZeroForUnknownRune(t *testing.T) {
	font := testFont(t)
	if got := font.Kerning('a', '', 16); got != 0 {
		t.Errorf("Kerning with a private-use rune = %v, want 0", got)
	}
}

func TestKerningDoesNotPanicForOrdinaryPair(t *testing.T) {
	font := testFont(t)
	_ = font.Kerning('A', 'V', 16)
}
