package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kairoui/engine/atlas"
)

// FontParams configures a FontLoader.Load call. Name overrides the font's
// registered name; if empty, the file's base name (without extension) is
// used, matching the source loader's fallback.
type FontParams struct {
	Name string
}

// FontLoader parses TTF/OTF font files into atlas.Font values, for use
// with RegisterLoader[atlas.Font].
type FontLoader struct{}

// NewFontLoader returns a FontLoader.
func NewFontLoader() *FontLoader { return &FontLoader{} }

func (l *FontLoader) Load(path string, params any) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", path, err)
	}

	name := ""
	if p, ok := params.(FontParams); ok {
		name = p.Name
	}
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	font, err := atlas.LoadFontCached(name, data)
	if err != nil {
		return nil, fmt.Errorf("asset: parse font %s: %w", path, err)
	}
	return font, nil
}

func (l *FontLoader) CanLoad(path string) bool {
	for _, ext := range l.SupportedExtensions() {
		if strings.EqualFold(filepath.Ext(path), ext) {
			return true
		}
	}
	return false
}

func (l *FontLoader) SupportedExtensions() []string {
	return []string{".ttf", ".otf"}
}

func (l *FontLoader) EstimateMemory(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}
