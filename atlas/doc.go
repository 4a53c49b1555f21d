// Package atlas rasterizes glyphs into a GPU-backed signed distance field
// texture atlas and shapes runs of text against them.
//
// A Font parses a TTF/OTF file twice: once into golang.org/x/image/font/sfnt
// for outline extraction, once into go-text/typesetting's font.Font for
// HarfBuzz shaping. A Manager lazily rasterizes each requested glyph at a
// given pixel size into a single-channel SDF cell, shelf-packs cells into
// square pages, and uploads only the dirty region of each page per frame.
//
// A Shaper turns runs of text into positioned glyphs, resolving bidi runs
// with the Unicode bidirectional algorithm and caching shaped output by
// (font, text, size, direction) since UI labels are shaped far more often
// than their content changes. WrapText breaks long lines at word or
// character boundaries ahead of shaping.
//
// # Usage
//
//	font, err := atlas.ParseFont("roboto.ttf", data)
//	mgr, err := atlas.NewManager(device, atlas.DefaultManagerConfig())
//	shaper := atlas.NewShaper()
//
//	lines := shaper.WrapText(text, font, 16, maxWidth, atlas.WrapWordChar)
//	for _, line := range lines {
//	    glyphs := shaper.LayoutLine(font, line.Text, 16, atlas.DirectionLTR, penX, penY)
//	    for _, g := range glyphs {
//	        info, err := mgr.Get(g.Key, font)
//	        // position a textured quad using info.U0/V0/U1/V1 and g.PenX/PenY
//	    }
//	}
//	mgr.UploadDirty()
package atlas
