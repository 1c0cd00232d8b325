package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// TTFMetrics measures text with the advance widths of a parsed TrueType
// or OpenType font. It is intended for callers pairing the flow engine
// with backends that can draw arbitrary fonts. A TTFMetrics is not safe
// for concurrent use; it shares the single-writer discipline of the Doc
// that consumes it.
type TTFMetrics struct {
	fnt *sfnt.Font
	buf sfnt.Buffer
}

// ParseTTF parses TrueType or OpenType font data.
func ParseTTF(data []byte) (*TTFMetrics, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parsing truetype data: %w", err)
	}
	return &TTFMetrics{fnt: f}, nil
}

// Name returns the font's full name, or an empty string if the name
// table cannot be read.
func (m *TTFMetrics) Name() string {
	name, err := m.fnt.Name(&m.buf, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// RuneAdvance returns the advance of r in thousandths of an em. ok is
// false when the font has no glyph for r.
func (m *TTFMetrics) RuneAdvance(r rune) (advance float64, ok bool) {
	gi, err := m.fnt.GlyphIndex(&m.buf, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	// Querying at 1000 pixels per em yields thousandths of an em directly.
	adv, err := m.fnt.GlyphAdvance(&m.buf, gi, fixed.I(1000), xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return float64(adv) / 64, true
}

// TextWidth returns the rendered width of s at the given size in points.
// Runes without a glyph fall back to the same default as the core tables.
func (m *TTFMetrics) TextWidth(s string, size float64) float64 {
	var total float64
	for _, r := range s {
		if adv, ok := m.RuneAdvance(r); ok {
			total += adv
		} else {
			total += defaultAdvance
		}
	}
	return total * size / 1000
}
