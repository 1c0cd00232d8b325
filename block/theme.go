package block

import (
	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/font"
)

// TextStyle is the visual parameter set of one block kind. LineHeight
// and GapAfter are in document user units.
type TextStyle struct {
	Family     string
	Style      string // "B", "I", "BI" or ""
	Size       float64
	Color      octavo.Color
	LineHeight float64
	GapAfter   float64
}

// CodeStyle extends TextStyle with the background fill and the literal
// indent prepended to every code line.
type CodeStyle struct {
	TextStyle
	Fill   octavo.Color
	Indent string
}

// BulletStyle extends TextStyle with the marker glyph and the left
// indent of the item body.
type BulletStyle struct {
	TextStyle
	Marker string
	Indent float64
}

// Theme bundles the block styles of a document.
type Theme struct {
	Title      TextStyle
	Section    TextStyle
	Subsection TextStyle
	Body       TextStyle
	Code       CodeStyle
	Bullet     BulletStyle
}

// DefaultTheme returns the standard technical-manual look: blue-accented
// bold Helvetica headings stepping down through gray, 10pt body text,
// and Courier code lines on a light gray band. Metrics assume a
// millimeter document.
func DefaultTheme() Theme {
	return Theme{
		Title: TextStyle{
			Family: font.Helvetica, Style: "B", Size: 18,
			Color:      octavo.Color{R: 0, G: 100, B: 180},
			LineHeight: 12, GapAfter: 4,
		},
		Section: TextStyle{
			Family: font.Helvetica, Style: "B", Size: 14,
			Color:      octavo.Color{R: 50, G: 50, B: 50},
			LineHeight: 10, GapAfter: 2,
		},
		Subsection: TextStyle{
			Family: font.Helvetica, Style: "B", Size: 11,
			Color:      octavo.Color{R: 80, G: 80, B: 80},
			LineHeight: 8, GapAfter: 1,
		},
		Body: TextStyle{
			Family: font.Helvetica, Size: 10,
			LineHeight: 5, GapAfter: 2,
		},
		Code: CodeStyle{
			TextStyle: TextStyle{
				Family: font.Courier, Size: 9,
				LineHeight: 5, GapAfter: 3,
			},
			Fill:   octavo.Color{R: 240, G: 240, B: 240},
			Indent: "  ",
		},
		Bullet: BulletStyle{
			TextStyle: TextStyle{
				Family: font.Helvetica, Size: 10,
				LineHeight: 5, GapAfter: 1,
			},
			Marker: "• ",
			Indent: 4,
		},
	}
}
