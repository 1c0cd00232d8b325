// Package table builds striped data tables over a flowing document.
//
// A Table collects header and data rows, then Render draws them with
// fixed per-table row heights, a filled header line and alternating
// body fills, breaking to fresh pages between rows. Column widths are
// validated against the row contents and the content width before
// anything is drawn.
package table

import (
	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/font"
)

// FontSpec defines font properties for cell text.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // points
}

// CellStyle defines the visual appearance of a cell. Nil fields inherit
// from the styles below it in the merge order: table cell style, header
// or stripe style, row style, cell style.
type CellStyle struct {
	Fill  *octavo.Color
	Text  *octavo.Color
	Font  *FontSpec
	Align string // "L", "C" or "R"
}

// AlternateStyle defines the stripe pair applied to body rows by index
// parity. Indexing is zero-based and absolute across page breaks, so a
// break never restarts the stripe pattern.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Header        *CellStyle
	Cell          *CellStyle
	AlternateRows *AlternateStyle
}

// DefaultStyle returns the standard reference-table look: white bold
// text centered on a blue band for the header, small fixed-width body
// text, and light gray striping on even rows.
func DefaultStyle() TableStyle {
	return TableStyle{
		Header: &CellStyle{
			Fill:  &octavo.Color{R: 0, G: 100, B: 180},
			Text:  &octavo.Color{R: 255, G: 255, B: 255},
			Font:  &FontSpec{Family: font.Helvetica, Style: "B", Size: 9},
			Align: octavo.AlignCenter,
		},
		Cell: &CellStyle{
			Text: &octavo.Color{},
			Font: &FontSpec{Family: font.Courier, Size: 8},
		},
		AlternateRows: &AlternateStyle{
			Even: CellStyle{Fill: &octavo.Color{R: 248, G: 248, B: 248}},
			Odd:  CellStyle{Fill: &octavo.Color{R: 255, G: 255, B: 255}},
		},
	}
}
