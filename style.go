package octavo

import "strings"

// Color is an RGB color with 8-bit components.
type Color struct {
	R, G, B int
}

// Style is the drawing state applied to text and fills: font face, size in
// points, text color and fill color. A Style is a plain value; renderers
// snapshot and restore it around temporary changes, and the engine
// preserves it across page breaks.
type Style struct {
	Family string // "helvetica", "courier" or "times"
	Bold   bool
	Italic bool
	Size   float64 // points
	Text   Color
	Fill   Color
}

// SetFont sets the current font family, style flags and size in points.
// The style string may contain "B" for bold and "I" for italic, in the
// manner of fpdf-style libraries. An empty family keeps the current one.
func (d *Doc) SetFont(family, style string, size float64) {
	if family != "" {
		d.style.Family = strings.ToLower(family)
	}
	style = strings.ToUpper(style)
	d.style.Bold = strings.Contains(style, "B")
	d.style.Italic = strings.Contains(style, "I")
	if size > 0 {
		d.style.Size = size
	}
}

// SetTextColor sets the color used for subsequent text.
func (d *Doc) SetTextColor(r, g, b int) {
	d.style.Text = Color{R: r, G: g, B: b}
}

// SetFillColor sets the color used for subsequent cell and rectangle fills.
func (d *Doc) SetFillColor(r, g, b int) {
	d.style.Fill = Color{R: r, G: g, B: b}
}

// Style returns a snapshot of the current drawing state.
func (d *Doc) Style() Style {
	return d.style
}

// SetStyle restores a previously captured drawing state.
func (d *Doc) SetStyle(s Style) {
	d.style = s
}
