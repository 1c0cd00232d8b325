// Package font provides text measurement for the Standard-14 PDF core
// fonts and for caller-supplied TrueType fonts. Widths are expressed in
// thousandths of an em, the convention of AFM metrics and PDF /Widths
// arrays.
package font

// Family names understood by BaseName and Width.
const (
	Helvetica = "helvetica"
	Courier   = "courier"
	Times     = "times"
)

// BaseName resolves a family plus style flags to the PostScript name of
// the corresponding Standard-14 font. ok is false for unknown families.
func BaseName(family string, bold, italic bool) (name string, ok bool) {
	switch family {
	case Helvetica:
		switch {
		case bold && italic:
			return "Helvetica-BoldOblique", true
		case bold:
			return "Helvetica-Bold", true
		case italic:
			return "Helvetica-Oblique", true
		}
		return "Helvetica", true
	case Courier:
		switch {
		case bold && italic:
			return "Courier-BoldOblique", true
		case bold:
			return "Courier-Bold", true
		case italic:
			return "Courier-Oblique", true
		}
		return "Courier", true
	case Times:
		switch {
		case bold && italic:
			return "Times-BoldItalic", true
		case bold:
			return "Times-Bold", true
		case italic:
			return "Times-Italic", true
		}
		return "Times-Roman", true
	}
	return "", false
}

// widthTables maps PostScript names to their metrics. The oblique
// variants share the upright tables, as in the Adobe AFM files. Courier
// is handled separately: every glyph advances 600.
var widthTables = map[string]map[rune]float64{
	"Helvetica":             helveticaWidths,
	"Helvetica-Bold":        helveticaBoldWidths,
	"Helvetica-Oblique":     helveticaWidths,
	"Helvetica-BoldOblique": helveticaBoldWidths,
	"Times-Roman":           timesWidths,
	"Times-Bold":            timesBoldWidths,
	"Times-Italic":          timesItalicWidths,
	"Times-BoldItalic":      timesBoldItalicWidths,
}

const (
	courierAdvance = 600
	defaultAdvance = 500
)

// RuneWidth returns the advance of r in thousandths of an em for the
// given face. Unknown runes fall back to a face default.
func RuneWidth(family string, bold, italic bool, r rune) float64 {
	if family == Courier {
		return courierAdvance
	}
	name, ok := BaseName(family, bold, italic)
	if !ok {
		name, _ = BaseName(Helvetica, bold, italic)
	}
	if w, ok := widthTables[name][r]; ok {
		return w
	}
	return defaultAdvance
}

// Width returns the rendered width of s at the given size in points.
func Width(family string, bold, italic bool, size float64, s string) float64 {
	if family == Courier {
		n := 0
		for range s {
			n++
		}
		return float64(n) * courierAdvance * size / 1000
	}
	var total float64
	for _, r := range s {
		total += RuneWidth(family, bold, italic, r)
	}
	return total * size / 1000
}
