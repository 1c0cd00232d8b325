package octavo

import "io"

// Backend is the rendering surface a Doc draws on. Three primitives are
// sufficient for every block renderer in this module; Finish seals the
// artifact and writes it out.
//
// All coordinates are in points with the origin at the top-left corner of
// the page. PlaceText receives the baseline position of the text run and
// reports the width it consumed.
type Backend interface {
	StartPage(wPt, hPt float64) error
	PlaceText(xPt, yPt float64, s string, st Style) (widthPt float64, err error)
	FillRect(xPt, yPt, wPt, hPt float64, c Color) error
	Finish(w io.Writer, info Info) error
}

// Measurer reports the rendered width of a string in points for a given
// style. The engine consumes this capability for alignment; renderers use
// it for word wrapping.
type Measurer interface {
	TextWidth(s string, st Style) float64
}

// Info carries document metadata handed to the backend when the artifact
// is finalized.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Lang     string
}
