// Package block renders structured content blocks (headings, wrapped
// paragraphs, code listings, bullet items) into a flowing document.
// Each block applies its Theme style, draws through the Doc primitives
// and leaves the cursor below itself; page breaks inside a block fall
// out of the per-line drawing, so a block may straddle pages while no
// single line ever does.
package block

import (
	"strings"

	octavo "github.com/octavo-go/octavo"
)

// Writer renders blocks into a Doc using a Theme.
type Writer struct {
	doc   *octavo.Doc
	theme Theme
}

// NewWriter wraps d with the default theme.
func NewWriter(d *octavo.Doc) *Writer {
	return &Writer{doc: d, theme: DefaultTheme()}
}

// SetTheme replaces the theme for subsequent blocks.
func (w *Writer) SetTheme(t Theme) { w.theme = t }

// Doc returns the underlying document for mixing in raw drawing calls.
func (w *Writer) Doc() *octavo.Doc { return w.doc }

// Title draws a document title block.
func (w *Writer) Title(text string) error {
	return w.heading(w.theme.Title, text)
}

// Section draws a section heading.
func (w *Writer) Section(text string) error {
	return w.heading(w.theme.Section, text)
}

// Subsection draws a subsection heading.
func (w *Writer) Subsection(text string) error {
	return w.heading(w.theme.Subsection, text)
}

// Headings draw as a single unwrapped line; overlong text runs past the
// right margin rather than reflowing.
func (w *Writer) heading(s TextStyle, text string) error {
	w.apply(s)
	left, _, _, _ := w.doc.Margins()
	w.doc.SetX(left)
	if err := w.doc.Cell(0, s.LineHeight, text, octavo.AlignLeft, false); err != nil {
		return err
	}
	if err := w.doc.Ln(s.LineHeight); err != nil {
		return err
	}
	return w.doc.Advance(s.GapAfter)
}

// Paragraph draws body text wrapped at the content width. Explicit
// newlines are kept; words wider than a full line break mid-word.
func (w *Writer) Paragraph(text string) error {
	s := w.theme.Body
	w.apply(s)
	return w.flow(s, text, 0)
}

// Bullet draws one list item: the marker glyph followed by the item
// text, wrapped at the indented width.
func (w *Writer) Bullet(text string) error {
	s := w.theme.Bullet
	w.apply(s.TextStyle)
	return w.flow(s.TextStyle, s.Marker+text, s.Indent)
}

func (w *Writer) flow(s TextStyle, text string, indent float64) error {
	left, _, _, _ := w.doc.Margins()
	maxW := w.doc.ContentWidth() - indent - 2*w.doc.CellMargin()
	for _, line := range wrapLines(w.doc.TextWidth, text, maxW) {
		w.doc.SetX(left + indent)
		if err := w.doc.Cell(0, s.LineHeight, line, octavo.AlignLeft, false); err != nil {
			return err
		}
		if err := w.doc.Ln(s.LineHeight); err != nil {
			return err
		}
	}
	return w.doc.Advance(s.GapAfter)
}

// Code draws a listing on a filled background, one cell per source
// line. Lines are never wrapped, so each stays whole across page
// breaks; surrounding blank lines are trimmed first.
func (w *Writer) Code(src string) error {
	s := w.theme.Code
	w.apply(s.TextStyle)
	w.doc.SetFillColor(s.Fill.R, s.Fill.G, s.Fill.B)
	left, _, _, _ := w.doc.Margins()
	for _, line := range strings.Split(strings.TrimSpace(src), "\n") {
		w.doc.SetX(left)
		if err := w.doc.Cell(0, s.LineHeight, s.Indent+line, octavo.AlignLeft, true); err != nil {
			return err
		}
		if err := w.doc.Ln(s.LineHeight); err != nil {
			return err
		}
	}
	return w.doc.Advance(s.GapAfter)
}

// Spacer moves the cursor down by h and back to the left margin.
func (w *Writer) Spacer(h float64) error {
	return w.doc.Ln(h)
}

func (w *Writer) apply(s TextStyle) {
	w.doc.SetFont(s.Family, s.Style, s.Size)
	w.doc.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
}
