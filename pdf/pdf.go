// Package pdf implements the standard rendering backend for the flow
// engine: an octavo.Backend that accumulates per-page content streams and
// serializes them as a PDF with Standard-14 fonts and WinAnsi text.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/font"
)

// Backend collects drawing operations and writes the PDF artifact when
// the document is finalized. Create one with New and hand it to
// octavo.New, or use NewDocument for the common pairing.
type Backend struct {
	pages    []*bytes.Buffer
	cur      *bytes.Buffer
	pageW    float64 // points
	pageH    float64
	fonts    map[string]int // PostScript base name -> /F index
	fontIDs  []string       // index order for the resource dict
	compress bool
	creation time.Time
	finished bool
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithCompression toggles FlateDecode compression of content streams.
// Compression is on by default; tests and debugging turn it off to keep
// streams readable.
func WithCompression(on bool) BackendOption {
	return func(b *Backend) {
		b.compress = on
	}
}

// WithCreationDate fixes the CreationDate written to the document
// information dictionary. The default is the time of finalization.
func WithCreationDate(t time.Time) BackendOption {
	return func(b *Backend) {
		b.creation = t
	}
}

// New creates an empty PDF backend.
func New(opts ...BackendOption) *Backend {
	b := &Backend{
		fonts:    make(map[string]int),
		compress: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewDocument creates a Doc drawing on a fresh PDF backend. This is the
// usual entry point for composing a PDF.
func NewDocument(opts ...octavo.Option) (*octavo.Doc, error) {
	return octavo.New(New(), opts...)
}

// StartPage opens a new page. Every page of a document must share the
// same dimensions.
func (b *Backend) StartPage(wPt, hPt float64) error {
	if b.finished {
		return fmt.Errorf("pdf: backend already finalized")
	}
	if wPt <= 0 || hPt <= 0 {
		return fmt.Errorf("pdf: page size %.2f x %.2f", wPt, hPt)
	}
	if len(b.pages) == 0 {
		b.pageW, b.pageH = wPt, hPt
	} else if wPt != b.pageW || hPt != b.pageH {
		return fmt.Errorf("pdf: page size %.2fx%.2f differs from first page %.2fx%.2f",
			wPt, hPt, b.pageW, b.pageH)
	}
	b.cur = &bytes.Buffer{}
	b.pages = append(b.pages, b.cur)
	return nil
}

// PlaceText draws s with its baseline at (x, y), top-left origin, and
// returns the width consumed.
func (b *Backend) PlaceText(x, y float64, s string, st octavo.Style) (float64, error) {
	if b.cur == nil {
		return 0, fmt.Errorf("pdf: no open page")
	}
	name, ok := font.BaseName(st.Family, st.Bold, st.Italic)
	if !ok {
		return 0, fmt.Errorf("pdf: unsupported font family %q", st.Family)
	}
	idx, ok := b.fonts[name]
	if !ok {
		idx = len(b.fonts) + 1
		b.fonts[name] = idx
		b.fontIDs = append(b.fontIDs, name)
	}
	fmt.Fprintf(b.cur, "q %s BT /F%d %.2f Tf %.2f %.2f Td (%s) Tj ET Q\n",
		colorOp(st.Text), idx, st.Size, x, b.pageH-y, escape(font.EncodeWinAnsi(s)))
	return font.Width(st.Family, st.Bold, st.Italic, st.Size, s), nil
}

// FillRect draws a filled rectangle with its top-left corner at (x, y).
func (b *Backend) FillRect(x, y, w, h float64, c octavo.Color) error {
	if b.cur == nil {
		return fmt.Errorf("pdf: no open page")
	}
	fmt.Fprintf(b.cur, "q %s %.2f %.2f %.2f %.2f re f Q\n",
		colorOp(c), x, b.pageH-y-h, w, h)
	return nil
}

// colorOp renders a nonstroking color operator. Black uses the short
// grayscale form, matching the streams this module's reader expects.
func colorOp(c octavo.Color) string {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return "0 g"
	}
	return fmt.Sprintf("%.3f %.3f %.3f rg",
		float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// escape protects the PDF string delimiters in WinAnsi-encoded text.
func escape(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '\\', '(', ')':
			out = append(out, '\\', c)
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, c)
		}
	}
	return out
}
