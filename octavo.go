// Package octavo is a page-flow engine for composing multi-page, fixed
// layout documents from ordered streams of content blocks.
//
// A Doc owns the writing cursor, page geometry, margins and the current
// Style, and decides when content must move to a new page. Drawing is
// delegated to a Backend exposing three primitives (place text, fill
// rectangle, start page); the pdf subpackage provides the standard
// backend. Higher level block renderers live in the block, table and
// barcode subpackages, and the doctpl and dsl subpackages map document
// descriptions onto them.
//
// Each Doc is an independent value: composing several documents
// concurrently is safe as long as every Doc is driven by one goroutine.
package octavo

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/octavo-go/octavo/font"
)

// Unit names accepted by WithUnit.
const (
	UnitPoint      = "pt"
	UnitMillimeter = "mm"
	UnitCentimeter = "cm"
	UnitInch       = "in"
)

// Page size names accepted by WithPageSize.
const (
	PageSizeA3      = "A3"
	PageSizeA4      = "A4"
	PageSizeA5      = "A5"
	PageSizeLetter  = "Letter"
	PageSizeLegal   = "Legal"
	PageSizeTabloid = "Tabloid"
)

// Orientation names accepted by WithOrientation.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Text alignment values for Cell.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// pageSizesPt maps size names to portrait dimensions in points.
var pageSizesPt = map[string][2]float64{
	PageSizeA3:      {841.89, 1190.55},
	PageSizeA4:      {595.28, 841.89},
	PageSizeA5:      {420.94, 595.28},
	PageSizeLetter:  {612, 792},
	PageSizeLegal:   {612, 1008},
	PageSizeTabloid: {792, 1224},
}

// unitScales maps unit names to points per unit.
var unitScales = map[string]float64{
	UnitPoint:      1,
	UnitMillimeter: 72.0 / 25.4,
	UnitCentimeter: 72.0 / 2.54,
	UnitInch:       72,
}

// HookFunc is a running-decoration callback. The engine invokes the
// header hook after opening each page and the footer hook before closing
// one; during a hook the page-break trigger is disabled, so hook content
// must fit in the margin band.
type HookFunc func(*Doc) error

// Doc is the layout state of one document under composition: cursor,
// geometry, style and page lifecycle. Create one with New, draw through
// the Cell/FillRect primitives or the renderer subpackages, then call
// Output or OutputFile exactly once.
type Doc struct {
	backend Backend
	meas    Measurer

	k          float64 // points per user unit
	w, h       float64 // page size, user units
	wPt, hPt   float64
	lMargin    float64
	tMargin    float64
	rMargin    float64
	bMargin    float64
	trigger    float64 // h - bMargin
	cellPad    float64
	x, y       float64
	pageNo     int
	style      Style
	headerFn   HookFunc
	footerFn   HookFunc
	inHook     bool
	info       Info
	closed     bool
	finished   bool
}

// New creates a Doc drawing on the given backend. The default geometry is
// portrait A4 in millimeters with 10mm side and top margins and a 20mm
// bottom break margin. New fails fast on dimensions that leave no
// writable content area.
func New(b Backend, opts ...Option) (*Doc, error) {
	const op = "New"
	if b == nil {
		return nil, opErrorf(op, "nil backend: %w", ErrInvalidParam)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	k, ok := unitScales[cfg.unit]
	if !ok {
		return nil, opErrorf(op, "unknown unit %q: %w", cfg.unit, ErrInvalidParam)
	}

	var wPt, hPt float64
	if cfg.pageW > 0 || cfg.pageH > 0 {
		wPt, hPt = cfg.pageW*k, cfg.pageH*k
	} else {
		dims, ok := pageSizesPt[cfg.size]
		if !ok {
			return nil, opErrorf(op, "unknown page size %q: %w", cfg.size, ErrInvalidParam)
		}
		wPt, hPt = dims[0], dims[1]
	}
	if cfg.orientation == OrientationLandscape {
		wPt, hPt = hPt, wPt
	} else if cfg.orientation != OrientationPortrait {
		return nil, opErrorf(op, "unknown orientation %q: %w", cfg.orientation, ErrInvalidParam)
	}
	if wPt <= 0 || hPt <= 0 {
		return nil, opErrorf(op, "page size %.2f x %.2f: %w", wPt/k, hPt/k, ErrInvalidParam)
	}

	d := &Doc{
		backend: b,
		meas:    cfg.meas,
		k:       k,
		w:       wPt / k,
		h:       hPt / k,
		wPt:     wPt,
		hPt:     hPt,
	}
	if d.meas == nil {
		d.meas = coreMeasurer{}
	}

	margin := 28.35 / k // 1cm default
	d.lMargin, d.tMargin, d.rMargin = margin, margin, margin
	if cfg.marginsSet {
		d.lMargin, d.tMargin, d.rMargin = cfg.lMargin, cfg.tMargin, cfg.rMargin
	}
	d.bMargin = 2 * margin
	if cfg.breakSet {
		d.bMargin = cfg.bMargin
	}
	if d.lMargin < 0 || d.tMargin < 0 || d.rMargin < 0 || d.bMargin < 0 {
		return nil, opErrorf(op, "negative margin: %w", ErrInvalidParam)
	}
	d.trigger = d.h - d.bMargin
	d.cellPad = margin / 10
	if d.ContentWidth() <= 0 {
		return nil, opErrorf(op, "margins leave no horizontal content area: %w", ErrInvalidParam)
	}
	if d.trigger <= d.tMargin {
		return nil, opErrorf(op, "margins leave no vertical content area: %w", ErrInvalidParam)
	}
	return d, nil
}

// ready reports whether drawing operations are currently legal.
func (d *Doc) ready(op string) error {
	if d.closed {
		return opError(op, ErrClosed)
	}
	if d.pageNo == 0 {
		return opError(op, ErrNoPage)
	}
	return nil
}

// AddPage closes the current page, if any, and opens a new one: the
// footer hook runs on the closing page, the backend starts a new page,
// the cursor resets to the top-left content corner, the header hook runs
// on the new page, and the style active before the transition is
// restored around each hook.
func (d *Doc) AddPage() error {
	const op = "AddPage"
	if d.closed {
		return opError(op, ErrClosed)
	}
	saved := d.style
	if d.pageNo > 0 {
		if err := d.runHook(d.footerFn); err != nil {
			return err
		}
	}
	d.pageNo++
	if err := d.backend.StartPage(d.wPt, d.hPt); err != nil {
		return opError(op, err)
	}
	d.x, d.y = d.lMargin, d.tMargin
	d.style = saved
	if d.headerFn != nil {
		if err := d.runHook(d.headerFn); err != nil {
			return err
		}
		d.x = d.lMargin
		d.style = saved
	}
	return nil
}

func (d *Doc) runHook(fn HookFunc) error {
	if fn == nil {
		return nil
	}
	d.inHook = true
	err := fn(d)
	d.inHook = false
	return err
}

// Fits reports whether h units of vertical space remain above the break
// trigger on the current page. It never mutates state.
func (d *Doc) Fits(h float64) bool {
	return d.y+h <= d.trigger
}

// Advance moves the cursor down by h. The cursor may pass the break
// trigger; the break itself is performed by the next draw call, so a
// trailing gap at the exact end of a page never produces a blank page.
func (d *Doc) Advance(h float64) error {
	if err := d.ready("Advance"); err != nil {
		return err
	}
	d.y += h
	return nil
}

// Ln resets the cursor to the left margin and advances down by h.
func (d *Doc) Ln(h float64) error {
	if err := d.ready("Ln"); err != nil {
		return err
	}
	d.x = d.lMargin
	d.y += h
	return nil
}

// Cell draws one line-atomic box of height h at the cursor: an optional
// background fill in the current fill color, then txt aligned within the
// box in the current font and text color. If the box does not fit above
// the break trigger, the page break runs first and the cell is drawn as
// the first content of the new page at the same x position. A width of 0
// extends the box to the right margin. The cursor moves right by the box
// width; it never moves down.
func (d *Doc) Cell(w, h float64, txt, align string, fill bool) error {
	const op = "Cell"
	if err := d.ready(op); err != nil {
		return err
	}
	if txt != "" && d.style.Family == "" {
		return opError(op, ErrNoFont)
	}
	if d.y+h > d.trigger && !d.inHook {
		x := d.x
		if err := d.AddPage(); err != nil {
			return err
		}
		d.x = x
	}
	if w == 0 {
		w = d.w - d.rMargin - d.x
	}
	if fill {
		if err := d.backend.FillRect(d.x*d.k, d.y*d.k, w*d.k, h*d.k, d.style.Fill); err != nil {
			return opError(op, err)
		}
	}
	if txt != "" {
		dx := d.cellPad
		switch align {
		case AlignRight:
			dx = w - d.cellPad - d.TextWidth(txt)
		case AlignCenter:
			dx = (w - d.TextWidth(txt)) / 2
		}
		base := d.y + 0.5*h + 0.3*d.style.Size/d.k
		if _, err := d.backend.PlaceText((d.x+dx)*d.k, base*d.k, txt, d.style); err != nil {
			return opError(op, err)
		}
	}
	d.x += w
	return nil
}

// FillRect draws an absolute filled rectangle in the current fill color.
// It does not move the cursor and never triggers a page break; callers
// are responsible for positioning.
func (d *Doc) FillRect(x, y, w, h float64) error {
	const op = "FillRect"
	if err := d.ready(op); err != nil {
		return err
	}
	if err := d.backend.FillRect(x*d.k, y*d.k, w*d.k, h*d.k, d.style.Fill); err != nil {
		return opError(op, err)
	}
	return nil
}

// TextWidth returns the width of s in the current style, in user units.
func (d *Doc) TextWidth(s string) float64 {
	return d.meas.TextWidth(s, d.style) / d.k
}

// CellMargin returns the horizontal padding applied inside cells.
func (d *Doc) CellMargin() float64 { return d.cellPad }

// SetCellMargin adjusts the horizontal padding applied inside cells.
func (d *Doc) SetCellMargin(m float64) { d.cellPad = m }

// SetHeaderFunc installs the hook invoked at the top of every page.
func (d *Doc) SetHeaderFunc(fn HookFunc) { d.headerFn = fn }

// SetFooterFunc installs the hook invoked when a page is closed,
// including the final page.
func (d *Doc) SetFooterFunc(fn HookFunc) { d.footerFn = fn }

// PageNo returns the current 1-based page number, 0 before the first page.
func (d *Doc) PageNo() int { return d.pageNo }

// X returns the cursor x position in user units.
func (d *Doc) X() float64 { return d.x }

// Y returns the cursor y position in user units.
func (d *Doc) Y() float64 { return d.y }

// SetX moves the cursor horizontally. Negative values are measured from
// the right edge.
func (d *Doc) SetX(x float64) {
	if x < 0 {
		x += d.w
	}
	d.x = x
}

// SetY moves the cursor vertically. Negative values are measured from the
// bottom edge. The x position is unchanged.
func (d *Doc) SetY(y float64) {
	if y < 0 {
		y += d.h
	}
	d.y = y
}

// SetXY moves the cursor to (x, y) with the same sign conventions as
// SetX and SetY.
func (d *Doc) SetXY(x, y float64) {
	d.SetX(x)
	d.SetY(y)
}

// PageWidth returns the page width in user units.
func (d *Doc) PageWidth() float64 { return d.w }

// PageHeight returns the page height in user units.
func (d *Doc) PageHeight() float64 { return d.h }

// ContentWidth returns the writable width between the side margins.
func (d *Doc) ContentWidth() float64 { return d.w - d.lMargin - d.rMargin }

// Margins returns the left, top, right and bottom (break) margins.
func (d *Doc) Margins() (left, top, right, bottom float64) {
	return d.lMargin, d.tMargin, d.rMargin, d.bMargin
}

// SetTitle sets the document title recorded in the artifact metadata.
func (d *Doc) SetTitle(s string) { d.info.Title = s }

// Title returns the document title.
func (d *Doc) Title() string { return d.info.Title }

// SetAuthor sets the author recorded in the artifact metadata.
func (d *Doc) SetAuthor(s string) { d.info.Author = s }

// SetSubject sets the subject recorded in the artifact metadata.
func (d *Doc) SetSubject(s string) { d.info.Subject = s }

// SetKeywords sets the keywords recorded in the artifact metadata.
func (d *Doc) SetKeywords(s string) { d.info.Keywords = s }

// SetCreator sets the creator recorded in the artifact metadata.
func (d *Doc) SetCreator(s string) { d.info.Creator = s }

// SetLang sets the document language tag, e.g. "en-US".
func (d *Doc) SetLang(s string) { d.info.Lang = s }

// Close seals composition: the footer hook runs on the last page and all
// further drawing fails with ErrClosed. Close is idempotent and is called
// implicitly by Output and OutputFile.
func (d *Doc) Close() error {
	if d.closed {
		return nil
	}
	if d.pageNo > 0 {
		if err := d.runHook(d.footerFn); err != nil {
			return err
		}
	}
	d.closed = true
	return nil
}

// Output finalizes the document and writes the artifact to w. The
// backend is released exactly once; a second Output fails with ErrClosed.
func (d *Doc) Output(w io.Writer) error {
	const op = "Output"
	if d.finished {
		return opError(op, ErrClosed)
	}
	if err := d.Close(); err != nil {
		return err
	}
	d.finished = true
	if err := d.backend.Finish(w, d.info); err != nil {
		return opError(op, err)
	}
	return nil
}

// OutputFile finalizes the document and writes the artifact to path. The
// artifact is staged in memory and moved into place with a rename, so a
// failure never leaves a partial file behind.
func (d *Doc) OutputFile(path string) error {
	const op = "OutputFile"
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".octavo-*")
	if err != nil {
		return opError(op, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return opError(op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return opError(op, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return opError(op, err)
	}
	return nil
}

// coreMeasurer measures text with the Standard-14 metrics tables.
type coreMeasurer struct{}

func (coreMeasurer) TextWidth(s string, st Style) float64 {
	return font.Width(st.Family, st.Bold, st.Italic, st.Size, s)
}
