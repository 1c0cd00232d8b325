package octavo_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/font"
)

// recorder is a Backend that records every primitive call for
// assertions on geometry and ordering.
type recorder struct {
	pages    int
	ops      []recordedOp
	finished bool
	info     octavo.Info
}

type recordedOp struct {
	kind       string // "page", "text" or "rect"
	page       int
	x, y, w, h float64
	text       string
	style      octavo.Style
	color      octavo.Color
}

func (r *recorder) StartPage(wPt, hPt float64) error {
	r.pages++
	r.ops = append(r.ops, recordedOp{kind: "page", page: r.pages, w: wPt, h: hPt})
	return nil
}

func (r *recorder) PlaceText(x, y float64, s string, st octavo.Style) (float64, error) {
	r.ops = append(r.ops, recordedOp{kind: "text", page: r.pages, x: x, y: y, text: s, style: st})
	return font.Width(st.Family, st.Bold, st.Italic, st.Size, s), nil
}

func (r *recorder) FillRect(x, y, w, h float64, c octavo.Color) error {
	r.ops = append(r.ops, recordedOp{kind: "rect", page: r.pages, x: x, y: y, w: w, h: h, color: c})
	return nil
}

func (r *recorder) Finish(w io.Writer, info octavo.Info) error {
	r.finished = true
	r.info = info
	fmt.Fprintf(w, "%d pages", r.pages)
	return nil
}

func (r *recorder) texts() []recordedOp {
	var out []recordedOp
	for _, op := range r.ops {
		if op.kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

// newTestDoc builds a Doc on a 200x100pt page with 10pt margins and the
// break trigger at y=22, leaving 12pt of usable height.
func newTestDoc(t *testing.T, opts ...octavo.Option) (*octavo.Doc, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []octavo.Option{
		octavo.WithUnit(octavo.UnitPoint),
		octavo.WithPageSizeCustom(200, 100),
		octavo.WithMargins(10, 10, 10),
		octavo.WithBreakMargin(78),
	}
	d, err := octavo.New(rec, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, rec
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewDefaults(t *testing.T) {
	d, err := octavo.New(&recorder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	k := 72.0 / 25.4
	if !near(d.PageWidth(), 595.28/k) {
		t.Errorf("page width = %.3f, want A4 width in mm", d.PageWidth())
	}
	margin := 28.35 / k // 1cm expressed in mm
	l, top, r, b := d.Margins()
	if !near(l, margin) || !near(top, margin) || !near(r, margin) || !near(b, 2*margin) {
		t.Errorf("margins = %.4f %.4f %.4f %.4f, want 1cm sides, 2cm bottom", l, top, r, b)
	}
	if !near(d.ContentWidth(), d.PageWidth()-2*margin) {
		t.Errorf("content width = %.3f", d.ContentWidth())
	}
	if d.PageNo() != 0 {
		t.Errorf("page number before AddPage = %d, want 0", d.PageNo())
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name string
		opts []octavo.Option
	}{
		{"unknown unit", []octavo.Option{octavo.WithUnit("furlong")}},
		{"unknown size", []octavo.Option{octavo.WithPageSize("A9")}},
		{"unknown orientation", []octavo.Option{octavo.WithOrientation("diagonal")}},
		{"negative margin", []octavo.Option{octavo.WithMargins(-1, 10, 10)}},
		{"margins exceed width", []octavo.Option{
			octavo.WithUnit(octavo.UnitPoint),
			octavo.WithPageSizeCustom(100, 100),
			octavo.WithMargins(60, 10, 60),
		}},
		{"break margin exceeds height", []octavo.Option{
			octavo.WithUnit(octavo.UnitPoint),
			octavo.WithPageSizeCustom(100, 100),
			octavo.WithBreakMargin(95),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := octavo.New(&recorder{}, tc.opts...)
			if !errors.Is(err, octavo.ErrInvalidParam) {
				t.Errorf("New = %v, want ErrInvalidParam", err)
			}
		})
	}
	if _, err := octavo.New(nil); !errors.Is(err, octavo.ErrInvalidParam) {
		t.Errorf("New(nil backend) = %v, want ErrInvalidParam", err)
	}
}

func TestDrawBeforeFirstPage(t *testing.T) {
	d, _ := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	if err := d.Cell(0, 5, "x", octavo.AlignLeft, false); !errors.Is(err, octavo.ErrNoPage) {
		t.Errorf("Cell = %v, want ErrNoPage", err)
	}
	if err := d.Ln(5); !errors.Is(err, octavo.ErrNoPage) {
		t.Errorf("Ln = %v, want ErrNoPage", err)
	}
	if err := d.Advance(5); !errors.Is(err, octavo.ErrNoPage) {
		t.Errorf("Advance = %v, want ErrNoPage", err)
	}
	if err := d.FillRect(0, 0, 10, 10); !errors.Is(err, octavo.ErrNoPage) {
		t.Errorf("FillRect = %v, want ErrNoPage", err)
	}
}

func TestCellRequiresFont(t *testing.T) {
	d, rec := newTestDoc(t)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	err := d.Cell(50, 5, "text", octavo.AlignLeft, false)
	if !errors.Is(err, octavo.ErrNoFont) {
		t.Errorf("Cell with text = %v, want ErrNoFont", err)
	}
	// A fill-only cell has no text to set, so no font is needed.
	d.SetFillColor(240, 240, 240)
	if err := d.Cell(50, 5, "", octavo.AlignLeft, true); err != nil {
		t.Errorf("fill-only Cell: %v", err)
	}
	if len(rec.texts()) != 0 {
		t.Error("no text should have been placed")
	}
}

func TestFitsIsPure(t *testing.T) {
	d, _ := newTestDoc(t)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	y := d.Y()
	// Trigger is at y=22 with the cursor at 10: 12 fits exactly, 12.01
	// does not.
	if !d.Fits(12) {
		t.Error("Fits(12) = false, want true at exact capacity")
	}
	if d.Fits(12.01) {
		t.Error("Fits(12.01) = true, want false")
	}
	if d.Y() != y || d.PageNo() != 1 {
		t.Error("Fits mutated cursor or page state")
	}
}

func TestAdvanceDefersBreak(t *testing.T) {
	d, rec := newTestDoc(t)
	d.SetFont("courier", "", 10)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.Advance(50); err != nil { // far past the trigger
		t.Fatalf("Advance: %v", err)
	}
	if d.PageNo() != 1 {
		t.Errorf("Advance broke the page: PageNo = %d", d.PageNo())
	}
	if err := d.Cell(0, 5, "x", octavo.AlignLeft, false); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if d.PageNo() != 2 {
		t.Errorf("draw after overshoot: PageNo = %d, want 2", d.PageNo())
	}
	if got := rec.texts()[0].page; got != 2 {
		t.Errorf("text placed on page %d, want 2", got)
	}
}

func TestTrailingGapLeavesNoBlankPage(t *testing.T) {
	// 10pt of usable height and two 5pt lines: the second line fits
	// exactly, and the block gap after it passes the trigger without
	// drawing anything.
	rec := &recorder{}
	d, err := octavo.New(rec,
		octavo.WithUnit(octavo.UnitPoint),
		octavo.WithPageSizeCustom(200, 100),
		octavo.WithMargins(10, 10, 10),
		octavo.WithBreakMargin(80),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.SetFont("courier", "", 9)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	for _, line := range []string{"one", "two"} {
		if err := d.Cell(0, 5, line, octavo.AlignLeft, false); err != nil {
			t.Fatalf("Cell: %v", err)
		}
		if err := d.Ln(5); err != nil {
			t.Fatalf("Ln: %v", err)
		}
	}
	if err := d.Advance(3); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.Output(io.Discard); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if rec.pages != 1 {
		t.Errorf("pages = %d, want 1 (no blank trailing page)", rec.pages)
	}
}

func TestCellBreaksMidSequence(t *testing.T) {
	// 12pt of usable height and three 5pt lines: two fit, the third
	// moves to a fresh page.
	d, rec := newTestDoc(t)
	d.SetFont("courier", "", 9)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	for _, line := range []string{"line 1", "line 2", "line 3"} {
		if err := d.Cell(0, 5, line, octavo.AlignLeft, false); err != nil {
			t.Fatalf("Cell(%q): %v", line, err)
		}
		if err := d.Ln(5); err != nil {
			t.Fatalf("Ln: %v", err)
		}
	}
	texts := rec.texts()
	if len(texts) != 3 {
		t.Fatalf("placed %d texts, want 3", len(texts))
	}
	wantPages := []int{1, 1, 2}
	for i, op := range texts {
		if op.page != wantPages[i] {
			t.Errorf("%q on page %d, want %d", op.text, op.page, wantPages[i])
		}
	}
	// The third line starts at the top content corner of page 2.
	if got := texts[2].y; !near(got, 10+2.5+0.3*9) {
		t.Errorf("line 3 baseline = %.3f, want %.3f", got, 10+2.5+0.3*9)
	}
	if rec.pages != 2 {
		t.Errorf("pages = %d, want 2", rec.pages)
	}
}

func TestCellPreservesXAcrossBreak(t *testing.T) {
	d, rec := newTestDoc(t)
	d.SetFont("courier", "", 10)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	d.SetXY(60, 20) // 20+5 > 22 forces a break
	if err := d.Cell(40, 5, "x", octavo.AlignLeft, false); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if d.PageNo() != 2 {
		t.Fatalf("PageNo = %d, want 2", d.PageNo())
	}
	if !near(d.X(), 100) {
		t.Errorf("cursor x after cell = %.3f, want 100", d.X())
	}
	op := rec.texts()[0]
	if !near(op.x, 60+2.835) {
		t.Errorf("text x = %.4f, want x position preserved across break", op.x)
	}
}

func TestCellZeroWidthExtendsToRightMargin(t *testing.T) {
	d, rec := newTestDoc(t)
	d.SetFont("courier", "", 10)
	d.SetFillColor(240, 240, 240)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.Cell(0, 5, "", octavo.AlignLeft, true); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	var rect recordedOp
	for _, op := range rec.ops {
		if op.kind == "rect" {
			rect = op
		}
	}
	if !near(rect.w, 180) {
		t.Errorf("rect width = %.3f, want 180 (full content width)", rect.w)
	}
	if !near(d.X(), 190) {
		t.Errorf("cursor x = %.3f, want right margin", d.X())
	}
}

func TestCellAlignment(t *testing.T) {
	// Courier at size 10 advances exactly 6pt per rune, so "ab" is 12pt
	// wide and the alignment offsets are exact.
	d, rec := newTestDoc(t)
	d.SetFont("courier", "", 10)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	const pad = 2.835
	cases := []struct {
		align string
		wantX float64
	}{
		{octavo.AlignLeft, 10 + pad},
		{octavo.AlignCenter, 10 + (100-12)/2},
		{octavo.AlignRight, 10 + 100 - pad - 12},
	}
	for _, tc := range cases {
		d.SetXY(10, 10)
		if err := d.Cell(100, 5, "ab", tc.align, false); err != nil {
			t.Fatalf("Cell(%s): %v", tc.align, err)
		}
		texts := rec.texts()
		got := texts[len(texts)-1].x
		if !near(got, tc.wantX) {
			t.Errorf("align %s: text x = %.4f, want %.4f", tc.align, got, tc.wantX)
		}
	}
}

func TestStylePersistsAcrossBreak(t *testing.T) {
	d, rec := newTestDoc(t)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	d.SetFont("courier", "B", 9)
	d.SetTextColor(200, 0, 0)
	d.SetFillColor(240, 240, 240)
	if err := d.Advance(50); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.Cell(0, 5, "after break", octavo.AlignLeft, true); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	st := d.Style()
	if st.Family != "courier" || !st.Bold || st.Size != 9 {
		t.Errorf("font not preserved across break: %+v", st)
	}
	if st.Text != (octavo.Color{R: 200}) || st.Fill != (octavo.Color{R: 240, G: 240, B: 240}) {
		t.Errorf("colors not preserved across break: %+v", st)
	}
	op := rec.texts()[0]
	if op.page != 2 || op.style.Family != "courier" || !op.style.Bold {
		t.Errorf("placed with %+v on page %d", op.style, op.page)
	}
}

func TestHeaderFooterSequence(t *testing.T) {
	d, rec := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	d.SetHeaderFunc(func(d *octavo.Doc) error {
		d.SetFont("helvetica", "B", 8)
		return d.Cell(0, 5, fmt.Sprintf("head %d", d.PageNo()), octavo.AlignLeft, false)
	})
	d.SetFooterFunc(func(d *octavo.Doc) error {
		d.SetY(-10)
		return d.Cell(0, 5, fmt.Sprintf("foot %d", d.PageNo()), octavo.AlignCenter, false)
	})
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.Cell(0, 5, "body 1", octavo.AlignLeft, false); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.Cell(0, 5, "body 2", octavo.AlignLeft, false); err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []string
	for _, op := range rec.texts() {
		got = append(got, fmt.Sprintf("%s@%d", op.text, op.page))
	}
	want := []string{"head 1@1", "body 1@1", "foot 1@1", "head 2@2", "body 2@2", "foot 2@2"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("sequence = %v, want %v", got, want)
	}

	// Hooks run below the trigger without opening pages of their own.
	if rec.pages != 2 {
		t.Errorf("pages = %d, want 2", rec.pages)
	}
	// The hook's font change does not leak into the body style.
	if st := d.Style(); st.Bold || st.Size != 10 {
		t.Errorf("style after hooks = %+v, want body style", st)
	}
}

func TestHeaderLeavesCursorAtLeftMargin(t *testing.T) {
	d, _ := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	d.SetHeaderFunc(func(d *octavo.Doc) error {
		d.SetX(120)
		return nil
	})
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if !near(d.X(), 10) {
		t.Errorf("x after header = %.3f, want left margin", d.X())
	}
}

func TestHookErrorAborts(t *testing.T) {
	wantErr := errors.New("footer failed")
	d, _ := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	d.SetFooterFunc(func(d *octavo.Doc) error { return wantErr })
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.AddPage(); !errors.Is(err, wantErr) {
		t.Errorf("AddPage = %v, want footer error", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	footers := 0
	d, _ := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	d.SetFooterFunc(func(d *octavo.Doc) error {
		footers++
		return nil
	})
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if footers != 1 {
		t.Errorf("footer ran %d times, want 1", footers)
	}
	if err := d.Cell(0, 5, "x", octavo.AlignLeft, false); !errors.Is(err, octavo.ErrClosed) {
		t.Errorf("Cell after Close = %v, want ErrClosed", err)
	}
	if err := d.AddPage(); !errors.Is(err, octavo.ErrClosed) {
		t.Errorf("AddPage after Close = %v, want ErrClosed", err)
	}
}

func TestOutputOnce(t *testing.T) {
	d, rec := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	d.SetTitle("Report")
	d.SetLang("en-US")
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !rec.finished {
		t.Error("backend not finalized")
	}
	if rec.info.Title != "Report" || rec.info.Lang != "en-US" {
		t.Errorf("info = %+v", rec.info)
	}
	if err := d.Output(io.Discard); !errors.Is(err, octavo.ErrClosed) {
		t.Errorf("second Output = %v, want ErrClosed", err)
	}
}

func TestOutputFileAtomic(t *testing.T) {
	d, _ := newTestDoc(t)
	d.SetFont("helvetica", "", 10)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	if err := d.OutputFile(path); err != nil {
		t.Fatalf("OutputFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty artifact")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files in %s: %v", dir, entries)
	}
}

func TestSetXYFromEdges(t *testing.T) {
	d, _ := newTestDoc(t)
	if err := d.AddPage(); err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	d.SetXY(-30, -40)
	if !near(d.X(), 170) {
		t.Errorf("x = %.3f, want 170 (30 from right edge)", d.X())
	}
	if !near(d.Y(), 60) {
		t.Errorf("y = %.3f, want 60 (40 from bottom edge)", d.Y())
	}
}
