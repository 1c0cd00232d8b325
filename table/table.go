package table

import (
	"fmt"

	octavo "github.com/octavo-go/octavo"
)

// Table is a builder for striped reference tables.
type Table struct {
	doc          *octavo.Doc
	widths       []float64
	rows         []*Row
	style        TableStyle
	rowHeight    float64
	headerHeight float64
	repeatHeader bool
	err          error
}

// New creates a Table drawing into d with the default style and row
// heights.
func New(d *octavo.Doc) *Table {
	return &Table{
		doc:          d,
		style:        DefaultStyle(),
		rowHeight:    6,
		headerHeight: 7,
	}
}

// SetColumnWidths fixes the column widths, in user units. Widths are
// set once per table and shared by every row.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	if t.widths != nil {
		t.fail(fmt.Errorf("table: column widths already set"))
		return t
	}
	t.widths = widths
	return t
}

// SetRowHeight sets the fixed height of body rows.
func (t *Table) SetRowHeight(h float64) *Table {
	t.rowHeight = h
	return t
}

// SetHeaderHeight sets the fixed height of header rows.
func (t *Table) SetHeaderHeight(h float64) *Table {
	t.headerHeight = h
	return t
}

// SetRepeatHeader controls whether header rows are drawn again at the
// top of every page the table spills onto. Off by default.
func (t *Table) SetRepeatHeader(on bool) *Table {
	t.repeatHeader = on
	return t
}

// SetStyle replaces the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// AddRow appends a data row and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow appends a header row, kept ahead of the data rows, and
// returns it for chaining.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	idx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			break
		}
		idx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[idx+1:], t.rows[idx:])
	t.rows[idx] = r
	return r
}

func (t *Table) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

// Render draws the collected rows at the left margin. The header rows
// stay with the first data row; afterwards each row that no longer fits
// moves to a fresh page, with the stripe parity carried over unchanged.
// Rendering an empty table draws nothing.
func (t *Table) Render() error {
	if t.err != nil {
		return t.err
	}
	if len(t.rows) == 0 {
		return nil
	}
	if err := t.validate(); err != nil {
		return err
	}

	var headers, body []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headers = append(headers, r)
		} else {
			body = append(body, r)
		}
	}

	saved := t.doc.Style()
	lead := t.headerHeight * float64(len(headers))
	if len(body) > 0 {
		lead += t.rowHeight
	}
	if !t.doc.Fits(lead) {
		if err := t.doc.AddPage(); err != nil {
			return err
		}
	}
	for _, hr := range headers {
		if err := t.renderRow(hr, t.headerHeight, -1); err != nil {
			return err
		}
	}
	for i, r := range body {
		if !t.doc.Fits(t.rowHeight) {
			if err := t.doc.AddPage(); err != nil {
				return err
			}
			if t.repeatHeader {
				for _, hr := range headers {
					if err := t.renderRow(hr, t.headerHeight, -1); err != nil {
						return err
					}
				}
			}
		}
		if err := t.renderRow(r, t.rowHeight, i); err != nil {
			return err
		}
	}
	t.doc.SetStyle(saved)
	return nil
}

// validate enforces the column contract before any drawing happens:
// positive widths fitting the content area, and every row spanning
// exactly the declared columns.
func (t *Table) validate() error {
	if len(t.widths) == 0 {
		return fmt.Errorf("table: no column widths set")
	}
	sum := 0.0
	for i, w := range t.widths {
		if w <= 0 {
			return fmt.Errorf("table: column %d width %g, want positive", i, w)
		}
		sum += w
	}
	if cw := t.doc.ContentWidth(); sum > cw+1e-9 {
		return fmt.Errorf("table: columns span %g, exceeding the content width %g", sum, cw)
	}
	if t.rowHeight <= 0 || t.headerHeight <= 0 {
		return fmt.Errorf("table: row heights must be positive")
	}
	for ri, r := range t.rows {
		span := 0
		for _, c := range r.cells {
			span += c.colspan
		}
		if span != len(t.widths) {
			return fmt.Errorf("table: row %d spans %d columns, want %d", ri+1, span, len(t.widths))
		}
	}
	return nil
}

func (t *Table) renderRow(r *Row, rowH float64, bodyIdx int) error {
	left, _, _, _ := t.doc.Margins()
	t.doc.SetX(left)
	col := 0
	for _, c := range r.cells {
		w := 0.0
		for j := 0; j < c.colspan; j++ {
			w += t.widths[col+j]
		}
		st := t.resolveCellStyle(c, r, bodyIdx)
		if st.Font != nil {
			t.doc.SetFont(st.Font.Family, st.Font.Style, st.Font.Size)
		}
		if st.Text != nil {
			t.doc.SetTextColor(st.Text.R, st.Text.G, st.Text.B)
		}
		fill := false
		if st.Fill != nil {
			t.doc.SetFillColor(st.Fill.R, st.Fill.G, st.Fill.B)
			fill = true
		}
		align := octavo.AlignLeft
		if st.Align != "" {
			align = st.Align
		}
		if err := t.doc.Cell(w, rowH, c.text, align, fill); err != nil {
			return err
		}
		col += c.colspan
	}
	return t.doc.Ln(rowH)
}

// resolveCellStyle merges the style layers for one cell: the table cell
// default, then the header or stripe style, then row and cell styles.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, bodyIdx int) CellStyle {
	var result CellStyle
	if t.style.Cell != nil {
		mergeStyle(&result, t.style.Cell)
	}
	if row.isHeader {
		if t.style.Header != nil {
			mergeStyle(&result, t.style.Header)
		}
	} else if t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}
	if row.style != nil {
		mergeStyle(&result, row.style)
	}
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}
	return result
}

// mergeStyle copies set fields from src over dst.
func mergeStyle(dst, src *CellStyle) {
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Text != nil {
		dst.Text = src.Text
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
