package doctpl

import (
	"encoding/json"
	"fmt"
	"io"

	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/barcode"
	"github.com/octavo-go/octavo/block"
	"github.com/octavo-go/octavo/pdf"
	"github.com/octavo-go/octavo/table"
)

// Render parses a JSON template and writes the resulting document to w.
func Render(w io.Writer, jsonTemplate []byte) error {
	var doc Document
	if err := json.Unmarshal(jsonTemplate, &doc); err != nil {
		return fmt.Errorf("doctpl: parsing template: %w", err)
	}
	return RenderDocument(w, &doc)
}

// RenderDocument renders a Document to w. Geometry and metadata come
// from the template; elements flow in order from the first page.
func RenderDocument(w io.Writer, tpl *Document) error {
	var opts []octavo.Option
	if tpl.PageSize != "" {
		opts = append(opts, octavo.WithPageSize(tpl.PageSize))
	}
	if tpl.Orientation != "" {
		opts = append(opts, octavo.WithOrientation(tpl.Orientation))
	}
	if m := tpl.Margins; m != nil {
		opts = append(opts, octavo.WithMargins(m.Left, m.Top, m.Right))
		if m.Bottom > 0 {
			opts = append(opts, octavo.WithBreakMargin(m.Bottom))
		}
	}

	d, err := pdf.NewDocument(opts...)
	if err != nil {
		return fmt.Errorf("doctpl: %w", err)
	}
	d.SetTitle(tpl.Title)
	d.SetAuthor(tpl.Author)
	d.SetSubject(tpl.Subject)
	d.SetLang(tpl.Lang)
	if tpl.Header != nil {
		d.SetHeaderFunc(block.RunningHeader(tpl.Header.Title))
	}
	if tpl.Footer != nil {
		d.SetFooterFunc(block.RunningFooter(tpl.Footer.Text))
	}

	bw := block.NewWriter(d)
	if err := d.AddPage(); err != nil {
		return fmt.Errorf("doctpl: %w", err)
	}
	for i, el := range tpl.Elements {
		if err := renderElement(bw, el); err != nil {
			return fmt.Errorf("doctpl: element %d (%s): %w", i+1, el.Type, err)
		}
	}
	if err := d.Output(w); err != nil {
		return fmt.Errorf("doctpl: %w", err)
	}
	return nil
}

func renderElement(w *block.Writer, el Element) error {
	switch el.Type {
	case "heading":
		return renderHeading(w, el)
	case "paragraph":
		return w.Paragraph(el.Text)
	case "code":
		return w.Code(el.Text)
	case "list":
		for _, item := range el.Items {
			if err := w.Bullet(item); err != nil {
				return err
			}
		}
		return nil
	case "table":
		return renderTable(w.Doc(), el)
	case "barcode":
		return renderBarcode(w.Doc(), el)
	case "spacer":
		h := el.Height
		if h == 0 {
			h = 10
		}
		return w.Spacer(h)
	case "pagebreak":
		return w.Doc().AddPage()
	default:
		return fmt.Errorf("unknown element type %q", el.Type)
	}
}

func renderHeading(w *block.Writer, el Element) error {
	switch el.Level {
	case 0, 1:
		return w.Title(el.Text)
	case 2:
		return w.Section(el.Text)
	case 3:
		return w.Subsection(el.Text)
	}
	return fmt.Errorf("heading level %d, want 1 to 3", el.Level)
}

func renderTable(d *octavo.Doc, el Element) error {
	t := table.New(d)

	switch {
	case len(el.Widths) > 0:
		t.SetColumnWidths(el.Widths...)
	case len(el.Columns) > 0:
		// No widths given: split the content width evenly.
		even := d.ContentWidth() / float64(len(el.Columns))
		widths := make([]float64, len(el.Columns))
		for i := range widths {
			widths[i] = even
		}
		t.SetColumnWidths(widths...)
	}
	if el.RowHeight > 0 {
		t.SetRowHeight(el.RowHeight)
		t.SetHeaderHeight(el.RowHeight + 1)
	}
	t.SetRepeatHeader(el.RepeatHeader)

	if len(el.Columns) > 0 {
		hr := t.AddHeaderRow()
		for _, caption := range el.Columns {
			hr.AddCell(caption)
		}
	}
	for _, row := range el.Rows {
		r := t.AddRow()
		for _, cell := range row {
			r.AddCell(cell)
		}
	}

	if err := t.Render(); err != nil {
		return err
	}
	return d.Advance(2)
}

func renderBarcode(d *octavo.Doc, el Element) error {
	if el.Content == "" {
		return fmt.Errorf("barcode element requires content")
	}
	format := el.Format
	if format == "" {
		format = "qr"
	}
	w := el.Width
	if w <= 0 {
		w = 40
	}
	h := el.Height
	if h <= 0 {
		h = 15
	}
	if format == "qr" {
		// QR codes are square; width wins.
		h = w
	}

	if !d.Fits(h) {
		if err := d.AddPage(); err != nil {
			return err
		}
	}
	left, _, _, _ := d.Margins()
	x := left
	switch el.Align {
	case octavo.AlignCenter:
		x = left + (d.ContentWidth()-w)/2
	case octavo.AlignRight:
		x = left + d.ContentWidth() - w
	}
	y := d.Y()

	var err error
	switch format {
	case "qr":
		err = barcode.QR(d, el.Content, x, y, w)
	case "code128":
		err = barcode.Code128(d, el.Content, x, y, w, h)
	case "ean":
		err = barcode.EAN(d, el.Content, x, y, w, h)
	case "pdf417":
		err = barcode.PDF417(d, el.Content, x, y, w, h)
	default:
		return fmt.Errorf("unknown barcode format %q", format)
	}
	if err != nil {
		return err
	}

	d.SetXY(left, y+h)
	return d.Advance(2)
}
