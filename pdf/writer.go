package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sort"
	"time"
	"unicode/utf16"

	"golang.org/x/text/language"

	"github.com/octavo-go/octavo"
)

// Object layout: 1 is the page tree, 2 the shared resource dictionary.
// Pages follow from 3, each as a page object and its content stream,
// then one object per used font, then Info and Catalog last.
const (
	pagesObj     = 1
	resourcesObj = 2
)

// Finish serializes the accumulated pages and closes the backend for
// further drawing.
func (b *Backend) Finish(w io.Writer, info octavo.Info) error {
	if b.finished {
		return fmt.Errorf("pdf: backend already finalized")
	}
	if len(b.pages) == 0 {
		return fmt.Errorf("pdf: no pages")
	}
	lang := ""
	if info.Lang != "" {
		tag, err := language.Parse(info.Lang)
		if err != nil {
			return fmt.Errorf("pdf: invalid language tag %q: %w", info.Lang, err)
		}
		lang = tag.String()
	}
	b.finished = true

	nPages := len(b.pages)
	nObjs := 2 + 2*nPages + len(b.fontIDs) + 2
	infoObj := nObjs - 1
	catalogObj := nObjs

	d := &docWriter{offsets: make([]int, nObjs+1)}
	d.printf("%%PDF-1.3\n")

	for i, content := range b.pages {
		pageID := 3 + 2*i
		d.beginObj(pageID)
		d.printf("<</Type /Page /Parent %d 0 R /Resources %d 0 R /Contents %d 0 R>>\n",
			pagesObj, resourcesObj, pageID+1)
		d.endObj()
		b.putStream(d, pageID+1, content.Bytes())
	}

	d.beginObj(pagesObj)
	d.printf("<</Type /Pages /Kids [")
	for i := range b.pages {
		if i > 0 {
			d.printf(" ")
		}
		d.printf("%d 0 R", 3+2*i)
	}
	d.printf("] /Count %d /MediaBox [0 0 %.2f %.2f]>>\n", nPages, b.pageW, b.pageH)
	d.endObj()

	for i, name := range b.fontIDs {
		d.beginObj(2 + 2*nPages + i + 1)
		d.printf("<</Type /Font /BaseFont /%s /Subtype /Type1 /Encoding /WinAnsiEncoding>>\n", name)
		d.endObj()
	}

	d.beginObj(resourcesObj)
	d.printf("<</ProcSet [/PDF /Text] /Font <<")
	for i := range b.fontIDs {
		d.printf("/F%d %d 0 R", i+1, 2+2*nPages+i+1)
	}
	d.printf(">>>>\n")
	d.endObj()

	d.beginObj(infoObj)
	b.putInfo(d, info)
	d.endObj()

	d.beginObj(catalogObj)
	d.printf("<</Type /Catalog /Pages %d 0 R", pagesObj)
	if lang != "" {
		d.printf(" /Lang (%s)", lang)
	}
	d.printf(">>\n")
	d.endObj()

	startXref := d.buf.Len()
	d.printf("xref\n0 %d\n0000000000 65535 f \n", nObjs+1)
	for i := 1; i <= nObjs; i++ {
		d.printf("%010d 00000 n \n", d.offsets[i])
	}
	d.printf("trailer\n<</Size %d /Root %d 0 R /Info %d 0 R>>\nstartxref\n%d\n%%%%EOF\n",
		nObjs+1, catalogObj, infoObj, startXref)

	_, err := w.Write(d.buf.Bytes())
	return err
}

func (b *Backend) putStream(d *docWriter, id int, data []byte) {
	filter := ""
	if b.compress {
		filter = "/Filter /FlateDecode "
		data = flateCompress(data)
	}
	d.beginObj(id)
	d.printf("<<%s/Length %d>>\nstream\n", filter, len(data))
	d.buf.Write(data)
	d.printf("\nendstream\n")
	d.endObj()
}

func (b *Backend) putInfo(d *docWriter, info octavo.Info) {
	fields := map[string]string{
		"Producer":     "octavo",
		"CreationDate": pdfDate(b.creationDate()),
	}
	if info.Title != "" {
		fields["Title"] = info.Title
	}
	if info.Author != "" {
		fields["Author"] = info.Author
	}
	if info.Subject != "" {
		fields["Subject"] = info.Subject
	}
	if info.Keywords != "" {
		fields["Keywords"] = info.Keywords
	}
	if info.Creator != "" {
		fields["Creator"] = info.Creator
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d.printf("<<")
	for _, k := range keys {
		d.printf("/%s (%s)", k, textString(fields[k]))
	}
	d.printf(">>\n")
}

func (b *Backend) creationDate() time.Time {
	if !b.creation.IsZero() {
		return b.creation
	}
	return time.Now()
}

// pdfDate renders t in the D:YYYYMMDDHHMMSS+HH'MM' form.
func pdfDate(t time.Time) string {
	_, off := t.Zone()
	sign := '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("D:%s%c%02d'%02d'", t.Format("20060102150405"), sign, off/3600, (off%3600)/60)
}

// textString encodes a metadata string, escaping delimiters. Non-ASCII
// values use UTF-16BE with a byte order mark.
func textString(s string) []byte {
	ascii := true
	for _, r := range s {
		if r >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return escape([]byte(s))
	}
	units := utf16.Encode([]rune(s))
	raw := make([]byte, 2, 2+2*len(units))
	raw[0], raw[1] = 0xFE, 0xFF
	for _, u := range units {
		raw = append(raw, byte(u>>8), byte(u))
	}
	return escape(raw)
}

func flateCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

// docWriter tracks byte offsets of numbered objects for the xref table.
type docWriter struct {
	buf     bytes.Buffer
	offsets []int
}

func (d *docWriter) printf(format string, args ...any) {
	fmt.Fprintf(&d.buf, format, args...)
}

func (d *docWriter) beginObj(id int) {
	d.offsets[id] = d.buf.Len()
	d.printf("%d 0 obj\n", id)
}

func (d *docWriter) endObj() {
	d.printf("endobj\n")
}
