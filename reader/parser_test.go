package reader

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"fmt"
	"strings"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Object
	}{
		{"42", Integer(42)},
		{"-7", Integer(-7)},
		{"3.14", Real(3.14)},
		{"-.5", Real(-0.5)},
	} {
		p := newParser([]byte(tc.in))
		obj, err := p.ParseObject()
		if err != nil {
			t.Fatalf("parsing %q: %v", tc.in, err)
		}
		if obj != tc.want {
			t.Errorf("parsing %q = %#v, want %#v", tc.in, obj, tc.want)
		}
	}
}

func TestParseNameWithHexEscape(t *testing.T) {
	p := newParser([]byte("/A#20B"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if v, ok := obj.(Name); !ok || string(v) != "A B" {
		t.Errorf("expected Name(A B), got %T(%v)", obj, obj)
	}
}

func TestParseLiteralString(t *testing.T) {
	p := newParser([]byte(`(Hello (nested) \(esc\) \\ \225)`))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	s, ok := obj.(String)
	if !ok {
		t.Fatalf("expected String, got %T", obj)
	}
	want := "Hello (nested) (esc) \\ \x95"
	if string(s.Value) != want {
		t.Errorf("value = %q, want %q", s.Value, want)
	}
	if s.IsHex {
		t.Error("expected literal string")
	}
}

func TestParseHexString(t *testing.T) {
	p := newParser([]byte("<48656C 6C6F7>"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	s := obj.(String)
	// Trailing odd nibble pads with zero: 0x70 = 'p'.
	if string(s.Value) != "Hellop" {
		t.Errorf("value = %q", s.Value)
	}
	if !s.IsHex {
		t.Error("expected hex string")
	}
}

func TestParseArrayAndDict(t *testing.T) {
	p := newParser([]byte("<< /Type /Page /Count 3 /Kids [1 0 R 2 0 R] /Box [0 0 200.5 100] >>"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	d, ok := obj.(Dict)
	if !ok {
		t.Fatalf("expected Dict, got %T", obj)
	}
	if d.GetName("Type") != "Page" {
		t.Errorf("Type = %v", d["Type"])
	}
	if v, ok := d.GetInt("Count"); !ok || v != 3 {
		t.Errorf("Count = %v", d["Count"])
	}
	kids := d.GetArray("Kids")
	if len(kids) != 2 {
		t.Fatalf("Kids = %v", kids)
	}
	if ref, ok := kids[1].(Reference); !ok || ref.Number != 2 || ref.Generation != 0 {
		t.Errorf("Kids[1] = %v", kids[1])
	}
	box := d.GetArray("Box")
	if v, ok := numValue(box[2]); !ok || v != 200.5 {
		t.Errorf("Box[2] = %v", box[2])
	}
}

func TestIntegerPairIsNotReference(t *testing.T) {
	p := newParser([]byte("[10 0 5]"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	arr := obj.(Array)
	if len(arr) != 3 {
		t.Fatalf("array = %v, want three integers", arr)
	}
	for i, el := range arr {
		if _, ok := el.(Integer); !ok {
			t.Errorf("element %d = %T, want Integer", i, el)
		}
	}
}

func TestParseIndirectObjectWithStream(t *testing.T) {
	data := []byte("7 0 obj\n<< /Length 11 >>\nstream\nhello world\nendstream\nendobj")
	p := newParser(data)
	obj, err := p.ParseIndirectObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if obj.Number != 7 || obj.Generation != 0 {
		t.Errorf("reference = %d %d", obj.Number, obj.Generation)
	}
	s, ok := obj.Value.(Stream)
	if !ok {
		t.Fatalf("expected Stream, got %T", obj.Value)
	}
	if string(s.Data) != "hello world" {
		t.Errorf("stream data = %q", s.Data)
	}
}

func TestParseComment(t *testing.T) {
	p := newParser([]byte("% a comment\n42"))
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if obj != Integer(42) {
		t.Errorf("got %v", obj)
	}
}

// buildClassicFile assembles a minimal one-page file with a classic
// cross-reference table and correct byte offsets.
func buildClassicFile(trailerExtra string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.3\n")
	off1 := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	off2 := buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 200 100] >>\nendobj\n")
	off3 := buf.Len()
	buf.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R >>\nendobj\n")
	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 4\n0000000000 65535 f \n")
	for _, off := range []int{off1, off2, off3} {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n", trailerExtra, xrefOff)
	return buf.Bytes()
}

func TestParseClassicXRef(t *testing.T) {
	doc, err := parse(buildClassicFile(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Version != "1.3" {
		t.Errorf("version = %q", doc.Version)
	}
	if doc.NumPages() != 1 {
		t.Fatalf("pages = %d", doc.NumPages())
	}
	page, err := doc.Page(1)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	// MediaBox is inherited from the Pages node.
	if page.MediaBox.Width() != 200 || page.MediaBox.Height() != 100 {
		t.Errorf("MediaBox = %+v", page.MediaBox)
	}
}

func TestEncryptedFileRejected(t *testing.T) {
	_, err := parse(buildClassicFile("/Encrypt 9 0 R "))
	if err == nil || !strings.Contains(err.Error(), "encrypted") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseXRefStream(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.5\n")
	offs := make([]int, 4)
	offs[1] = buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	offs[2] = buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 300 300] >>\nendobj\n")
	offs[3] = buf.Len()
	buf.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R >>\nendobj\n")

	// Entries packed per /W [1 2 1]: type, two offset bytes, generation.
	entries := make([]byte, 0, 20)
	entries = append(entries, 0, 0, 0, 255) // object 0: free
	for i := 1; i <= 3; i++ {
		entries = append(entries, 1, byte(offs[i]>>8), byte(offs[i]), 0)
	}
	streamOff := buf.Len()
	entries = append(entries, 1, byte(streamOff>>8), byte(streamOff), 0) // object 4: this stream
	fmt.Fprintf(&buf, "4 0 obj\n<< /Type /XRef /Size 5 /W [1 2 1] /Root 1 0 R /Length %d >>\nstream\n", len(entries))
	buf.Write(entries)
	fmt.Fprintf(&buf, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", streamOff)

	doc, err := parse(buf.Bytes())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.NumPages() != 1 {
		t.Fatalf("pages = %d", doc.NumPages())
	}
	page, _ := doc.Page(1)
	if page.MediaBox.Width() != 300 {
		t.Errorf("MediaBox = %+v", page.MediaBox)
	}
}

func TestDecodeStreamFilters(t *testing.T) {
	plain := []byte("stripe pattern over many rows, repeated repeated repeated")

	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	zw.Write(plain)
	zw.Close()

	var a85 bytes.Buffer
	ae := ascii85.NewEncoder(&a85)
	ae.Write(plain)
	ae.Close()
	a85.WriteString("~>")

	cases := []struct {
		name   string
		filter Object
		data   []byte
	}{
		{"none", nil, plain},
		{"flate", Name("FlateDecode"), z.Bytes()},
		{"hex", Name("ASCIIHexDecode"), []byte(fmt.Sprintf("%X>", plain))},
		{"ascii85", Name("ASCII85Decode"), a85.Bytes()},
		{"chain", Array{Name("ASCII85Decode"), Name("FlateDecode")}, func() []byte {
			var chained bytes.Buffer
			enc := ascii85.NewEncoder(&chained)
			enc.Write(z.Bytes())
			enc.Close()
			chained.WriteString("~>")
			return chained.Bytes()
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dict := Dict{}
			if tc.filter != nil {
				dict["Filter"] = tc.filter
			}
			got, err := decodeStream(Stream{Dict: dict, Data: tc.data})
			if err != nil {
				t.Fatalf("decodeStream: %v", err)
			}
			if !bytes.Equal(got, plain) {
				t.Errorf("decoded %q, want %q", got, plain)
			}
		})
	}
}

func TestDecodeStreamUnsupportedFilter(t *testing.T) {
	_, err := decodeStream(Stream{
		Dict: Dict{"Filter": Name("DCTDecode")},
		Data: []byte{0xFF},
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported filter") {
		t.Fatalf("err = %v", err)
	}
}
