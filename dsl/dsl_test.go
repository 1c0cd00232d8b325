package dsl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/octavo-go/octavo/doctpl"
	"github.com/octavo-go/octavo/dsl"
	"github.com/octavo-go/octavo/reader"
)

const manual = `title "Compiler Reference"
footer "v1.9.1 - generated"
section "Language"
para "Statements are newline separated."
bullet "First point"
bullet "Second point"
code ` + "```" + `
10 PRINT "HI"
20 GOTO 10
` + "```" + `
table (30, 50, 60) {
  header ("Op", "Args", "Notes")
  row ("add", "a b", "sum")
  row ("jmp", "label", "branch")
}
barcode qr "https://example.org" 40
pagebreak
`

func TestParseFullDocument(t *testing.T) {
	got, err := dsl.Parse(manual)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &doctpl.Document{
		Title:  "Compiler Reference",
		Footer: &doctpl.Footer{Text: "v1.9.1 - generated"},
		Elements: []doctpl.Element{
			{Type: "heading", Text: "Compiler Reference", Level: 1},
			{Type: "heading", Text: "Language", Level: 2},
			{Type: "paragraph", Text: "Statements are newline separated."},
			{Type: "list", Items: []string{"First point", "Second point"}},
			{Type: "code", Text: "10 PRINT \"HI\"\n20 GOTO 10"},
			{
				Type:    "table",
				Widths:  []float64{30, 50, 60},
				Columns: []string{"Op", "Args", "Notes"},
				Rows:    [][]string{{"add", "a b", "sum"}, {"jmp", "label", "branch"}},
			},
			{Type: "barcode", Format: "qr", Content: "https://example.org", Width: 40},
			{Type: "pagebreak"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBulletsSplitByParagraph(t *testing.T) {
	got, err := dsl.Parse(`bullet "a"
bullet "b"
para "between"
bullet "c"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []doctpl.Element{
		{Type: "list", Items: []string{"a", "b"}},
		{Type: "paragraph", Text: "between"},
		{Type: "list", Items: []string{"c"}},
	}
	if diff := cmp.Diff(want, got.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSemicolonSeparators(t *testing.T) {
	got, err := dsl.Parse(`para "a"; para "b"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(got.Elements))
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	got, err := dsl.Parse(`# build sheet

# heading next
para "body"

`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []doctpl.Element{{Type: "paragraph", Text: "body"}}
	if diff := cmp.Diff(want, got.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptySource(t *testing.T) {
	got, err := dsl.Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Elements) != 0 || got.Footer != nil || got.Title != "" {
		t.Errorf("non-empty document from empty source: %+v", got)
	}
}

func TestParseBarcodeDefaults(t *testing.T) {
	got, err := dsl.Parse(`barcode code128 "SERIAL-42"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []doctpl.Element{{Type: "barcode", Format: "code128", Content: "SERIAL-42"}}
	if diff := cmp.Diff(want, got.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := dsl.Parse("title \"ok\"\nbogus \"x\"\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "2:1") {
		t.Errorf("error lacks position: %v", err)
	}
}

func TestParseTableRowWidthMismatch(t *testing.T) {
	_, err := dsl.Parse(`table (30, 50, 60) {
  row ("a", "b")
}
`)
	if err == nil || !strings.Contains(err.Error(), "row 1 has 2 cells, want 3") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseRejectsSecondHeader(t *testing.T) {
	_, err := dsl.Parse(`table (30, 30) {
  header ("a", "b")
  header ("c", "d")
}
`)
	if err == nil || !strings.Contains(err.Error(), "more than one header") {
		t.Fatalf("err = %v", err)
	}
}

func TestParsedMarkupRenders(t *testing.T) {
	doc, err := dsl.Parse(manual)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := doctpl.RenderDocument(&buf, doc); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	rd, err := reader.ReadFrom(&buf)
	if err != nil {
		t.Fatalf("reading rendered output: %v", err)
	}
	// The trailing pagebreak opens a second, empty page.
	if rd.NumPages() != 2 {
		t.Fatalf("pages = %d, want 2", rd.NumPages())
	}
	page, err := rd.Page(1)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	text, err := page.ExtractText()
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	for _, want := range []string{
		"Compiler Reference",
		"• First point",
		"10 PRINT \"HI\"",
		"add",
		"v1.9.1 - generated",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("page text missing %q", want)
		}
	}
	if meta := rd.Metadata(); meta["Title"] != "Compiler Reference" {
		t.Errorf("Title = %q", meta["Title"])
	}
}
