// Package dsl parses a compact line-oriented markup into document
// templates. One statement per line, keyword first:
//
//	title "Compiler Reference"
//	footer "v1.9.1 - generated"
//	section "Language"
//	para "Statements are newline separated."
//	bullet "First point"
//	code ```
//	10 PRINT "HI"
//	```
//	table (30, 50, 60) {
//	  header ("Op", "Args", "Notes")
//	  row ("add", "a b", "sum")
//	}
//	barcode qr "https://example.org" 40
//	pagebreak
//
// Parse returns a doctpl.Document ready for rendering; parse errors
// carry the offending line and column.
package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/octavo-go/octavo/doctpl"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "CodeBlock", Pattern: "```(?:[^`]|`[^`]|``[^`])*```"},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[(),{};]`},
	})

	markupParser = participle.MustBuild[document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

type document struct {
	Statements []*statement `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

type statement struct {
	Title      *stringLit   `parser:"  'title' @String"`
	Footer     *stringLit   `parser:"| 'footer' @String"`
	Section    *stringLit   `parser:"| 'section' @String"`
	Subsection *stringLit   `parser:"| 'subsection' @String"`
	Para       *stringLit   `parser:"| 'para' @String"`
	Bullet     *stringLit   `parser:"| 'bullet' @String"`
	Code       *codeText    `parser:"| 'code' @CodeBlock"`
	Table      *tableStmt   `parser:"| @@"`
	Barcode    *barcodeStmt `parser:"| @@"`
	Pagebreak  bool         `parser:"| @'pagebreak'"`
}

type tableStmt struct {
	Widths []float64   `parser:"'table' '(' @Number ( ',' @Number )* ')'"`
	Rows   []*tableRow `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

type tableRow struct {
	Kind  string      `parser:"@( 'header' | 'row' )"`
	Cells []stringLit `parser:"'(' @String ( ',' @String )* ')'"`
}

type barcodeStmt struct {
	Format  string    `parser:"'barcode' @Ident"`
	Content stringLit `parser:"@String"`
	Width   float64   `parser:"@Number?"`
	Height  float64   `parser:"@Number?"`
}

// stringLit unquotes Go-style string tokens on capture.
type stringLit string

func (s *stringLit) Capture(values []string) error {
	unquoted, err := strconv.Unquote(values[0])
	if err != nil {
		return fmt.Errorf("string literal %s: %w", values[0], err)
	}
	*s = stringLit(unquoted)
	return nil
}

// codeText strips the fences and their adjacent newlines from a fenced
// code token on capture, keeping interior newlines and indentation.
type codeText string

func (c *codeText) Capture(values []string) error {
	body := strings.TrimPrefix(values[0], "```")
	body = strings.TrimSuffix(body, "```")
	*c = codeText(strings.Trim(body, "\n"))
	return nil
}

// Parse converts markup source into a document template. Adjacent bullet
// statements merge into one list element.
func Parse(src string) (*doctpl.Document, error) {
	ast, err := markupParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("dsl: %w", err)
	}
	return convert(ast)
}

func convert(ast *document) (*doctpl.Document, error) {
	doc := &doctpl.Document{}
	for _, st := range ast.Statements {
		switch {
		case st.Title != nil:
			doc.Title = string(*st.Title)
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "heading", Text: string(*st.Title), Level: 1})
		case st.Footer != nil:
			doc.Footer = &doctpl.Footer{Text: string(*st.Footer)}
		case st.Section != nil:
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "heading", Text: string(*st.Section), Level: 2})
		case st.Subsection != nil:
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "heading", Text: string(*st.Subsection), Level: 3})
		case st.Para != nil:
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "paragraph", Text: string(*st.Para)})
		case st.Bullet != nil:
			if n := len(doc.Elements); n > 0 && doc.Elements[n-1].Type == "list" {
				doc.Elements[n-1].Items = append(doc.Elements[n-1].Items, string(*st.Bullet))
			} else {
				doc.Elements = append(doc.Elements, doctpl.Element{Type: "list", Items: []string{string(*st.Bullet)}})
			}
		case st.Code != nil:
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "code", Text: string(*st.Code)})
		case st.Table != nil:
			el, err := convertTable(st.Table)
			if err != nil {
				return nil, err
			}
			doc.Elements = append(doc.Elements, el)
		case st.Barcode != nil:
			doc.Elements = append(doc.Elements, doctpl.Element{
				Type:    "barcode",
				Format:  strings.ToLower(st.Barcode.Format),
				Content: string(st.Barcode.Content),
				Width:   st.Barcode.Width,
				Height:  st.Barcode.Height,
			})
		case st.Pagebreak:
			doc.Elements = append(doc.Elements, doctpl.Element{Type: "pagebreak"})
		}
	}
	return doc, nil
}

func convertTable(t *tableStmt) (doctpl.Element, error) {
	el := doctpl.Element{Type: "table", Widths: t.Widths}
	for i, row := range t.Rows {
		if len(row.Cells) != len(t.Widths) {
			return el, fmt.Errorf("dsl: table row %d has %d cells, want %d", i+1, len(row.Cells), len(t.Widths))
		}
		cells := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = string(c)
		}
		if row.Kind == "header" {
			if el.Columns != nil {
				return el, fmt.Errorf("dsl: table has more than one header row")
			}
			el.Columns = cells
			continue
		}
		el.Rows = append(el.Rows, cells)
	}
	return el, nil
}
