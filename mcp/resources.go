package mcp

// RegisterDefaultResources adds the built-in reference resources to the
// server: the template field reference and a working example for each of
// the two rendering front ends.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "octavo://template-schema",
		Name:        "Template Schema Reference",
		Description: "Field reference for the JSON document template accepted by the render_document tool.",
		MIMEType:    "text/markdown",
		Handler:     staticText("text/markdown", templateSchemaDoc),
	})

	s.AddResource(Resource{
		URI:         "octavo://template-example",
		Name:        "Example Template",
		Description: "A complete JSON template exercising headings, lists, code, tables, and barcodes. Pass it to render_document as-is.",
		MIMEType:    "application/json",
		Handler:     staticText("application/json", templateExample),
	})

	s.AddResource(Resource{
		URI:         "octavo://markup-example",
		Name:        "Example Markup",
		Description: "A complete markup document for the render_markup tool.",
		MIMEType:    "text/plain",
		Handler:     staticText("text/plain", markupExample),
	})
}

// staticText serves fixed reference content for a resource URI.
func staticText(mimeType, text string) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		return []ResourceContent{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}}, nil
	}
}

const templateSchemaDoc = `# JSON template reference

A template is one JSON object: document metadata, page geometry, an
optional running header and footer, and a flat "elements" array whose
entries flow down the page in order, breaking onto new pages as needed.

## Document fields

- title, author, subject: strings for the document information dictionary.
- lang: BCP 47 language tag, e.g. "en-US".
- pageSize: A4 (default), Letter, or Legal.
- orientation: portrait (default) or landscape.
- margins: {left, top, right, bottom} in millimeters. Bottom positions
  the page-break trigger.
- header: {title} draws a running head with the page number on every
  page after the first.
- footer: {text} draws a centered running footer; a literal {page} in
  the text is replaced with the page number.
- elements: array of content elements, rendered in order.

## Element types

Every element carries "type"; the remaining fields depend on it.

- heading: text, level (1 to 3; level 1 is the document title style).
- paragraph: text, wrapped to the content width.
- code: text, monospaced on a shaded background, one line per newline.
- list: items (array of strings), one bullet per item.
- table: columns (header captions), widths (millimeters per column,
  equal split when omitted), rows (array of string arrays), rowHeight,
  repeatHeader (repeat the header row after each page break).
- barcode: format (qr, code128, ean, pdf417; default qr), content,
  width and height in millimeters (qr is square and uses width),
  align (L, C, R).
- spacer: height in millimeters (default 10).
- pagebreak: no fields; starts a new page.

Blocks that do not fit before the break trigger move to the next page
automatically; long tables break between rows.
`

const templateExample = `{
  "title": "Assembler Manual",
  "author": "Octavo Project",
  "lang": "en-US",
  "pageSize": "A4",
  "margins": {"left": 20, "top": 20, "right": 20, "bottom": 25},
  "header": {"title": "Assembler Manual"},
  "footer": {"text": "page {page}"},
  "elements": [
    {"type": "heading", "text": "Assembler Manual", "level": 1},
    {"type": "paragraph", "text": "Each instruction occupies one line. Labels end with a colon and name the following instruction."},
    {"type": "heading", "text": "Registers", "level": 2},
    {"type": "list", "items": ["r0 through r7, general purpose", "sp, the stack pointer"]},
    {"type": "code", "text": "loop:\n  add r0 r1\n  jmp loop"},
    {"type": "heading", "text": "Opcodes", "level": 2},
    {"type": "table",
     "columns": ["Opcode", "Args", "Effect"],
     "widths": [30, 40, 90],
     "rows": [["add", "a b", "a = a + b"], ["jmp", "label", "branch always"]],
     "repeatHeader": true},
    {"type": "spacer", "height": 8},
    {"type": "barcode", "format": "qr", "content": "https://example.org/manual", "width": 30, "align": "C"}
  ]
}
`

const markupExample = `title "Build Report"
footer "octavo - page {page}"
section "Summary"
para "All targets compiled without warnings."
bullet "37 packages built"
bullet "212 tests passed"
code ` + "```" + `
$ make release
ok  build/core  1.2s
ok  build/cli   0.4s
` + "```" + `
section "Targets"
table (40, 30, 70) {
  header ("Target", "Status", "Notes")
  row ("core", "ok", "no changes")
  row ("cli", "ok", "rebuilt")
}
barcode qr "https://example.org/build/1191" 35
`
