// Package doctpl renders JSON document templates. A template is a flat
// list of content elements plus page geometry, metadata and running
// decoration; elements flow down the page through the block, table and
// barcode renderers, breaking onto new pages as the cursor passes the
// break trigger. The schema is declarative and order-preserving, so it
// is easy for both humans and programs to generate.
//
// Example:
//
//	{
//	  "title": "Release Notes",
//	  "footer": {"text": "build 1.9.1 - page {page}"},
//	  "elements": [
//	    {"type": "heading", "text": "Release Notes", "level": 1},
//	    {"type": "paragraph", "text": "Changes in this release."},
//	    {"type": "list", "items": ["Faster startup", "Smaller output"]}
//	  ]
//	}
package doctpl

// Document is the top-level template describing one output document.
type Document struct {
	Title       string    `json:"title,omitempty"`
	Author      string    `json:"author,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Lang        string    `json:"lang,omitempty"`        // BCP 47 tag, e.g. "en-US"
	PageSize    string    `json:"pageSize,omitempty"`    // A4, Letter, Legal... (default A4)
	Orientation string    `json:"orientation,omitempty"` // portrait or landscape
	Margins     *Margins  `json:"margins,omitempty"`     // in millimeters
	Header      *Header   `json:"header,omitempty"`
	Footer      *Footer   `json:"footer,omitempty"`
	Elements    []Element `json:"elements"`
}

// Margins sets the page margins in millimeters. Bottom positions the
// page-break trigger.
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Header is the running top band: the document title on the left, the
// page number on the right, suppressed on the first page.
type Header struct {
	Title string `json:"title"`
}

// Footer is the running bottom band, centered. A literal {page} in the
// text is replaced with the page number.
type Footer struct {
	Text string `json:"text"`
}

// Element is one content block. Type selects the renderer and decides
// which other fields apply.
type Element struct {
	Type string `json:"type"` // heading, paragraph, code, list, table, barcode, spacer, pagebreak

	// heading, paragraph, code
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading level 1-3 (default 1)

	// list
	Items []string `json:"items,omitempty"`

	// table
	Columns      []string   `json:"columns,omitempty"` // header captions
	Widths       []float64  `json:"widths,omitempty"`  // per column, mm; equal split when omitted
	Rows         [][]string `json:"rows,omitempty"`
	RowHeight    float64    `json:"rowHeight,omitempty"`
	RepeatHeader bool       `json:"repeatHeader,omitempty"`

	// barcode
	Format  string `json:"format,omitempty"` // qr, code128, ean, pdf417 (default qr)
	Content string `json:"content,omitempty"`
	Align   string `json:"align,omitempty"` // L, C, R (default L)

	// barcode width/height in mm; spacer reuses height
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}
