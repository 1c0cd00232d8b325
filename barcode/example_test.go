package barcode_test

import (
	"bytes"
	"fmt"

	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/barcode"
	"github.com/octavo-go/octavo/font"
	"github.com/octavo-go/octavo/pdf"
)

// ExampleQR places a QR code under a caption and writes the document.
func ExampleQR() {
	doc, err := pdf.NewDocument()
	if err != nil {
		fmt.Println("new:", err)
		return
	}
	doc.SetFont(font.Helvetica, "", 11)
	if err := doc.AddPage(); err != nil {
		fmt.Println("page:", err)
		return
	}

	doc.Cell(0, 8, "Scan for the build manifest:", octavo.AlignLeft, false)
	doc.Ln(12)

	left, _, _, _ := doc.Margins()
	if err := barcode.QR(doc, "https://example.org/manifest", left, doc.Y(), 40); err != nil {
		fmt.Println("qr:", err)
		return
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		fmt.Println("output:", err)
		return
	}
	fmt.Println("pages:", doc.PageNo())
	// Output: pages: 1
}
