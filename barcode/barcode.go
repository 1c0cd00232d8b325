// Package barcode draws machine-readable codes as vector rectangles.
//
// Symbols are encoded with github.com/boombuler/barcode (QR, Code 128,
// EAN) and github.com/ruudk/golang-pdf417 (PDF417); the resulting module
// grid is mapped onto a target rectangle and every dark module becomes a
// filled rectangle, with horizontal runs merged so a QR code costs tens
// of rectangles instead of hundreds. Codes scale losslessly and never
// blur, unlike raster images.
package barcode

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"

	octavo "github.com/octavo-go/octavo"
)

// Draw maps the module grid of bc onto the w x h rectangle whose top-left
// corner is at (x, y), in the document's units. Dark modules are painted
// black; the caller's style is restored afterwards. The cursor does not
// move and no page break is triggered, so the code lands on the current
// page wherever the caller placed it.
func Draw(d *octavo.Doc, bc barcode.Barcode, x, y, w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("barcode: size %g x %g, want positive", w, h)
	}
	bounds := bc.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols == 0 || rows == 0 {
		return fmt.Errorf("barcode: %s encoder produced an empty grid", bc.Metadata().CodeKind)
	}
	mw := w / float64(cols)
	mh := h / float64(rows)

	saved := d.Style()
	d.SetFillColor(0, 0, 0)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; {
			if !dark(bc, bounds.Min.X+col, bounds.Min.Y+row) {
				col++
				continue
			}
			run := col + 1
			for run < cols && dark(bc, bounds.Min.X+run, bounds.Min.Y+row) {
				run++
			}
			if err := d.FillRect(x+float64(col)*mw, y+float64(row)*mh, float64(run-col)*mw, mh); err != nil {
				return err
			}
			col = run
		}
	}
	d.SetStyle(saved)
	return nil
}

func dark(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

// QR draws content as a QR code in a size x size square at (x, y), using
// medium error correction.
func QR(d *octavo.Doc, content string, x, y, size float64) error {
	bc, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return fmt.Errorf("barcode: qr: %w", err)
	}
	return Draw(d, bc, x, y, size, size)
}

// Code128 draws content as a Code 128 symbol filling the w x h rectangle
// at (x, y).
func Code128(d *octavo.Doc, content string, x, y, w, h float64) error {
	bc, err := code128.Encode(content)
	if err != nil {
		return fmt.Errorf("barcode: code128: %w", err)
	}
	return Draw(d, bc, x, y, w, h)
}

// EAN draws content as an EAN-8 or EAN-13 symbol, chosen by digit count.
// A 7 or 12 digit content gets its check digit computed; an 8 or 13 digit
// content has its check digit verified.
func EAN(d *octavo.Doc, content string, x, y, w, h float64) error {
	bc, err := ean.Encode(content)
	if err != nil {
		return fmt.Errorf("barcode: ean: %w", err)
	}
	return Draw(d, bc, x, y, w, h)
}

// PDF417 draws content as a PDF417 symbol filling the w x h rectangle at
// (x, y), with 4 data columns and security level 2.
func PDF417(d *octavo.Doc, content string, x, y, w, h float64) error {
	return Draw(d, pdf417.Encode(content, 4, 2), x, y, w, h)
}
