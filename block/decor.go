package block

import (
	"fmt"
	"strconv"
	"strings"

	octavo "github.com/octavo-go/octavo"
	"github.com/octavo-go/octavo/font"
)

// RunningHeader returns a header hook that draws title on the left and
// the page number on the right across the top band, then leaves the
// cursor below the band so content starts under it. Page 1 is left
// bare.
func RunningHeader(title string) octavo.HookFunc {
	return func(d *octavo.Doc) error {
		if d.PageNo() <= 1 {
			return nil
		}
		d.SetFont(font.Helvetica, "I", 9)
		d.SetTextColor(128, 128, 128)
		half := d.ContentWidth() / 2
		if err := d.Cell(half, 10, title, octavo.AlignLeft, false); err != nil {
			return err
		}
		if err := d.Cell(half, 10, fmt.Sprintf("Page %d", d.PageNo()), octavo.AlignRight, false); err != nil {
			return err
		}
		return d.Ln(10)
	}
}

// RunningFooter returns a footer hook that draws caption centered near
// the bottom edge of every page. A literal {page} in the caption is
// replaced with the page number.
func RunningFooter(caption string) octavo.HookFunc {
	return func(d *octavo.Doc) error {
		d.SetY(-15)
		d.SetFont(font.Helvetica, "I", 8)
		d.SetTextColor(128, 128, 128)
		text := strings.ReplaceAll(caption, "{page}", strconv.Itoa(d.PageNo()))
		return d.Cell(0, 10, text, octavo.AlignCenter, false)
	}
}
