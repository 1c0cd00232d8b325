package reader

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"

	"github.com/octavo-go/octavo/font"
)

// TextSpan is one text-showing operation: the decoded string with the
// position, font resource name and size in effect when it was shown.
// Coordinates are bottom-up page space.
type TextSpan struct {
	X, Y float64
	Font string
	Size float64
	Text string
}

// FilledRect is one rectangle painted by a fill operator, with the fill
// color in effect at paint time.
type FilledRect struct {
	X, Y, W, H float64
	R, G, B    float64 // each in [0, 1]
}

// RGB255 returns the fill color scaled to 8-bit components.
func (r FilledRect) RGB255() (int, int, int) {
	return int(math.Round(r.R * 255)), int(math.Round(r.G * 255)), int(math.Round(r.B * 255))
}

// TextSpans returns every text-showing operation on the page, in drawing
// order.
func (p *Page) TextSpans() ([]TextSpan, error) {
	spans, _, err := p.scanContent()
	return spans, err
}

// FilledRects returns every rectangle painted by a fill operator, in
// drawing order.
func (p *Page) FilledRects() ([]FilledRect, error) {
	_, rects, err := p.scanContent()
	return rects, err
}

// ExtractText returns the page text in drawing order. Spans sharing a
// baseline are joined with spaces; a baseline change starts a new line.
func (p *Page) ExtractText() (string, error) {
	spans, _, err := p.scanContent()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	lastY := math.NaN()
	for i, s := range spans {
		if i > 0 {
			if s.Y == lastY {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(s.Text)
		lastY = s.Y
	}
	return sb.String(), nil
}

func (p *Page) scanContent() ([]TextSpan, []FilledRect, error) {
	data, err := p.ContentStream()
	if err != nil {
		return nil, nil, err
	}
	return scanContentStream(data)
}

type fillColor struct {
	r, g, b float64
}

// scanContentStream interprets the operator subset conforming composers
// emit: graphics state save/restore, device fill colors, rectangle paths
// with fill operators, and simple text objects. Unknown operators are
// skipped after consuming their operands.
func scanContentStream(data []byte) ([]TextSpan, []FilledRect, error) {
	var (
		spans []TextSpan
		rects []FilledRect

		fill  fillColor // default fill is black
		stack []fillColor
		path  []FilledRect

		fontName string
		fontSize float64
		tx, ty   float64
		leading  float64
		operands []Object
	)

	num := func(i int) (float64, bool) {
		if i < 0 || i >= len(operands) {
			return 0, false
		}
		return numValue(operands[i])
	}
	showText := func(raw []byte) {
		spans = append(spans, TextSpan{
			X:    tx,
			Y:    ty,
			Font: fontName,
			Size: fontSize,
			Text: decodeTextString(raw),
		})
	}
	lastString := func() ([]byte, bool) {
		if n := len(operands); n > 0 {
			if s, ok := operands[n-1].(String); ok {
				return s.Value, true
			}
		}
		return nil, false
	}

	p := newParser(data)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}
		b := p.data[p.pos]
		if b == '(' || b == '<' || b == '[' || b == '/' || b == '+' || b == '-' || b == '.' ||
			(b >= '0' && b <= '9') {
			obj, err := p.ParseObject()
			if err != nil {
				return nil, nil, fmt.Errorf("reader: content stream: %w", err)
			}
			operands = append(operands, obj)
			continue
		}
		op := p.readToken()
		if op == "" {
			// Stray delimiter outside any object; skip it.
			p.pos++
			operands = operands[:0]
			continue
		}

		n := len(operands)
		switch op {
		case "q":
			stack = append(stack, fill)
		case "Q":
			if len(stack) > 0 {
				fill = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		case "g":
			if v, ok := num(n - 1); ok {
				fill = fillColor{v, v, v}
			}
		case "rg":
			r, okR := num(n - 3)
			g, okG := num(n - 2)
			bl, okB := num(n - 1)
			if okR && okG && okB {
				fill = fillColor{r, g, bl}
			}
		case "re":
			x, okX := num(n - 4)
			y, okY := num(n - 3)
			w, okW := num(n - 2)
			h, okH := num(n - 1)
			if okX && okY && okW && okH {
				path = append(path, FilledRect{X: x, Y: y, W: w, H: h})
			}
		case "f", "F", "f*", "b", "b*", "B", "B*":
			for _, r := range path {
				r.R, r.G, r.B = fill.r, fill.g, fill.b
				rects = append(rects, r)
			}
			path = path[:0]
		case "n", "S", "s":
			path = path[:0]
		case "BT":
			tx, ty = 0, 0
		case "Tf":
			if n >= 2 {
				if name, ok := operands[n-2].(Name); ok {
					fontName = string(name)
				}
			}
			if v, ok := num(n - 1); ok {
				fontSize = v
			}
		case "TL":
			if v, ok := num(n - 1); ok {
				leading = v
			}
		case "Td", "TD":
			x, okX := num(n - 2)
			y, okY := num(n - 1)
			if okX && okY {
				tx += x
				ty += y
				if op == "TD" {
					leading = -y
				}
			}
		case "Tm":
			// Only the translation part of the matrix is tracked.
			x, okX := num(n - 2)
			y, okY := num(n - 1)
			if okX && okY {
				tx, ty = x, y
			}
		case "T*":
			ty -= leading
		case "Tj":
			if raw, ok := lastString(); ok {
				showText(raw)
			}
		case "'", "\"":
			ty -= leading
			if raw, ok := lastString(); ok {
				showText(raw)
			}
		case "TJ":
			if n >= 1 {
				if arr, ok := operands[n-1].(Array); ok {
					var raw []byte
					for _, el := range arr {
						if s, ok := el.(String); ok {
							raw = append(raw, s.Value...)
						}
					}
					showText(raw)
				}
			}
		}
		operands = operands[:0]
	}
	return spans, rects, nil
}

// decodeTextString decodes a shown or metadata string: UTF-16BE when the
// byte order mark is present, WinAnsi otherwise.
func decodeTextString(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return decodeUTF16BE(b[2:])
	}
	return font.DecodeWinAnsi(b)
}

func decodeUTF16BE(b []byte) string {
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	u16s := make([]uint16, len(b)/2)
	for i := range u16s {
		u16s[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(u16s))
}
