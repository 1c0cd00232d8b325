package font

import "strings"

// winAnsiSpecials maps the runes that occupy the cp1252 0x80-0x9F block.
// The remaining WinAnsi positions coincide with Latin-1.
var winAnsiSpecials = map[rune]byte{
	'€': 0x80, // euro
	'‚': 0x82,
	'ƒ': 0x83,
	'„': 0x84,
	'…': 0x85, // ellipsis
	'†': 0x86,
	'‡': 0x87,
	'ˆ': 0x88,
	'‰': 0x89,
	'Š': 0x8A,
	'‹': 0x8B,
	'Œ': 0x8C,
	'Ž': 0x8E,
	'‘': 0x91,
	'’': 0x92,
	'“': 0x93,
	'”': 0x94,
	'•': 0x95, // bullet
	'–': 0x96, // en dash
	'—': 0x97, // em dash
	'˜': 0x98,
	'™': 0x99,
	'š': 0x9A,
	'›': 0x9B,
	'œ': 0x9C,
	'ž': 0x9E,
	'Ÿ': 0x9F,
}

// EncodeWinAnsi converts s to WinAnsi (cp1252) bytes. Runes outside the
// encoding are replaced with '?'.
func EncodeWinAnsi(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			out = append(out, byte(r))
		case r >= 0xA0 && r <= 0xFF:
			out = append(out, byte(r))
		default:
			if b, ok := winAnsiSpecials[r]; ok {
				out = append(out, b)
			} else {
				out = append(out, '?')
			}
		}
	}
	return out
}

var winAnsiRunes = func() map[byte]rune {
	m := make(map[byte]rune, len(winAnsiSpecials))
	for r, b := range winAnsiSpecials {
		m[b] = r
	}
	return m
}()

// DecodeWinAnsi converts WinAnsi (cp1252) bytes back to a string.
// Unassigned positions in the 0x80-0x9F block decode as-is.
func DecodeWinAnsi(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if r, ok := winAnsiRunes[c]; ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
