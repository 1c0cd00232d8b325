package block

import "strings"

// wrapLines splits text into drawable lines no wider than maxW as
// reported by measure. Explicit newlines start new lines; runs of
// whitespace collapse to single spaces.
func wrapLines(measure func(string) float64, text string, maxW float64) []string {
	var out []string
	for _, seg := range strings.Split(text, "\n") {
		out = append(out, wrapSegment(measure, seg, maxW)...)
	}
	return out
}

func wrapSegment(measure func(string) float64, seg string, maxW float64) []string {
	words := strings.Fields(seg)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, word := range words {
		// A word wider than a whole line is broken mid-word.
		for measure(word) > maxW {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			runes := []rune(word)
			n := 1
			for n < len(runes) && measure(string(runes[:n+1])) <= maxW {
				n++
			}
			lines = append(lines, string(runes[:n]))
			word = string(runes[n:])
			if word == "" {
				break
			}
		}
		switch {
		case word == "":
		case cur == "":
			cur = word
		case measure(cur+" "+word) <= maxW:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
