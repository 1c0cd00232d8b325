package font

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseTTF(t *testing.T) {
	m, err := ParseTTF(goregular.TTF)
	if err != nil {
		t.Fatalf("parsing Go Regular: %v", err)
	}
	if name := m.Name(); name == "" {
		t.Error("expected a non-empty font name")
	}

	w, ok := m.RuneAdvance('m')
	if !ok {
		t.Fatal("no glyph for 'm'")
	}
	i, ok := m.RuneAdvance('i')
	if !ok {
		t.Fatal("no glyph for 'i'")
	}
	if i >= w {
		t.Errorf("'i' advance (%.1f) not narrower than 'm' (%.1f)", i, w)
	}
}

func TestParseTTFRejectsGarbage(t *testing.T) {
	if _, err := ParseTTF([]byte("not a font")); err == nil {
		t.Error("expected an error for non-font data")
	}
}

func TestTTFTextWidth(t *testing.T) {
	m, err := ParseTTF(goregular.TTF)
	if err != nil {
		t.Fatalf("parsing Go Regular: %v", err)
	}
	short := m.TextWidth("go", 12)
	long := m.TextWidth("gopher gopher", 12)
	if short <= 0 || long <= short {
		t.Errorf("widths not monotonic: %.2f vs %.2f", short, long)
	}
}

func TestTTFMonospace(t *testing.T) {
	m, err := ParseTTF(gomono.TTF)
	if err != nil {
		t.Fatalf("parsing Go Mono: %v", err)
	}
	a, ok := m.RuneAdvance('i')
	if !ok {
		t.Fatal("no glyph for 'i'")
	}
	b, ok := m.RuneAdvance('W')
	if !ok {
		t.Fatal("no glyph for 'W'")
	}
	if a != b {
		t.Errorf("monospace advances differ: %.1f vs %.1f", a, b)
	}
}
