package escpos

import "testing"

func TestWidthTableLookup(t *testing.T) {
	table := NewWidthTable()
	tests := []struct {
		r    rune
		code byte
	}{
		{' ', 0x20},
		{'A', 0x41},
		{'~', 0x7e},
		{'é', 0x82},
		{'ñ', 0xa4},
		{'░', 0xb0},
		{'█', 0xdb},
		{'°', 0xf8},
	}
	for _, tt := range tests {
		code, width, ok := table.Lookup(tt.r)
		if !ok {
			t.Errorf("%q has no entry", tt.r)
			continue
		}
		if code != tt.code {
			t.Errorf("%q: expecting code %#02x, got %#02x", tt.r, tt.code, code)
		}
		if width != 1 {
			t.Errorf("%q: expecting width 1, got %d", tt.r, width)
		}
	}
}

func TestWidthTableUnsupported(t *testing.T) {
	table := NewWidthTable()
	for _, r := range []rune{'→', '€', '\x07', '漢'} {
		if table.Supported(r) {
			t.Errorf("%q should not be supported", r)
		}
		if _, _, ok := table.Lookup(r); ok {
			t.Errorf("%q lookup should fail", r)
		}
		// Unknown characters still measure one cell, the width of
		// the glyph they would be substituted with.
		if w := table.RuneWidth(r); w != 1 {
			t.Errorf("%q: expecting width 1, got %d", r, w)
		}
	}
}

func TestStringWidth(t *testing.T) {
	table := NewWidthTable()
	if w := table.StringWidth("hello "); w != 6 {
		t.Fatalf("expecting 6, got %d", w)
	}
	if w := table.StringWidth("café"); w != 4 {
		t.Fatalf("expecting 4, got %d", w)
	}
	if w := table.StringWidth(""); w != 0 {
		t.Fatalf("expecting 0, got %d", w)
	}
}

func TestSanitize(t *testing.T) {
	table := NewWidthTable()
	if got := table.Sanitize("a→b€c", '?'); got != "a?b?c" {
		t.Fatalf("expecting %q, got %q", "a?b?c", got)
	}
	if got := table.Sanitize("plain", '?'); got != "plain" {
		t.Fatalf("clean string changed: %q", got)
	}
}

func TestAddOverride(t *testing.T) {
	table := NewWidthTable()
	table.Add('→', 0x1a, 1)
	code, _, ok := table.Lookup('→')
	if !ok || code != 0x1a {
		t.Fatalf("expecting user glyph at 0x1a, got %#02x ok=%v", code, ok)
	}
}
