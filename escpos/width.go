package escpos

// glyph is one entry in the width table: the byte the printer's code
// table expects for the character and its printed width in cells.
type glyph struct {
	code  byte
	width int
}

// WidthTable maps each supported character to its code table byte
// and its printed cell width in the active font. It is the leaf
// dependency of the line buffer (widths) and the encoder (codes).
type WidthTable struct {
	glyphs map[rune]glyph
}

// NewWidthTable returns a table covering printable ASCII plus the
// PC437 extended range, which is what the TM-T88 family ships as
// code table 0. All glyphs are one cell wide in Font A.
func NewWidthTable() *WidthTable {
	t := &WidthTable{glyphs: make(map[rune]glyph, 224)}
	for b := byte(0x20); b < 0x7f; b++ {
		t.Add(rune(b), b, 1)
	}
	for i, r := range cp437Upper {
		t.Add(r, byte(0x80+i), 1)
	}
	return t
}

// Add registers a glyph, overriding any previous entry for r. Used
// for printers with user-defined characters in the spare slots.
func (t *WidthTable) Add(r rune, code byte, width int) {
	t.glyphs[r] = glyph{code: code, width: width}
}

// Lookup returns the code table byte and cell width for r. ok is
// false when the character has no entry.
func (t *WidthTable) Lookup(r rune) (code byte, width int, ok bool) {
	g, ok := t.glyphs[r]
	return g.code, g.width, ok
}

// Supported reports whether r has an entry in the table.
func (t *WidthTable) Supported(r rune) bool {
	_, ok := t.glyphs[r]
	return ok
}

// RuneWidth returns the cell width of r. Characters without an entry
// measure as one cell, the width of the substitute glyph they would
// be replaced with; the encoder still rejects them.
func (t *WidthTable) RuneWidth(r rune) int {
	if g, ok := t.glyphs[r]; ok {
		return g.width
	}
	return 1
}

// StringWidth returns the total cell width of s.
func (t *WidthTable) StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += t.RuneWidth(r)
	}
	return w
}

// Sanitize replaces every character of s that has no table entry
// with sub. The result always encodes cleanly if sub itself is
// supported.
func (t *WidthTable) Sanitize(s string, sub rune) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !t.Supported(r) {
			r = sub
		}
		out = append(out, r)
	}
	return string(out)
}

// cp437Upper maps code points 0x80-0xff of IBM PC code page 437, in
// code order.
var cp437Upper = [128]rune{
	'Ç', 'ü', 'é', 'â', 'ä', 'à', 'å', 'ç', 'ê', 'ë', 'è', 'ï', 'î', 'ì', 'Ä', 'Å',
	'É', 'æ', 'Æ', 'ô', 'ö', 'ò', 'û', 'ù', 'ÿ', 'Ö', 'Ü', '¢', '£', '¥', '₧', 'ƒ',
	'á', 'í', 'ó', 'ú', 'ñ', 'Ñ', 'ª', 'º', '¿', '⌐', '¬', '½', '¼', '¡', '«', '»',
	'░', '▒', '▓', '│', '┤', '╡', '╢', '╖', '╕', '╣', '║', '╗', '╝', '╜', '╛', '┐',
	'└', '┴', '┬', '├', '─', '┼', '╞', '╟', '╚', '╔', '╩', '╦', '╠', '═', '╬', '╧',
	'╨', '╤', '╥', '╙', '╘', '╒', '╓', '╫', '╪', '┘', '┌', '█', '▄', '▌', '▐', '▀',
	'α', 'ß', 'Γ', 'π', 'Σ', 'σ', 'µ', 'τ', 'Φ', 'Θ', 'Ω', 'δ', '∞', 'φ', 'ε', '∩',
	'≡', '±', '≥', '≤', '⌠', '⌡', '÷', '≈', '°', '∙', '·', '√', 'ⁿ', '²', '■', ' ',
}
