package escpos

// Control sequences for ESC/POS printers (Epson TM-T88 class).
// Byte values follow the Epson ESC/POS application programming guide.
var (
	// ESC @ - initialize printer, clears modes and buffers
	cmdInit = []byte{0x1b, 0x40}
	// ESC E n - emphasized (bold) mode
	cmdBoldOn  = []byte{0x1b, 0x45, 0x01}
	cmdBoldOff = []byte{0x1b, 0x45, 0x00}
	// ESC - n - underline mode
	cmdUnderlineOn  = []byte{0x1b, 0x2d, 0x01}
	cmdUnderlineOff = []byte{0x1b, 0x2d, 0x00}
	// GS V m - paper cut (partial)
	cmdCut = []byte{0x1d, 0x56, 0x01}
)

const (
	lineFeed = 0x0a
)

// sizeCommand returns GS ! n selecting character size. Width and
// height are scaled independently, 1x or 2x.
func sizeCommand(wide, tall bool) []byte {
	var n byte
	if wide {
		n |= 0x20
	}
	if tall {
		n |= 0x10
	}
	return []byte{0x1d, 0x21, n}
}

// codePageCommand returns ESC t n selecting the printer's character
// code table. 0 selects PC437.
func codePageCommand(page byte) []byte {
	return []byte{0x1b, 0x74, page}
}

// leftMarginCommand returns GS L nL nH setting the hardware left
// margin in horizontal motion units.
func leftMarginCommand(units int) []byte {
	return []byte{0x1d, 0x4c, byte(units % 256), byte(units / 256)}
}

// feedCommand returns ESC d n, feeding n lines of paper.
func feedCommand(lines int) []byte {
	return []byte{0x1b, 0x64, byte(lines)}
}

// Setup returns the session prelude sent once per connection:
// printer initialization, code page selection and the hardware left
// margin.
func Setup(cfg Config, marginUnits int) []byte {
	out := append([]byte{}, cmdInit...)
	out = append(out, codePageCommand(cfg.CodePage)...)
	if marginUnits > 0 {
		out = append(out, leftMarginCommand(marginUnits)...)
	}
	return out
}

// rasterCommand returns the GS v 0 introducer for a raster block of
// the given dimensions. widthBytes is the number of data bytes per
// row, height the number of dot rows. The raw row data follows the
// introducer verbatim.
func rasterCommand(widthBytes, height int) []byte {
	return []byte{
		0x1d, 0x76, 0x30, 0x00,
		byte(widthBytes % 256), byte(widthBytes / 256),
		byte(height % 256), byte(height / 256),
	}
}
