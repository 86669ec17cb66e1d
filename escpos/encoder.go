package escpos

// Line is a committed line handed to the encoder. Exactly one of
// Text or Raster is meaningful: a text line carries its character
// payload, a graphics line carries a converted raster block. Lines
// are immutable once emitted by the buffer.
type Line struct {
	Text   string
	Raster *Raster
	// Width is the total cell width of a text line, recorded at
	// commit time.
	Width int
}

// IsRaster reports whether the line is an atomic graphics payload.
func (l Line) IsRaster() bool { return l.Raster != nil }

// Style holds the out-of-band print mode toggles. Changes are
// signalled to the encoder between lines and emitted as control
// sequences in front of the next line's payload.
type Style struct {
	Bold      bool
	Underline bool
	Wide      bool
	Tall      bool
}

// Encoder turns committed lines into the literal byte sequences the
// printer firmware expects. It never reorders and never buffers
// across calls: one line in, one byte sequence out, call order equals
// output order. The only state it keeps between calls is the set of
// pending style toggles.
type Encoder struct {
	Table *WidthTable

	style   Style
	pending []byte
}

// NewEncoder returns an encoder using the given width table for
// character codes.
func NewEncoder(table *WidthTable) *Encoder {
	return &Encoder{Table: table}
}

// SetStyle queues the control sequences needed to move the printer
// from the current style to s. They are flushed in front of the next
// encoded line.
func (e *Encoder) SetStyle(s Style) {
	cur := e.style
	if s.Bold != cur.Bold {
		if s.Bold {
			e.pending = append(e.pending, cmdBoldOn...)
		} else {
			e.pending = append(e.pending, cmdBoldOff...)
		}
	}
	if s.Underline != cur.Underline {
		if s.Underline {
			e.pending = append(e.pending, cmdUnderlineOn...)
		} else {
			e.pending = append(e.pending, cmdUnderlineOff...)
		}
	}
	if s.Wide != cur.Wide || s.Tall != cur.Tall {
		e.pending = append(e.pending, sizeCommand(s.Wide, s.Tall)...)
	}
	e.style = s
}

// Encode returns the byte sequence for one committed line: pending
// style sequences, then the payload, then the trailing line feed.
// For a graphics line the payload is the GS v 0 introducer followed
// by the raw raster data, with no character encoding transform. A
// text character missing from the width table fails the call with
// UnsupportedGlyphError and leaves the pending style sequences
// queued.
func (e *Encoder) Encode(l Line) ([]byte, error) {
	var payload []byte
	if l.IsRaster() {
		r := l.Raster
		payload = append(rasterCommand(r.RowBytes(), r.Height()), r.Data()...)
	} else {
		payload = make([]byte, 0, len(l.Text)+1)
		for _, r := range l.Text {
			code, _, ok := e.Table.Lookup(r)
			if !ok {
				return nil, &UnsupportedGlyphError{Glyph: r}
			}
			payload = append(payload, code)
		}
		payload = append(payload, lineFeed)
	}
	out := append(e.pending, payload...)
	e.pending = nil
	return out, nil
}
