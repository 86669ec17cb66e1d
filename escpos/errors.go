package escpos

import (
	"errors"
	"fmt"
)

var (
	errNilSink  = errors.New("line buffer requires a print sink")
	errJobEnded = errors.New("print job already ended")
)

// RegionTooWideError is returned when a graphics region's source is
// wider than the printer's maximum addressable raster width. The
// region fails as a whole, it is never silently cropped.
type RegionTooWideError struct {
	Dots    int
	MaxDots int
}

func (e *RegionTooWideError) Error() string {
	return fmt.Sprintf("graphics region is %d dots wide, printer maximum is %d", e.Dots, e.MaxDots)
}

// UnsupportedGlyphError is returned by the encoder for a character
// with no entry in the width table. The caller decides whether to
// substitute, skip or abort.
type UnsupportedGlyphError struct {
	Glyph rune
}

func (e *UnsupportedGlyphError) Error() string {
	return fmt.Sprintf("no printer encoding for character %q", e.Glyph)
}

// TransportError is returned when writing a print job to the
// transport fails. Bytes already handed to the printer cannot be
// retracted, so the error reports how much of the job was delivered
// before the failure.
type TransportError struct {
	Delivered int
	Total     int
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("print job partially delivered: %d of %d lines: %v", e.Delivered, e.Total, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
