// Package escpos converts a stream of input tokens into ESC/POS byte
// sequences for a thermal receipt printer: a line buffer wraps text
// to the printhead's column width, a converter turns ASCII art and
// bitmaps into raster rows, an encoder produces the literal command
// bytes and a job driver streams them to the transport.
package escpos

import "fmt"

const (
	// DefaultCellWidth is the dot width of one character cell in
	// the TM-T88 Font A.
	DefaultCellWidth = 12
	// DefaultCellHeight is the dot height of one character cell in
	// the TM-T88 Font A.
	DefaultCellHeight = 24
)

// Config carries the printer geometry and encoding parameters the
// core needs. It is provided at construction time; nothing in the
// package reads configuration from anywhere else.
type Config struct {
	// Columns is the line width limit in character cells. Every
	// emitted text line is at most this wide, except pieces of a
	// hard-split token, which are split at exactly this width.
	Columns int
	// MaxDots is the maximum addressable raster width in dots.
	MaxDots int
	// CellWidth and CellHeight are the dot dimensions of one
	// character cell, used to scale ASCII art regions.
	CellWidth  int
	CellHeight int
	// CodePage selects the printer's character code table (ESC t n).
	CodePage byte
}

func (c Config) validate() error {
	if c.Columns <= 0 {
		return fmt.Errorf("invalid line width limit %d, must be > 0", c.Columns)
	}
	if c.MaxDots <= 0 {
		return fmt.Errorf("invalid maximum raster width %d, must be > 0", c.MaxDots)
	}
	return nil
}

func (c Config) cellWidth() int {
	if c.CellWidth > 0 {
		return c.CellWidth
	}
	return DefaultCellWidth
}

func (c Config) cellHeight() int {
	if c.CellHeight > 0 {
		return c.CellHeight
	}
	return DefaultCellHeight
}
