package escpos

import "image"

// Region is a bounded block of graphics input, held as a boolean dot
// grid. It is built once from ASCII art or an image, converted once
// and then discarded.
type Region struct {
	width  int
	height int
	dots   []bool
}

// NewTextRegion builds a region from ASCII art lines. Every
// non-space character becomes a cellW x cellH block of black dots,
// so the art prints at the same size the equivalent text would. The
// grid width covers the widest line in full: a character in the last
// column of a line produces dots all the way to the region's right
// edge.
func NewTextRegion(lines []string, cellW, cellH int) *Region {
	cols := 0
	grids := make([][]rune, len(lines))
	for i, line := range lines {
		rs := []rune(line)
		grids[i] = rs
		if len(rs) > cols {
			cols = len(rs)
		}
	}
	// The dot width derives from the full column count, including
	// the last column. Sizing the buffer from cols-1 is the classic
	// off-by-one that chops the final character off every row.
	r := &Region{
		width:  cols * cellW,
		height: len(lines) * cellH,
	}
	r.dots = make([]bool, r.width*r.height)
	for y, rs := range grids {
		for x, ch := range rs {
			if ch == ' ' || ch == '\t' {
				continue
			}
			r.fillCell(x*cellW, y*cellH, cellW, cellH)
		}
	}
	return r
}

// NewImageRegion builds a region from an image, one pixel per dot.
// Pixels darker than half luminance become black dots.
func NewImageRegion(im image.Image) *Region {
	b := im.Bounds()
	r := &Region{
		width:  b.Dx(),
		height: b.Dy(),
	}
	r.dots = make([]bool, r.width*r.height)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			cr, cg, cb, ca := im.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if ca == 0 {
				continue
			}
			// ITU-R 601 luma, 16 bit channels.
			luma := (299*cr + 587*cg + 114*cb) / 1000
			if luma < 0x8000 {
				r.dots[y*r.width+x] = true
			}
		}
	}
	return r
}

// Width returns the region width in dots.
func (r *Region) Width() int { return r.width }

// Height returns the region height in dots.
func (r *Region) Height() int { return r.height }

func (r *Region) fillCell(x0, y0, w, h int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			r.dots[y*r.width+x] = true
		}
	}
}

// Raster is the converted form of a region: packed row data ready
// for the GS v 0 introducer. It is an opaque graphics payload for
// the encoder, never subject to word-wrap logic.
type Raster struct {
	width    int
	height   int
	rowBytes int
	data     []byte
}

// Width returns the addressable dot width, equal to the source
// region's width.
func (r *Raster) Width() int { return r.width }

// Height returns the number of dot rows.
func (r *Raster) Height() int { return r.height }

// RowBytes returns the number of data bytes per row.
func (r *Raster) RowBytes() int { return r.rowBytes }

// Data returns a copy of the packed row data.
func (r *Raster) Data() []byte {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return data
}

// Dot reports the dot at (x, y) as decoded from the packed data.
func (r *Raster) Dot(x, y int) bool {
	b := r.data[y*r.rowBytes+x/8]
	return b&(0x80>>uint(x%8)) != 0
}

// Converter packs regions into printer rasters, enforcing the
// printer's maximum addressable width.
type Converter struct {
	maxDots int
}

// NewConverter returns a converter for the configured printer.
func NewConverter(cfg Config) *Converter {
	return &Converter{maxDots: cfg.MaxDots}
}

// Convert packs a region into raster rows, most significant bit
// first within each byte as GS v 0 expects. A region wider than the
// printer's maximum fails with RegionTooWideError rather than being
// cropped.
func (c *Converter) Convert(r *Region) (*Raster, error) {
	if r.width > c.maxDots {
		return nil, &RegionTooWideError{Dots: r.width, MaxDots: c.maxDots}
	}
	out := &Raster{
		width:    r.width,
		height:   r.height,
		rowBytes: (r.width + 7) / 8,
	}
	out.data = make([]byte, out.rowBytes*out.height)
	for y := 0; y < r.height; y++ {
		row := out.data[y*out.rowBytes:]
		for x := 0; x < r.width; x++ {
			if r.dots[y*r.width+x] {
				row[x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return out, nil
}
