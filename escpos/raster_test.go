package escpos

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

// Regression test for the last-column truncation defect: for every
// source width, including widths just past a byte boundary, the
// raster's addressable column count must equal the source width and
// a mark in the final column must survive conversion.
func TestLastColumnPreserved(t *testing.T) {
	conv := NewConverter(Config{Columns: 48, MaxDots: 512})
	for w := 1; w <= 17; w++ {
		line := strings.Repeat(" ", w-1) + "#"
		raster, err := conv.Convert(NewTextRegion([]string{line}, 1, 1))
		if err != nil {
			t.Fatal(err)
		}
		if raster.Width() != w {
			t.Fatalf("width %d: raster addresses %d columns", w, raster.Width())
		}
		if wantBytes := (w + 7) / 8; raster.RowBytes() != wantBytes {
			t.Fatalf("width %d: expecting %d row bytes, got %d", w, wantBytes, raster.RowBytes())
		}
		if !raster.Dot(w-1, 0) {
			t.Errorf("width %d: mark in the last column was truncated", w)
		}
		for x := 0; x < w-1; x++ {
			if raster.Dot(x, 0) {
				t.Errorf("width %d: unexpected dot at column %d", w, x)
			}
		}
	}
}

func TestTextRegionCellScaling(t *testing.T) {
	region := NewTextRegion([]string{"#"}, 12, 24)
	if region.Width() != 12 || region.Height() != 24 {
		t.Fatalf("expecting 12x24 region, got %dx%d", region.Width(), region.Height())
	}
	raster, err := NewConverter(Config{Columns: 48, MaxDots: 512}).Convert(region)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 12; x++ {
			if !raster.Dot(x, y) {
				t.Fatalf("cell dot (%d, %d) not set", x, y)
			}
		}
	}
}

func TestRegionTooWide(t *testing.T) {
	conv := NewConverter(Config{Columns: 48, MaxDots: 100})
	_, err := conv.Convert(NewTextRegion([]string{strings.Repeat("#", 10)}, 12, 24))
	var tooWide *RegionTooWideError
	if !errors.As(err, &tooWide) {
		t.Fatalf("expecting RegionTooWideError, got %v", err)
	}
	if tooWide.Dots != 120 || tooWide.MaxDots != 100 {
		t.Fatalf("expecting 120 > 100, got %d > %d", tooWide.Dots, tooWide.MaxDots)
	}
}

func TestImageRegion(t *testing.T) {
	im := image.NewGray(image.Rect(0, 0, 9, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 9; x++ {
			im.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	im.SetGray(8, 1, color.Gray{Y: 0}) // last column, last row
	im.SetGray(0, 0, color.Gray{Y: 0})

	region := NewImageRegion(im)
	raster, err := NewConverter(Config{Columns: 48, MaxDots: 512}).Convert(region)
	if err != nil {
		t.Fatal(err)
	}
	if raster.Width() != 9 || raster.Height() != 2 {
		t.Fatalf("expecting 9x2 raster, got %dx%d", raster.Width(), raster.Height())
	}
	if !raster.Dot(0, 0) || !raster.Dot(8, 1) {
		t.Fatal("dark pixels lost in conversion")
	}
	if raster.Dot(4, 0) || raster.Dot(8, 0) {
		t.Fatal("light pixels converted to dots")
	}
}

func TestRaggedArtLines(t *testing.T) {
	// The grid width follows the widest line; short lines pad out.
	region := NewTextRegion([]string{"#", "###"}, 1, 1)
	raster, err := NewConverter(Config{Columns: 48, MaxDots: 512}).Convert(region)
	if err != nil {
		t.Fatal(err)
	}
	if raster.Width() != 3 {
		t.Fatalf("expecting width 3, got %d", raster.Width())
	}
	if raster.Dot(2, 0) {
		t.Error("padding of a short line produced a dot")
	}
	if !raster.Dot(2, 1) {
		t.Error("last column of the widest line lost")
	}
}
