package escpos

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEncodeTextLine(t *testing.T) {
	enc := NewEncoder(NewWidthTable())
	got, err := enc.Encode(Line{Text: "Hi!"})
	if err != nil {
		t.Fatal(err)
	}
	expected := mustHex(t, "4869210a")
	if !bytes.Equal(got, expected) {
		t.Fatalf("expecting %s, got %s", hex.EncodeToString(expected), hex.EncodeToString(got))
	}
}

func TestEncodeCodePageGlyph(t *testing.T) {
	enc := NewEncoder(NewWidthTable())
	got, err := enc.Encode(Line{Text: "café"})
	if err != nil {
		t.Fatal(err)
	}
	// 'é' is 0x82 in PC437.
	expected := mustHex(t, "636166820a")
	if !bytes.Equal(got, expected) {
		t.Fatalf("expecting %s, got %s", hex.EncodeToString(expected), hex.EncodeToString(got))
	}
}

func TestEncodeRasterLine(t *testing.T) {
	raster, err := NewConverter(Config{Columns: 48, MaxDots: 512}).
		Convert(NewTextRegion([]string{"########"}, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	enc := NewEncoder(NewWidthTable())
	got, err := enc.Encode(Line{Raster: raster})
	if err != nil {
		t.Fatal(err)
	}
	// GS v 0, mode 0, 1 byte per row, 1 row, then the row data.
	expected := mustHex(t, "1d76300001000100ff")
	if !bytes.Equal(got, expected) {
		t.Fatalf("expecting %s, got %s", hex.EncodeToString(expected), hex.EncodeToString(got))
	}
}

func TestStyleTogglesEmittedBeforeNextLine(t *testing.T) {
	enc := NewEncoder(NewWidthTable())
	enc.SetStyle(Style{Bold: true})
	got, err := enc.Encode(Line{Text: "a"})
	if err != nil {
		t.Fatal(err)
	}
	// ESC E 1, then the payload.
	if !bytes.Equal(got, mustHex(t, "1b4501610a")) {
		t.Fatalf("bold toggle missing or misplaced: %s", hex.EncodeToString(got))
	}
	// Unchanged style emits no further control bytes.
	got, err = enc.Encode(Line{Text: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, mustHex(t, "620a")) {
		t.Fatalf("expecting bare payload, got %s", hex.EncodeToString(got))
	}
	enc.SetStyle(Style{Wide: true, Tall: true})
	got, err = enc.Encode(Line{Text: "c"})
	if err != nil {
		t.Fatal(err)
	}
	// ESC E 0 (bold off), GS ! 0x30 (double width and height).
	if !bytes.Equal(got, mustHex(t, "1b45001d2130630a")) {
		t.Fatalf("style transition wrong: %s", hex.EncodeToString(got))
	}
}

func TestUnsupportedGlyph(t *testing.T) {
	enc := NewEncoder(NewWidthTable())
	_, err := enc.Encode(Line{Text: "a→b"})
	var ug *UnsupportedGlyphError
	if !errors.As(err, &ug) {
		t.Fatalf("expecting UnsupportedGlyphError, got %v", err)
	}
	if ug.Glyph != '→' {
		t.Fatalf("expecting glyph %q, got %q", '→', ug.Glyph)
	}
}

func TestPendingStyleSurvivesFailedEncode(t *testing.T) {
	enc := NewEncoder(NewWidthTable())
	enc.SetStyle(Style{Underline: true})
	if _, err := enc.Encode(Line{Text: "→"}); err == nil {
		t.Fatal("expecting encode failure")
	}
	got, err := enc.Encode(Line{Text: "a"})
	if err != nil {
		t.Fatal(err)
	}
	// ESC - 1 still leads the next successful line.
	if !bytes.Equal(got, mustHex(t, "1b2d01610a")) {
		t.Fatalf("pending style lost after failed encode: %s", hex.EncodeToString(got))
	}
}
