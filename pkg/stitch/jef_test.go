package stitch

import (
	"bytes"
	"testing"
)

func TestReadJEF_Basic(t *testing.T) {
	data := []byte{
		0x08, 0x00, 0x00, 0x00, // stitch data at offset 8
		0xAA, 0xBB, 0xCC, 0xDD, // header filler, skipped
		0x02, 0x01, // +2 x, raw +1 y (decoded to -1)
		0x80, 0x01, 0x00, 0x00, // color change
		0x80, 0x02, 0x05, 0x05, // jump +5 x, raw +5 y
		0x80, 0x10, // end
	}

	p, err := ReadJEF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Stitch{
		{X: 2, Y: -1},
		{X: 2, Y: -1, Flags: FlagColorChange | FlagTrim},
		{X: 7, Y: -6, Flags: FlagJump},
		{X: 7, Y: -6, Flags: FlagEnd},
	}
	if p.Count() != len(expected) {
		t.Fatalf("count: expected %d, got %d", len(expected), p.Count())
	}
	for i, want := range expected {
		if p.Stitches[i] != want {
			t.Errorf("stitch %d: expected %+v, got %+v", i, want, p.Stitches[i])
		}
	}
	if p.ThreadChanges() != 1 {
		t.Errorf("thread changes: expected 1, got %d", p.ThreadChanges())
	}
}

func TestReadJEF_InvalidOffset(t *testing.T) {
	data := []byte{0x02, 0x00, 0x00, 0x00}
	if _, err := ReadJEF(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for offset inside the offset field")
	}
}

func TestReadJEF_TruncatedHeader(t *testing.T) {
	data := []byte{0x00, 0x01} // shorter than the offset field
	if _, err := ReadJEF(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}

func TestPattern_Bounds(t *testing.T) {
	empty := &Pattern{}
	if _, _, _, _, ok := empty.Bounds(); ok {
		t.Error("expected ok=false for empty pattern")
	}

	p := &Pattern{Stitches: []Stitch{
		{X: -5, Y: 10},
		{X: 15, Y: -20},
		{X: 0, Y: 0},
	}}
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if minX != -5 || minY != -20 || maxX != 15 || maxY != 10 {
		t.Errorf("bounds: expected (-5,-20,15,10), got (%d,%d,%d,%d)", minX, minY, maxX, maxY)
	}
}
