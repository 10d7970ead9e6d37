package stitch

import (
	"fmt"
	"io"
)

// dstHeaderSize is the fixed Tajima DST header length.
const dstHeaderSize = 512

// ReadDST decodes a Tajima .dst stream into a Pattern.
//
// DST stores stitches as 3-byte records. Each record encodes signed x/y
// deltas as ternary-ish bit weights (1, 3, 9, 27, 81) plus control bits
// in the third byte.
func ReadDST(r io.Reader) (*Pattern, error) {
	header := make([]byte, dstHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("dst: read header: %w", err)
	}

	p := &Pattern{}
	x, y := 0, 0
	rec := make([]byte, 3)
	for {
		_, err := io.ReadFull(r, rec)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dst: read record: %w", err)
		}

		b0, b1, b2 := rec[0], rec[1], rec[2]
		if b2&0xF3 == 0xF3 {
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagEnd})
			break
		}

		x += dstDeltaX(b0, b1, b2)
		y += dstDeltaY(b0, b1, b2)

		var flags Flag
		switch {
		case b2&0xC3 == 0xC3:
			flags = FlagColorChange | FlagTrim
		case b2&0x83 == 0x83:
			flags = FlagJump
		}
		p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: flags})
	}

	if len(p.Stitches) == 0 {
		return nil, fmt.Errorf("dst: no stitch records")
	}
	return p, nil
}

func dstDeltaX(b0, b1, b2 byte) int {
	x := 0
	if b0&0x01 != 0 {
		x++
	}
	if b0&0x02 != 0 {
		x--
	}
	if b0&0x04 != 0 {
		x += 9
	}
	if b0&0x08 != 0 {
		x -= 9
	}
	if b1&0x01 != 0 {
		x += 3
	}
	if b1&0x02 != 0 {
		x -= 3
	}
	if b1&0x04 != 0 {
		x += 27
	}
	if b1&0x08 != 0 {
		x -= 27
	}
	if b2&0x04 != 0 {
		x += 81
	}
	if b2&0x08 != 0 {
		x -= 81
	}
	return x
}

func dstDeltaY(b0, b1, b2 byte) int {
	y := 0
	if b0&0x80 != 0 {
		y++
	}
	if b0&0x40 != 0 {
		y--
	}
	if b0&0x20 != 0 {
		y += 9
	}
	if b0&0x10 != 0 {
		y -= 9
	}
	if b1&0x80 != 0 {
		y += 3
	}
	if b1&0x40 != 0 {
		y -= 3
	}
	if b1&0x20 != 0 {
		y += 27
	}
	if b1&0x10 != 0 {
		y -= 27
	}
	if b2&0x80 != 0 {
		y += 81
	}
	if b2&0x40 != 0 {
		y -= 81
	}
	return y
}
