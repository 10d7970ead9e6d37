package stitch

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadJEF decodes a Janome .jef stream into a Pattern.
//
// The first 4 bytes hold the little-endian offset of the stitch data.
// Stitches are 2-byte signed deltas; 0x80 introduces a control record
// (color change, trim or end) followed by a delta pair.
func ReadJEF(r io.Reader) (*Pattern, error) {
	var offset uint32
	if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
		return nil, fmt.Errorf("jef: read stitch offset: %w", err)
	}
	if offset < 4 {
		return nil, fmt.Errorf("jef: invalid stitch offset %d", offset)
	}

	// Skip the remainder of the header.
	if _, err := io.CopyN(io.Discard, r, int64(offset)-4); err != nil {
		return nil, fmt.Errorf("jef: skip header: %w", err)
	}

	p := &Pattern{}
	x, y := 0, 0
	rec := make([]byte, 2)
	for {
		_, err := io.ReadFull(r, rec)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("jef: read record: %w", err)
		}

		if rec[0] != 0x80 {
			x += int(int8(rec[0]))
			y -= int(int8(rec[1]))
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y})
			continue
		}

		control := rec[1]
		if control == 0x10 {
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagEnd})
			break
		}
		if _, err := io.ReadFull(r, rec); err != nil {
			break
		}
		dx := int(int8(rec[0]))
		dy := -int(int8(rec[1]))

		switch {
		case control&0x01 != 0:
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagColorChange | FlagTrim})
		case control == 0x02 || control == 0x04:
			x += dx
			y += dy
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagJump})
		}
	}
	return finishPattern(p, "jef")
}
