package stitch

import (
	"fmt"
	"io"
)

// ReadEXP decodes a Melco .exp stream into a Pattern.
//
// EXP stores stitches as 2-byte signed deltas. A first byte of 0x80
// introduces a control record whose second byte selects jump, trim or
// color change; the following 2 bytes carry the accompanying delta.
func ReadEXP(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	x, y := 0, 0
	rec := make([]byte, 2)
	for {
		_, err := io.ReadFull(r, rec)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("exp: read record: %w", err)
		}

		if rec[0] != 0x80 {
			x += int(int8(rec[0]))
			y -= int(int8(rec[1]))
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y})
			continue
		}

		control := rec[1]
		if _, err := io.ReadFull(r, rec); err != nil {
			break
		}
		dx := int(int8(rec[0]))
		dy := -int(int8(rec[1]))

		switch control {
		case 0x01, 0x04:
			x += dx
			y += dy
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagJump})
		case 0x80:
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagColorChange | FlagTrim})
		default:
			p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Flags: FlagEnd})
			return finishPattern(p, "exp")
		}
	}
	return finishPattern(p, "exp")
}

func finishPattern(p *Pattern, format string) (*Pattern, error) {
	if len(p.Stitches) == 0 {
		return nil, fmt.Errorf("%s: no stitch records", format)
	}
	return p, nil
}
