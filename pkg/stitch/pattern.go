// Package stitch provides the embroidery stitch pattern model and
// readers for common machine formats.
package stitch

// Flag marks control events attached to a stitch.
type Flag uint8

const (
	// FlagJump marks a pen movement without stitching.
	FlagJump Flag = 1 << iota
	// FlagTrim marks a thread cut.
	FlagTrim
	// FlagColorChange marks a thread color swap.
	FlagColorChange
	// FlagEnd marks the final record of a pattern.
	FlagEnd
)

// Stitch is a single needle position in machine units (1/10 mm).
type Stitch struct {
	X     int
	Y     int
	Flags Flag
}

// Pattern is an ordered sequence of stitches. It is immutable once
// parsed.
type Pattern struct {
	Stitches []Stitch
}

// Bounds returns the minimal axis-aligned rectangle containing all
// stitch coordinates. ok is false for an empty pattern.
func (p *Pattern) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	if len(p.Stitches) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = p.Stitches[0].X, p.Stitches[0].Y
	maxX, maxY = minX, minY
	for _, s := range p.Stitches[1:] {
		if s.X < minX {
			minX = s.X
		}
		if s.X > maxX {
			maxX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// Count returns the total number of stitches.
func (p *Pattern) Count() int {
	return len(p.Stitches)
}

// ThreadChanges returns the number of color-change events over the
// whole pattern, independent of rendering.
func (p *Pattern) ThreadChanges() int {
	n := 0
	for _, s := range p.Stitches {
		if s.Flags&FlagColorChange != 0 {
			n++
		}
	}
	return n
}
