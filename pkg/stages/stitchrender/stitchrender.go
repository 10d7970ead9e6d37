// Package stitchrender implements the embroidery rendering stage.
package stitchrender

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/stitch"
)

// margin is the blank border kept around the pattern, in canvas pixels.
const margin = 50

// lineWidth is the stroke width for stitch segments.
const lineWidth = 2.0

// unitsPerMM converts machine units to millimeters. Stitch coordinates
// are in tenths of a millimeter across the supported formats.
const unitsPerMM = 10.0

// Stage decodes an embroidery file and draws its stitch runs as line
// segments on a transparent canvas.
type Stage struct {
	parser   ports.StitchParser
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a stitch render stage.
func NewStage(parser ports.StitchParser, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		parser:   parser,
		renderer: renderer,
		logger:   logger.WithComponent("stitch"),
	}
}

// Execute parses the file and renders it centered on the canvas. The
// pattern is scaled uniformly to fit inside the margins; it is never
// stretched.
func (s *Stage) Execute(ctx context.Context, input pipeline.StitchRenderInput) (pipeline.StitchRenderResult, error) {
	result := pipeline.StitchRenderResult{}

	if !s.parser.Supports(input.Ext) {
		return result, fmt.Errorf("%w: no decoder for %s", stitch.ErrUnknownFormat, input.Ext)
	}

	pattern, err := s.parser.Parse(input.Path)
	if err != nil {
		return result, fmt.Errorf("parse %s: %w", input.Ext, err)
	}

	minX, minY, maxX, maxY, ok := pattern.Bounds()
	if !ok || maxX == minX || maxY == minY {
		return result, fmt.Errorf("%w: bounds [%d,%d]-[%d,%d]",
			pipeline.ErrDegeneratePattern, minX, minY, maxX, maxY)
	}

	widthMM := float64(maxX-minX) / unitsPerMM
	heightMM := float64(maxY-minY) / unitsPerMM
	s.logger.Debug("Pattern: %d stitches, %d thread changes, %.1fx%.1f mm",
		pattern.Count(), pattern.ThreadChanges(), widthMM, heightMM)

	width := input.CanvasWidth
	height := input.CanvasHeight
	if width <= 0 {
		width = pipeline.DefaultStitchCanvas.Width
	}
	if height <= 0 {
		height = pipeline.DefaultStitchCanvas.Height
	}

	result.Image = s.draw(pattern, minX, minY, maxX, maxY, width, height)
	result.Stats = pipeline.StitchStats{
		StitchCount:   pattern.Count(),
		ThreadChanges: pattern.ThreadChanges(),
		WidthMM:       widthMM,
		HeightMM:      heightMM,
	}
	return result, nil
}

// draw walks the stitch list with a virtual pen. Normal stitches draw
// a segment from the previous position; jumps move the pen without
// drawing; trims and color changes lift the pen so the next stitch
// starts a fresh run instead of drawing a long connector across the
// design.
func (s *Stage) draw(pattern *stitch.Pattern, minX, minY, maxX, maxY, width, height int) image.Image {
	scaleX := float64(width-2*margin) / float64(maxX-minX)
	scaleY := float64(height-2*margin) / float64(maxY-minY)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	// Center the scaled pattern on the canvas.
	patternW := float64(maxX-minX) * scale
	patternH := float64(maxY-minY) * scale
	offsetX := (float64(width) - patternW) / 2
	offsetY := (float64(height) - patternH) / 2

	canvas := s.renderer.CreateCanvas(width, height, color.Transparent)
	thread := color.Black

	penDown := false
	var prevX, prevY float64
	for _, st := range pattern.Stitches {
		x := offsetX + float64(st.X-minX)*scale
		y := offsetY + float64(st.Y-minY)*scale

		switch {
		case st.Flags&stitch.FlagEnd != 0:
			penDown = false
		case st.Flags&(stitch.FlagTrim|stitch.FlagColorChange) != 0:
			penDown = false
		case st.Flags&stitch.FlagJump != 0:
			// Move without drawing; the pen stays down for the next run.
			prevX, prevY = x, y
			penDown = true
		default:
			if penDown {
				canvas.DrawLine(prevX, prevY, x, y, thread, lineWidth)
			}
			prevX, prevY = x, y
			penDown = true
		}
	}

	return canvas.ToImage()
}
