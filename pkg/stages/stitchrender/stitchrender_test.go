package stitchrender

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/user/artproof/pkg/adapters/logger"
	"github.com/user/artproof/pkg/mocks"
	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/stitch"
)

// square is a 100x100 unit pattern with one color change.
func square() *stitch.Pattern {
	return &stitch.Pattern{Stitches: []stitch.Stitch{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 100, Y: 100, Flags: stitch.FlagColorChange},
		{X: 0, Y: 100},
		{X: 0, Y: 0, Flags: stitch.FlagEnd},
	}}
}

func newTestStage(pattern *stitch.Pattern) (*Stage, *mocks.Canvas) {
	canvas := mocks.NewCanvas(0, 0, nil)
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(w, h int, bg color.Color) ports.Canvas {
			canvas.Width = w
			canvas.Height = h
			canvas.Background = bg
			return canvas
		},
	}
	parser := &mocks.StitchParser{
		ParseFunc: func(path string) (*stitch.Pattern, error) {
			return pattern, nil
		},
	}
	return NewStage(parser, renderer, logger.NewNoop()), canvas
}

func TestExecute_Stats(t *testing.T) {
	stage, _ := newTestStage(square())
	result, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.dst", Ext: ".dst", CanvasWidth: 1200, CanvasHeight: 800,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.StitchCount != 5 {
		t.Errorf("stitch count: expected 5, got %d", result.Stats.StitchCount)
	}
	if result.Stats.ThreadChanges != 1 {
		t.Errorf("thread changes: expected 1, got %d", result.Stats.ThreadChanges)
	}
	// 100 machine units = 10.0 mm
	if result.Stats.WidthMM != 10.0 || result.Stats.HeightMM != 10.0 {
		t.Errorf("size: expected 10.0x10.0 mm, got %.1fx%.1f", result.Stats.WidthMM, result.Stats.HeightMM)
	}
}

func TestExecute_ScaledAndCentered(t *testing.T) {
	stage, canvas := newTestStage(square())
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.dst", Ext: ".dst", CanvasWidth: 1200, CanvasHeight: 800,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Width != 1200 || canvas.Height != 800 {
		t.Fatalf("canvas: expected 1200x800, got %dx%d", canvas.Width, canvas.Height)
	}

	// Height is the binding dimension: scale = (800-100)/100 = 7, so
	// the 100-unit square maps to 700px centered at (250..950, 50..750).
	for _, line := range canvas.Lines {
		for _, v := range []float64{line.X1, line.X2} {
			if v < 250 || v > 950 {
				t.Errorf("x coordinate %f outside centered region", v)
			}
		}
		for _, v := range []float64{line.Y1, line.Y2} {
			if v < 50 || v > 750 {
				t.Errorf("y coordinate %f outside centered region", v)
			}
		}
		if line.Width != 2.0 {
			t.Errorf("line width: expected 2.0, got %f", line.Width)
		}
	}

	// 5 stitches: 1st lowers the pen, 2nd draws, 3rd is a color change
	// (pen lift), 4th lowers again, 5th is the end marker.
	if len(canvas.Lines) != 1 {
		t.Errorf("expected 1 drawn segment, got %d", len(canvas.Lines))
	}
}

func TestExecute_JumpDoesNotDraw(t *testing.T) {
	pattern := &stitch.Pattern{Stitches: []stitch.Stitch{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 90, Y: 0, Flags: stitch.FlagJump},
		{X: 100, Y: 10},
	}}
	stage, canvas := newTestStage(pattern)
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.exp", Ext: ".exp", CanvasWidth: 400, CanvasHeight: 400,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Segment 1: stitch 1 to 2. The jump moves silently; segment 2 runs
	// from the jump landing point to the last stitch.
	if len(canvas.Lines) != 2 {
		t.Errorf("expected 2 drawn segments, got %d", len(canvas.Lines))
	}
}

func TestExecute_DegeneratePattern(t *testing.T) {
	// All stitches on one point: zero-area bounds.
	pattern := &stitch.Pattern{Stitches: []stitch.Stitch{
		{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5},
	}}
	stage, _ := newTestStage(pattern)
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.dst", Ext: ".dst", CanvasWidth: 1200, CanvasHeight: 800,
	})
	if !errors.Is(err, pipeline.ErrDegeneratePattern) {
		t.Fatalf("expected ErrDegeneratePattern, got %v", err)
	}
}

func TestExecute_UnsupportedFormat(t *testing.T) {
	parser := &mocks.StitchParser{
		SupportsFunc: func(ext string) bool { return false },
	}
	stage := NewStage(parser, &mocks.Renderer{}, logger.NewNoop())
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.pes", Ext: ".pes", CanvasWidth: 1200, CanvasHeight: 800,
	})
	if !errors.Is(err, stitch.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExecute_ParseError(t *testing.T) {
	parser := &mocks.StitchParser{
		ParseFunc: func(path string) (*stitch.Pattern, error) {
			return nil, errors.New("corrupt file")
		},
	}
	stage := NewStage(parser, &mocks.Renderer{}, logger.NewNoop())
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.dst", Ext: ".dst", CanvasWidth: 1200, CanvasHeight: 800,
	})
	if err == nil {
		t.Fatal("expected parse error to propagate")
	}
}

func TestExecute_DefaultCanvas(t *testing.T) {
	stage, canvas := newTestStage(square())
	_, err := stage.Execute(context.Background(), pipeline.StitchRenderInput{
		Path: "a.dst", Ext: ".dst",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Width != pipeline.DefaultStitchCanvas.Width || canvas.Height != pipeline.DefaultStitchCanvas.Height {
		t.Errorf("expected default canvas %dx%d, got %dx%d",
			pipeline.DefaultStitchCanvas.Width, pipeline.DefaultStitchCanvas.Height,
			canvas.Width, canvas.Height)
	}
}
