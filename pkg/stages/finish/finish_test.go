package finish

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/user/artproof/pkg/adapters/logger"
	"github.com/user/artproof/pkg/mocks"
	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
)

func grayImage(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func newTestStage(maxW, maxH int) (*Stage, *mocks.Canvas, *mocks.Renderer) {
	canvas := mocks.NewCanvas(0, 0, nil)
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(w, h int, bg color.Color) ports.Canvas {
			canvas.Width = w
			canvas.Height = h
			canvas.Background = bg
			return canvas
		},
	}
	return NewStage(renderer, logger.NewNoop(), maxW, maxH, ""), canvas, renderer
}

func TestExecute_AutoBackgroundBrightSelectsDark(t *testing.T) {
	stage, canvas, _ := newTestStage(1200, 1200)
	result, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(100, 100, 210),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Background != darkBackground {
		t.Errorf("expected dark background, got %v", canvas.Background)
	}
	if result.Brightness != 210 {
		t.Errorf("brightness: expected 210, got %f", result.Brightness)
	}
}

func TestExecute_AutoBackgroundDarkSelectsLight(t *testing.T) {
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(100, 100, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Background != lightBackground {
		t.Errorf("expected light background, got %v", canvas.Background)
	}
}

func TestExecute_AutoBackgroundBoundaryIsLight(t *testing.T) {
	// Exactly 200 is not "above the cutoff".
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(100, 100, 200),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Background != lightBackground {
		t.Errorf("expected light background at the boundary, got %v", canvas.Background)
	}
}

func TestExecute_TransparentBackgroundKept(t *testing.T) {
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(100, 100, 210),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundTransparent,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if canvas.Background != color.Transparent {
		t.Errorf("expected transparent canvas, got %v", canvas.Background)
	}
}

func TestExecute_DownscalesOversizedVector(t *testing.T) {
	stage, _, renderer := newTestStage(1200, 1200)
	var gotW, gotH int
	renderer.ResizeImageFunc = func(img image.Image, w, h int) image.Image {
		gotW, gotH = w, h
		return grayImage(w, h, 100)
	}

	result, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(2400, 1200, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotW != 1200 || gotH != 600 {
		t.Errorf("resize: expected 1200x600, got %dx%d", gotW, gotH)
	}
	if result.Width != 1200 || result.Height != 600 {
		t.Errorf("result: expected 1200x600, got %dx%d", result.Width, result.Height)
	}
}

func TestExecute_EmbroideryNeverResized(t *testing.T) {
	stage, _, renderer := newTestStage(1200, 1200)
	resized := false
	renderer.ResizeImageFunc = func(img image.Image, w, h int) image.Image {
		resized = true
		return img
	}

	result, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(2000, 1500, 100),
		FileType:   pipeline.FileTypeEmbroidery,
		Background: pipeline.BackgroundAuto,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resized {
		t.Error("embroidery canvases must pass through unresized")
	}
	if result.Width != 2000 || result.Height != 1500 {
		t.Errorf("expected 2000x1500, got %dx%d", result.Width, result.Height)
	}
}

func TestExecute_PhysicalSizeVectorOnly(t *testing.T) {
	stage, _, _ := newTestStage(1200, 1200)
	result, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(600, 300, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Physical == nil {
		t.Fatal("expected physical size for vector")
	}
	if result.Physical.WidthInches != 2.0 || result.Physical.HeightInches != 1.0 {
		t.Errorf("physical: expected 2.0x1.0 in, got %.2fx%.2f",
			result.Physical.WidthInches, result.Physical.HeightInches)
	}

	stage2, _, _ := newTestStage(1200, 1200)
	result2, err := stage2.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(600, 300, 100),
		FileType:   pipeline.FileTypeEmbroidery,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result2.Physical != nil {
		t.Error("embroidery results must not carry physical size")
	}
}

func TestExecute_WatermarkFullAndShort(t *testing.T) {
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(800, 600, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(canvas.Texts) != 1 || canvas.Texts[0].Text != watermarkFull {
		t.Errorf("expected full watermark, got %+v", canvas.Texts)
	}

	stage2, canvas2, _ := newTestStage(1200, 1200)
	_, err = stage2.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(150, 300, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(canvas2.Texts) != 1 || canvas2.Texts[0].Text != watermarkShort {
		t.Errorf("expected short watermark for small preview, got %+v", canvas2.Texts)
	}
}

func TestExecute_WatermarkPlate(t *testing.T) {
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(800, 600, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(canvas.Rects) != 1 {
		t.Fatalf("expected one plate rect, got %d", len(canvas.Rects))
	}
	plate := canvas.Rects[0]
	if plate.Color != watermarkPlate {
		t.Errorf("plate color: got %v", plate.Color)
	}
	if plate.Radius != 5 {
		t.Errorf("plate radius: expected 5, got %d", plate.Radius)
	}
	// The plate sits under the text with a 5px pad on each side.
	text := canvas.Texts[0]
	if plate.X != text.X-5 || plate.Y != text.Y-5 {
		t.Errorf("plate at (%d,%d), text at (%d,%d)", plate.X, plate.Y, text.X, text.Y)
	}
	// Bottom-right placement: 800px width gives an 8px margin.
	// textW = len("ArtProof Preview") * 9.6 * 0.6 = 92.16.
	if text.X != 699 {
		t.Errorf("text x: expected 699, got %d", text.X)
	}
	if text.Y != 582 {
		t.Errorf("text y: expected 582, got %d", text.Y)
	}
}

func TestExecute_WatermarkMarginFloor(t *testing.T) {
	// 150px * 0.01 = 1.5 clamps up to the 3px floor.
	stage, canvas, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(150, 300, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// textW = len("AP") * 8 * 0.6 = 9.6; x = 150 - 9.6 - 3 = 137.4.
	if text := canvas.Texts[0]; text.X != 137 {
		t.Errorf("text x: expected 137, got %d", text.X)
	}
}

func TestExecute_WatermarkFontClamped(t *testing.T) {
	// 800px * 0.012 = 9.6 sits inside the clamp range.
	stage, canvas, _ := newTestStage(1200, 1200)
	stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(800, 600, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if size := canvas.Texts[0].Style.FontSize; size != 9.6 {
		t.Errorf("font size: expected 9.6, got %f", size)
	}

	// Tiny preview clamps up to 8.
	stage2, canvas2, _ := newTestStage(1200, 1200)
	stage2.Execute(context.Background(), pipeline.FinishInput{
		Image:      grayImage(150, 150, 100),
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
		DPI:        300,
	})
	if size := canvas2.Texts[0].Style.FontSize; size != 8 {
		t.Errorf("font size: expected clamp to 8, got %f", size)
	}
}

func TestExecute_NilImage(t *testing.T) {
	stage, _, _ := newTestStage(1200, 1200)
	_, err := stage.Execute(context.Background(), pipeline.FinishInput{
		Image:      nil,
		FileType:   pipeline.FileTypeVector,
		Background: pipeline.BackgroundAuto,
	})
	if err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestMeanBrightness_TransparentIgnored(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	// One opaque black row; the rest transparent.
	for x := 0; x < 10; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{A: 255})
	}
	if b := meanBrightness(img); b != 0 {
		t.Errorf("expected 0 over opaque pixels, got %f", b)
	}

	empty := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if b := meanBrightness(empty); b != 255 {
		t.Errorf("fully transparent: expected 255, got %f", b)
	}
}
