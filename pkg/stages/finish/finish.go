// Package finish implements the post-processing stage: size capping,
// background compositing, watermarking and PNG encoding.
package finish

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
)

// Default maximum preview dimensions. Larger rasters are downscaled
// preserving aspect ratio; embroidery canvases already fit.
const (
	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 1200
)

// brightnessDarkCutoff splits auto background selection: artwork with a
// mean gray above the cutoff is mostly light, so it gets the dark
// background for contrast.
const brightnessDarkCutoff = 200

var (
	lightBackground = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	darkBackground  = color.NRGBA{R: 45, G: 45, B: 48, A: 255}
)

// Watermark labels. The short form is used when the preview is too
// small to fit the full notice.
const (
	watermarkFull  = "ArtProof Preview"
	watermarkShort = "AP"
)

// smallPreviewCutoff switches to the short watermark when either
// dimension falls below it.
const smallPreviewCutoff = 200

// Stage post-processes a rendered artwork image into the final PNG
// preview.
type Stage struct {
	renderer  ports.Renderer
	logger    ports.Logger
	maxWidth  int
	maxHeight int
	fontPath  string
}

// NewStage creates a finish stage. fontPath may be empty to use the
// renderer's built-in face.
func NewStage(renderer ports.Renderer, logger ports.Logger, maxWidth, maxHeight int, fontPath string) *Stage {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return &Stage{
		renderer:  renderer,
		logger:    logger.WithComponent("finish"),
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		fontPath:  fontPath,
	}
}

// Execute caps the image size, selects and composites the background,
// stamps the watermark and encodes the PNG.
func (s *Stage) Execute(ctx context.Context, input pipeline.FinishInput) (pipeline.FinishResult, error) {
	result := pipeline.FinishResult{}
	img := input.Image
	if img == nil {
		return result, fmt.Errorf("%w: nil image", pipeline.ErrPostProcess)
	}

	// Vector rasters come in at render DPI and can be huge; embroidery
	// canvases are sized up front and pass through unchanged.
	if input.FileType == pipeline.FileTypeVector {
		img = s.capSize(img)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return result, fmt.Errorf("%w: empty raster", pipeline.ErrPostProcess)
	}

	// Brightness is measured before compositing so the background
	// choice reflects the artwork, not itself.
	brightness := meanBrightness(img)

	mode := input.Background
	if mode == pipeline.BackgroundAuto {
		if brightness > brightnessDarkCutoff {
			mode = pipeline.BackgroundDark
		} else {
			mode = pipeline.BackgroundLight
		}
		s.logger.Debug("Brightness %.1f selects %s background", brightness, mode)
	}

	var canvas ports.Canvas
	switch mode {
	case pipeline.BackgroundDark:
		canvas = s.renderer.CreateCanvas(width, height, darkBackground)
	case pipeline.BackgroundLight:
		canvas = s.renderer.CreateCanvas(width, height, lightBackground)
	default:
		canvas = s.renderer.CreateCanvas(width, height, color.Transparent)
	}
	canvas.DrawImageOver(img, 0, 0)

	s.stampWatermark(canvas, width, height)

	final := canvas.ToImage()
	png, err := s.renderer.EncodeImage(final, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("%w: encode png: %v", pipeline.ErrPostProcess, err)
	}

	result.Image = final
	result.PNG = png
	result.Width = width
	result.Height = height
	result.Brightness = brightness
	if input.FileType == pipeline.FileTypeVector && input.DPI > 0 {
		result.Physical = &pipeline.PhysicalSize{
			WidthInches:  float64(width) / float64(input.DPI),
			HeightInches: float64(height) / float64(input.DPI),
			DPI:          input.DPI,
		}
	}
	return result, nil
}

// capSize downscales img to fit within the configured maximums,
// preserving aspect ratio. Images already within bounds are returned
// unchanged; previews are never upscaled.
func (s *Stage) capSize(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= s.maxWidth && h <= s.maxHeight {
		return img
	}

	scaleW := float64(s.maxWidth) / float64(w)
	scaleH := float64(s.maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	s.logger.Debug("Downscaling %dx%d to %dx%d", w, h, newW, newH)
	return s.renderer.ResizeImage(img, newW, newH)
}

// Watermark plate and text colors. A light plate under gray text stays
// readable over any background, including transparent previews.
var (
	watermarkPlate = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	watermarkText  = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

// stampWatermark draws the proof notice in the bottom-right corner on a
// semi-transparent rounded plate. The font size and margin track the
// preview width so the stamp stays legible without dominating small
// previews.
func (s *Stage) stampWatermark(canvas ports.Canvas, width, height int) {
	text := watermarkFull
	if width < smallPreviewCutoff || height < smallPreviewCutoff {
		text = watermarkShort
	}

	fontSize := float64(width) * 0.012
	if fontSize < 8 {
		fontSize = 8
	}
	if fontSize > 16 {
		fontSize = 16
	}

	style := ports.TextStyle{FontSize: fontSize, FontPath: s.fontPath, Color: watermarkText}
	textW, textH := canvas.MeasureText(text, style)

	margin := float64(width) * 0.01
	if margin < 3 {
		margin = 3
	}
	x := float64(width) - textW - margin
	y := float64(height) - textH - margin
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	pad := 5
	canvas.DrawRoundedRect(int(x)-pad, int(y)-pad,
		int(textW)+2*pad, int(textH)+2*pad, pad, watermarkPlate)
	canvas.DrawText(text, int(x), int(y), style)
}

// meanBrightness returns the average luma (ITU-R 601, integer form)
// over opaque pixels, on a 0-255 scale. Fully transparent images
// report 255 so auto background treats them as light artwork.
func meanBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	var sum, n int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			sum += (299*int64(r>>8) + 587*int64(g>>8) + 114*int64(b>>8)) / 1000
			n++
		}
	}
	if n == 0 {
		return 255
	}
	return float64(sum) / float64(n)
}
