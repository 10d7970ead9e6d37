// Package oksvgraster provides a pure-Go SVG raster backend used when
// neither Inkscape nor ImageMagick is installed.
package oksvgraster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/user/artproof/pkg/ports"
)

// nominalDPI is the CSS pixel density SVG dimensions are defined at.
const nominalDPI = 96

// Backend rasterizes SVG files in-process with oksvg. It covers a
// subset of the SVG spec (no filters, no embedded CSS), which is why
// it sits last in the backend chain.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "oksvg"
}

// Available always reports true; the backend has no external
// dependency.
func (b *Backend) Available() bool {
	return true
}

// Supports reports whether the extension is SVG.
func (b *Backend) Supports(ext string) bool {
	return ext == ".svg"
}

// Convert rasterizes the SVG at inputPath to a PNG at outputPath,
// scaled from the document viewbox by dpi over the 96dpi nominal.
func (b *Backend) Convert(ctx context.Context, inputPath, outputPath string, dpi int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("oksvg: read input: %w", err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("oksvg: parse svg: %w", err)
	}

	scale := float64(dpi) / nominalDPI
	w := int(math.Ceil(icon.ViewBox.W * scale))
	h := int(math.Ceil(icon.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("oksvg: degenerate viewbox %gx%g", icon.ViewBox.W, icon.ViewBox.H)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("oksvg: create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("oksvg: encode png: %w", err)
	}
	return nil
}

var _ ports.RasterBackend = (*Backend)(nil)
