// Package fitzraster provides an in-process PDF raster backend built
// on MuPDF, used when no external rasterizer is installed.
package fitzraster

import (
	"context"
	"fmt"
	"image/png"
	"os"

	fitz "github.com/gen2brain/go-fitz"

	"github.com/user/artproof/pkg/ports"
)

// Backend rasterizes the first page of PDF files with MuPDF.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "mupdf"
}

// Available always reports true; MuPDF is linked into the binary.
func (b *Backend) Available() bool {
	return true
}

// Supports reports whether the extension is PDF.
func (b *Backend) Supports(ext string) bool {
	return ext == ".pdf"
}

// Convert rasterizes the first page of the PDF at inputPath to a PNG
// at outputPath. Multi-page documents are previewed by their first
// page only.
func (b *Backend) Convert(ctx context.Context, inputPath, outputPath string, dpi int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := fitz.New(inputPath)
	if err != nil {
		return fmt.Errorf("mupdf: open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return fmt.Errorf("mupdf: pdf has no pages")
	}

	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return fmt.Errorf("mupdf: render page: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("mupdf: create output: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("mupdf: encode png: %w", err)
	}
	return nil
}

var _ ports.RasterBackend = (*Backend)(nil)
