// Package summarizer provides report generation for preview results.
package summarizer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/swatch"
)

// Summary contains all data collected while generating one preview.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input file information
	Input InputInfo

	// Preview output details
	Preview PreviewInfo

	// Physical print size (vector only)
	Physical *PhysicalInfo

	// Declared colors (vector only, nil when none were found)
	Colors *swatch.ColorSet

	// Dominant colors sampled from the raster (fallback when Colors is nil)
	Sampled []pipeline.SampledColor

	// Stitch statistics (embroidery only)
	Stitch *pipeline.StitchStats

	// Companion PDF details (vector only, nil when not exported)
	PDF *PDFInfo
}

// InputInfo identifies the source file.
type InputInfo struct {
	Path     string
	Ext      string
	FileType pipeline.FileType
}

// PreviewInfo describes the generated PNG.
type PreviewInfo struct {
	Path       string
	Width      int
	Height     int
	Brightness float64
	FileSize   int64
	Backend    string // empty for embroidery
	Background pipeline.BackgroundMode
}

// PhysicalInfo is the implied print size.
type PhysicalInfo struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// PDFInfo describes the companion vector PDF.
type PDFInfo struct {
	Path     string
	FileSize int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// FromResult builds a Summary out of a finished pipeline run.
func FromResult(result pipeline.PreviewResult, inputPath, outputPath string, background pipeline.BackgroundMode) *Summary {
	s := NewSummary()
	s.Input = InputInfo{
		Path:     inputPath,
		Ext:      strings.ToLower(filepath.Ext(inputPath)),
		FileType: result.FileType,
	}
	s.Preview = PreviewInfo{
		Path:       outputPath,
		Width:      result.Width,
		Height:     result.Height,
		Brightness: result.Brightness,
		FileSize:   result.ByteSize,
		Backend:    result.Backend,
		Background: background,
	}
	if result.Physical != nil {
		s.Physical = &PhysicalInfo{
			WidthInches:  result.Physical.WidthInches,
			HeightInches: result.Physical.HeightInches,
			DPI:          result.Physical.DPI,
		}
	}
	s.Colors = result.Colors
	s.Sampled = result.Sampled
	s.Stitch = result.Stitch
	if result.PDFPath != "" {
		s.PDF = &PDFInfo{Path: result.PDFPath, FileSize: result.PDFSize}
	}
	return s
}
