package pipeline

import (
	"image"

	"github.com/user/artproof/pkg/swatch"
)

// =============================================================================
// Common Types
// =============================================================================

// FileType tags which rendering strategy produced a preview.
type FileType string

const (
	FileTypeVector     FileType = "vector"
	FileTypeEmbroidery FileType = "embroidery"
)

// BackgroundMode selects the background compositing behavior.
type BackgroundMode string

const (
	BackgroundAuto        BackgroundMode = "auto"
	BackgroundLight       BackgroundMode = "light"
	BackgroundDark        BackgroundMode = "dark"
	BackgroundTransparent BackgroundMode = "transparent"
)

// PhysicalSize is the print size implied by pixel dimensions at a DPI.
type PhysicalSize struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// StitchStats summarizes an embroidery pattern.
type StitchStats struct {
	StitchCount   int
	ThreadChanges int
	WidthMM       float64
	HeightMM      float64
}

// SampledColor is one entry of the dominant-color fallback palette,
// sampled from the rendered raster when no declared colors were found.
type SampledColor struct {
	R, G, B    int
	Hex        string
	C, M, Y, K int
	Name       string
	Proportion float64
}

// =============================================================================
// Dispatch Stage Types
// =============================================================================

// DispatchInput identifies the uploaded file to route.
type DispatchInput struct {
	Path string
}

// DispatchResult carries the routing decision.
type DispatchResult struct {
	FileType FileType
	Ext      string // lowercased, with leading dot
}

// =============================================================================
// Vector Render Stage Types
// =============================================================================

// VectorRenderInput contains parameters for vector rasterization.
type VectorRenderInput struct {
	Path string
	Ext  string
	DPI  int
}

// VectorRenderResult contains the raster produced by a backend.
type VectorRenderResult struct {
	RasterPath string // temporary PNG file, owned by the orchestrator
	Backend    string // name of the backend that succeeded
}

// =============================================================================
// Stitch Render Stage Types
// =============================================================================

// StitchRenderInput contains parameters for embroidery rendering.
type StitchRenderInput struct {
	Path         string
	Ext          string
	CanvasWidth  int
	CanvasHeight int
}

// DefaultStitchCanvas is the nominal embroidery canvas size. The result
// reports the dimensions actually used, not this default.
var DefaultStitchCanvas = struct{ Width, Height int }{1200, 800}

// StitchRenderResult contains the rendered pattern and its statistics.
type StitchRenderResult struct {
	Image image.Image
	Stats StitchStats
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput identifies the original source bytes to scan. Scanning
// always runs against the source file, never the rasterized output.
type ExtractInput struct {
	Path string
	Ext  string
}

// ExtractResult carries the classified colors. Colors is nil when
// extraction was not attempted or found nothing, which is distinct from
// an empty set by design.
type ExtractResult struct {
	Colors *swatch.ColorSet
}

// =============================================================================
// Finish Stage Types
// =============================================================================

// FinishInput contains parameters for post-processing.
type FinishInput struct {
	Image      image.Image
	FileType   FileType
	Background BackgroundMode
	DPI        int
}

// FinishResult contains the final preview image and its measurements.
type FinishResult struct {
	Image      image.Image
	PNG        []byte
	Width      int
	Height     int
	Brightness float64       // mean gray value 0-255, measured pre-composite
	Physical   *PhysicalSize // vector only
}

// =============================================================================
// Terminal Artifact
// =============================================================================

// PreviewResult is the terminal artifact of one request. FileType
// determines which optional fields are populated: embroidery results
// never carry colors; vector results never carry stitch statistics.
type PreviewResult struct {
	FileType   FileType
	Width      int
	Height     int
	Brightness float64
	PNG        []byte
	ByteSize   int64

	// Vector only
	Physical *PhysicalSize
	Colors   *swatch.ColorSet
	Sampled  []SampledColor // fallback when Colors is nil
	Backend  string
	PDFPath  string // companion vector PDF, empty when unavailable
	PDFSize  int64

	// Embroidery only
	Stitch *StitchStats
}
