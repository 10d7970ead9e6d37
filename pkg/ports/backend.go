package ports

import "context"

// RasterBackend abstracts a rasterizer capable of converting a vector
// source file into a raster image file.
//
// Multiple backends may claim the same extension; the vectorize stage
// tries them in a fixed priority order until one succeeds.
type RasterBackend interface {
	// Name returns the backend name for logging and diagnostics.
	Name() string

	// Available reports whether the backend can be invoked on this host.
	// The result is probed once and cached; it must be safe to call
	// repeatedly.
	Available() bool

	// Supports reports whether the backend accepts the given lowercased
	// file extension (including the leading dot).
	Supports(ext string) bool

	// Convert rasterizes inputPath at the given DPI and writes a PNG to
	// outputPath. A nil error with a missing or empty output file is
	// treated as a failure by the caller.
	Convert(ctx context.Context, inputPath, outputPath string, dpi int) error
}

// VectorExporter abstracts a converter that produces a scalable PDF
// companion from a vector source without rasterizing it.
type VectorExporter interface {
	// Name returns the exporter name for logging and diagnostics.
	Name() string

	// Available reports whether the exporter can be invoked on this host.
	Available() bool

	// SupportsExport reports whether the exporter can produce a vector
	// PDF from the given lowercased file extension.
	SupportsExport(ext string) bool

	// ExportPDF writes a vector-preserving PDF of inputPath to outputPath.
	ExportPDF(ctx context.Context, inputPath, outputPath string) error
}

// SpotColorProber abstracts an ink-coverage analysis that reports the
// spot color names actually used by a vector file, as opposed to names
// merely declared in its swatch table.
type SpotColorProber interface {
	// Available reports whether the prober can be invoked on this host.
	Available() bool

	// UsedSpotColors returns the spot color names present in the
	// rendered output of the file at path.
	UsedSpotColors(ctx context.Context, path string) ([]string, error)
}
