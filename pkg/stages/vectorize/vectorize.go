// Package vectorize implements the vector rasterization stage.
//
// Rasterizing design files is delegated to a chain of backends tried in
// priority order: whichever backend first produces a non-empty output
// file wins. External tools (Inkscape, ImageMagick) come before the
// in-process fallbacks because their format coverage is far wider.
package vectorize

import (
	"context"
	"fmt"
	"time"

	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
)

// maxDiagnosticLen caps how much of a backend's error output is carried
// into the final error message.
const maxDiagnosticLen = 200

// Stage rasterizes vector design files through the backend chain.
type Stage struct {
	backends  []ports.RasterBackend
	exporters []ports.VectorExporter
	fs        ports.FileSystem
	logger    ports.Logger
	timeout   time.Duration
}

// NewStage creates a vectorize stage. Backends and exporters are tried
// in the order given; timeout bounds each individual backend
// invocation, not the chain as a whole.
func NewStage(backends []ports.RasterBackend, exporters []ports.VectorExporter, fs ports.FileSystem, logger ports.Logger, timeout time.Duration) *Stage {
	return &Stage{
		backends:  backends,
		exporters: exporters,
		fs:        fs,
		logger:    logger.WithComponent("vectorize"),
		timeout:   timeout,
	}
}

// Execute rasterizes the file through the first backend that handles
// its format and produces output. The returned raster path is a
// temporary file owned by the caller.
func (s *Stage) Execute(ctx context.Context, input pipeline.VectorRenderInput) (pipeline.VectorRenderResult, error) {
	result := pipeline.VectorRenderResult{}

	outputPath, err := s.fs.TempFile(".png")
	if err != nil {
		return result, fmt.Errorf("create raster temp file: %w", err)
	}

	var lastErr error
	tried := 0
	for _, backend := range s.backends {
		if !backend.Supports(input.Ext) {
			continue
		}
		if !backend.Available() {
			s.logger.Debug("Backend %s not available, skipping", backend.Name())
			continue
		}
		tried++

		s.logger.Debug("Trying backend %s for %s", backend.Name(), input.Ext)
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := backend.Convert(attemptCtx, input.Path, outputPath, input.DPI)
		cancel()

		if err == nil {
			// Some tools exit zero without writing anything; verify output.
			if size, sizeErr := s.fs.Size(outputPath); sizeErr != nil || size == 0 {
				err = fmt.Errorf("backend %s produced no output", backend.Name())
			}
		}
		if err == nil {
			s.logger.Debug("Backend %s succeeded", backend.Name())
			result.RasterPath = outputPath
			result.Backend = backend.Name()
			return result, nil
		}

		s.logger.Warn("Backend %s failed: %v", backend.Name(), err)
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	// Nothing succeeded; the empty temp file is ours to clean up.
	_ = s.fs.Remove(outputPath)

	if tried == 0 {
		return result, fmt.Errorf("%w: no available backend handles %s", pipeline.ErrConversionFailed, input.Ext)
	}
	return result, fmt.Errorf("%w: %s", pipeline.ErrConversionFailed, truncate(lastErr.Error(), maxDiagnosticLen))
}

// ExportCompanionPDF produces a vendor-ready vector PDF next to the
// raster preview. PDF sources are copied through unchanged; other
// formats go through the first exporter that supports them. An empty
// path with a nil error means no exporter could serve the format,
// which the caller reports as "PDF unavailable" rather than a failure.
func (s *Stage) ExportCompanionPDF(ctx context.Context, inputPath, ext, outputPath string) (string, error) {
	if ext == ".pdf" {
		data, err := s.fs.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("copy source pdf: %w", err)
		}
		if err := s.fs.WriteFile(outputPath, data); err != nil {
			return "", fmt.Errorf("copy source pdf: %w", err)
		}
		return outputPath, nil
	}

	for _, exporter := range s.exporters {
		if !exporter.SupportsExport(ext) {
			continue
		}
		if !exporter.Available() {
			s.logger.Debug("Exporter %s not available, skipping", exporter.Name())
			continue
		}

		s.logger.Debug("Exporting vector PDF with %s", exporter.Name())
		exportCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := exporter.ExportPDF(exportCtx, inputPath, outputPath)
		cancel()
		if err != nil {
			s.logger.Warn("Exporter %s failed: %v", exporter.Name(), err)
			continue
		}
		if size, sizeErr := s.fs.Size(outputPath); sizeErr != nil || size == 0 {
			s.logger.Warn("Exporter %s produced no output", exporter.Name())
			continue
		}
		return outputPath, nil
	}

	s.logger.Debug("No vector PDF exporter for %s", ext)
	return "", nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
