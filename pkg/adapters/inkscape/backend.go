// Package inkscape provides a raster backend and vector exporter that
// invoke the Inkscape binary.
package inkscape

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/artproof/pkg/ports"
)

// supportedExts are the vector formats handed to Inkscape. XCF is not
// included; GIMP files go straight to ImageMagick.
var supportedExts = map[string]bool{
	".svg": true,
	".pdf": true,
	".eps": true,
	".ai":  true,
	".cdr": true,
}

// exportExts are the formats Inkscape can export as vector PDF.
var exportExts = map[string]bool{
	".svg": true,
	".cdr": true,
}

// Backend invokes the Inkscape binary for rasterization and vector
// PDF export.
type Backend struct {
	path string
}

// New creates a Backend. customPath, when non-empty, overrides binary
// discovery. Availability is probed once here.
func New(customPath string) *Backend {
	return &Backend{path: findInkscape(customPath)}
}

// findInkscape searches for the inkscape binary.
// Priority: 1) customPath, 2) INKSCAPE_PATH env, 3) PATH, 4) common locations.
func findInkscape(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath
		}
		return ""
	}

	if envPath := os.Getenv("INKSCAPE_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}

	execName := "inkscape"
	if runtime.GOOS == "windows" {
		execName = "inkscape.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\Program Files\Inkscape\bin\inkscape.exe`,
			`C:\Program Files (x86)\Inkscape\bin\inkscape.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/Applications/Inkscape.app/Contents/MacOS/inkscape",
			"/opt/homebrew/bin/inkscape",
			"/usr/local/bin/inkscape",
		}
	default:
		commonPaths = []string{
			"/usr/bin/inkscape",
			"/usr/local/bin/inkscape",
			"/snap/bin/inkscape",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "inkscape"
}

// Available reports whether the binary was found.
func (b *Backend) Available() bool {
	return b.path != ""
}

// Supports reports whether Inkscape accepts the extension.
func (b *Backend) Supports(ext string) bool {
	return supportedExts[ext]
}

// Convert rasterizes inputPath to a PNG at the given DPI.
func (b *Backend) Convert(ctx context.Context, inputPath, outputPath string, dpi int) error {
	cmd := exec.CommandContext(ctx, b.path,
		inputPath,
		"--export-type=png",
		fmt.Sprintf("--export-dpi=%d", dpi),
		fmt.Sprintf("--export-filename=%s", outputPath),
	)
	return run(cmd)
}

// SupportsExport reports whether Inkscape can produce a vector PDF
// from the extension.
func (b *Backend) SupportsExport(ext string) bool {
	return exportExts[ext]
}

// ExportPDF writes a vector-preserving PDF with text converted to
// paths, so vendors without the original fonts still see the artwork.
func (b *Backend) ExportPDF(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, b.path,
		inputPath,
		"--export-type=pdf",
		"--export-pdf-version=1.5",
		"--export-text-to-path",
		fmt.Sprintf("--export-filename=%s", outputPath),
	)
	return run(cmd)
}

func run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("inkscape: %w: %s", err, stderr.String())
		}
		return fmt.Errorf("inkscape: %w", err)
	}
	return nil
}

var (
	_ ports.RasterBackend  = (*Backend)(nil)
	_ ports.VectorExporter = (*Backend)(nil)
)
