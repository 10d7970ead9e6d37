// Package imagemagick provides a raster backend that invokes the
// ImageMagick convert binary.
package imagemagick

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/user/artproof/pkg/ports"
)

var supportedExts = map[string]bool{
	".svg": true,
	".pdf": true,
	".eps": true,
	".ai":  true,
	".cdr": true,
	".xcf": true,
}

// Backend invokes ImageMagick for rasterization. It handles the
// formats Inkscape cannot open and serves as the fallback for the
// rest.
type Backend struct {
	path string
}

// New creates a Backend. customPath, when non-empty, overrides binary
// discovery.
func New(customPath string) *Backend {
	return &Backend{path: findMagick(customPath)}
}

// findMagick searches for the ImageMagick binary, preferring the v7
// "magick" entry point over the legacy "convert".
// Priority: 1) customPath, 2) MAGICK_PATH env, 3) PATH, 4) common locations.
func findMagick(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath
		}
		return ""
	}

	if envPath := os.Getenv("MAGICK_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}

	names := []string{"magick", "convert"}
	if runtime.GOOS == "windows" {
		// "convert" collides with the Windows filesystem tool.
		names = []string{"magick.exe"}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "windows":
		commonPaths = []string{
			`C:\Program Files\ImageMagick-7.1.1-Q16-HDRI\magick.exe`,
			`C:\Program Files\ImageMagick\magick.exe`,
		}
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/magick",
			"/usr/local/bin/magick",
			"/usr/local/bin/convert",
		}
	default:
		commonPaths = []string{
			"/usr/bin/magick",
			"/usr/bin/convert",
			"/usr/local/bin/magick",
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
	return "imagemagick"
}

// Available reports whether the binary was found.
func (b *Backend) Available() bool {
	return b.path != ""
}

// Supports reports whether ImageMagick accepts the extension.
func (b *Backend) Supports(ext string) bool {
	return supportedExts[ext]
}

// Convert rasterizes inputPath to a PNG at the given DPI. Arguments
// vary by format: SVG keeps a transparent background, PDF takes only
// the first page, XCF and CDR are flattened. EPS and AI get one retry
// with an explicit white background because Ghostscript chokes on
// transparency in some Illustrator exports.
func (b *Backend) Convert(ctx context.Context, inputPath, outputPath string, dpi int) error {
	ext := strings.ToLower(filepath.Ext(inputPath))
	density := fmt.Sprintf("%d", dpi)

	var args []string
	switch ext {
	case ".svg":
		args = []string{"-background", "none", "-density", density, inputPath, outputPath}
	case ".pdf":
		args = []string{"-density", density, "-background", "none", inputPath + "[0]", "-flatten", outputPath}
	default:
		// EPS, AI, CDR and XCF are all flattened onto their own page box.
		args = []string{"-density", density, inputPath, "-flatten", outputPath}
	}

	err := b.run(ctx, args)
	if err != nil && (ext == ".eps" || ext == ".ai") {
		retry := []string{"-density", density, "-background", "white", inputPath, "-flatten", outputPath}
		if retryErr := b.run(ctx, retry); retryErr == nil {
			return nil
		}
	}
	return err
}

func (b *Backend) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, b.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("imagemagick: %w: %s", err, stderr.String())
		}
		return fmt.Errorf("imagemagick: %w", err)
	}
	return nil
}

var _ ports.RasterBackend = (*Backend)(nil)
