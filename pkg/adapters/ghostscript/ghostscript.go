// Package ghostscript wraps the Ghostscript binary as a spot color
// prober and a vector PDF exporter for PostScript-family inputs.
package ghostscript

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/user/artproof/pkg/ports"
)

var exportExts = map[string]bool{
	".eps": true,
	".ai":  true,
}

// inkcovSpotPattern matches separation plate names in the ink
// coverage report, e.g. "PANTONE 186 C" preceding CMYK percentages.
var inkcovSpotPattern = regexp.MustCompile(`(?i)(PANTONE\s+[0-9]{1,4}(?:\s+[0-9]{1,4})?\s*(?:C|U|M|CP|UP|TPX|TCX)?)`)

// Client invokes Ghostscript. It serves two ports: probing which spot
// color plates a PostScript file actually paints with, and distilling
// EPS/AI artwork into a portable PDF.
type Client struct {
	path string
}

// New creates a Client. customPath, when non-empty, overrides binary
// discovery.
func New(customPath string) *Client {
	return &Client{path: findGhostscript(customPath)}
}

// findGhostscript searches for the gs binary.
// Priority: 1) customPath, 2) GS_PATH env, 3) PATH, 4) common locations.
func findGhostscript(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath
		}
		return ""
	}

	if envPath := os.Getenv("GS_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}

	names := []string{"gs"}
	if runtime.GOOS == "windows" {
		names = []string{"gswin64c.exe", "gswin32c.exe"}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	var commonPaths []string
	switch runtime.GOOS {
	case "darwin":
		commonPaths = []string{
			"/opt/homebrew/bin/gs",
			"/usr/local/bin/gs",
		}
	default:
		commonPaths = []string{
			"/usr/bin/gs",
			"/usr/local/bin/gs",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Name returns the adapter name.
func (c *Client) Name() string {
	return "ghostscript"
}

// Available reports whether the binary was found.
func (c *Client) Available() bool {
	return c.path != ""
}

// UsedSpotColors renders the file through the inkcov device and
// collects the spot plate names Ghostscript reports. A plate that
// appears here was actually painted with, unlike a swatch that merely
// sits defined in the document resources.
func (c *Client) UsedSpotColors(ctx context.Context, inputPath string) ([]string, error) {
	cmd := exec.CommandContext(ctx, c.path,
		"-o", "-",
		"-sDEVICE=inkcov",
		inputPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("ghostscript inkcov: %w: %s", err, stderr.String())
		}
		return nil, fmt.Errorf("ghostscript inkcov: %w", err)
	}

	seen := map[string]bool{}
	var names []string
	for _, m := range inkcovSpotPattern.FindAllString(stdout.String(), -1) {
		name := strings.ToUpper(strings.Join(strings.Fields(m), " "))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// SupportsExport reports whether the extension can be distilled.
func (c *Client) SupportsExport(ext string) bool {
	return exportExts[ext]
}

// ExportPDF distills an EPS or AI file into a PDF cropped to the
// artwork bounding box.
func (c *Client) ExportPDF(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, c.path,
		"-dNOPAUSE", "-dBATCH", "-dQUIET",
		"-sDEVICE=pdfwrite",
		"-dEPSCrop",
		fmt.Sprintf("-sOutputFile=%s", outputPath),
		inputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("ghostscript pdfwrite: %w: %s", err, stderr.String())
		}
		return fmt.Errorf("ghostscript pdfwrite: %w", err)
	}
	return nil
}

var (
	_ ports.SpotColorProber = (*Client)(nil)
	_ ports.VectorExporter  = (*Client)(nil)
)
