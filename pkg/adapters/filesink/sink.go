// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/artproof/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRawRaster saves the backend's raster output before post-processing.
func (s *Sink) SaveRawRaster(data []byte) error {
	path := filepath.Join(s.baseDir, "raw.png")
	return s.fs.WriteFile(path, data)
}

// SaveColorSetJSON saves the extracted color classification as JSON.
func (s *Sink) SaveColorSetJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "colors.json")
	return s.fs.WriteFile(path, data)
}

// SaveStitchJSON saves the stitch statistics as JSON.
func (s *Sink) SaveStitchJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "stitch.json")
	return s.fs.WriteFile(path, data)
}

// SaveFinalImage saves the fully post-processed preview image.
func (s *Sink) SaveFinalImage(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode final image: %w", err)
	}
	path := filepath.Join(s.baseDir, "final.png")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
