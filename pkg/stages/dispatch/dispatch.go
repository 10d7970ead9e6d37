// Package dispatch implements the format routing stage.
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/artproof/pkg/pipeline"
)

// vectorExts routes to the vector rasterization path.
var vectorExts = map[string]bool{
	".ai":  true,
	".eps": true,
	".pdf": true,
	".svg": true,
	".cdr": true,
	".xcf": true,
}

// embroideryExts routes to the stitch rendering path.
var embroideryExts = map[string]bool{
	".dst": true,
	".pes": true,
	".exp": true,
	".jef": true,
	".vp3": true,
	".xxx": true,
	".u01": true,
}

// Stage routes an uploaded file by extension. This is a pure function
// with no external dependencies; the extension alone decides the path,
// file content is never sniffed here.
type Stage struct{}

// NewStage creates a new dispatch stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute classifies the file at input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.DispatchInput) (pipeline.DispatchResult, error) {
	return Classify(input.Path)
}

// Classify returns the routing decision for path. The extension match
// is case-insensitive; the returned Ext is lowercased with its leading
// dot. Known-but-unsupported formats get targeted guidance.
func Classify(path string) (pipeline.DispatchResult, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case vectorExts[ext]:
		return pipeline.DispatchResult{FileType: pipeline.FileTypeVector, Ext: ext}, nil
	case embroideryExts[ext]:
		return pipeline.DispatchResult{FileType: pipeline.FileTypeEmbroidery, Ext: ext}, nil
	case ext == ".indd":
		return pipeline.DispatchResult{}, fmt.Errorf(
			"%w: %s (InDesign documents cannot be opened directly; export the artwork as PDF and upload that instead)",
			pipeline.ErrUnsupportedFormat, ext)
	case ext == "":
		return pipeline.DispatchResult{}, fmt.Errorf(
			"%w: file %q has no extension", pipeline.ErrUnsupportedFormat, filepath.Base(path))
	default:
		return pipeline.DispatchResult{}, fmt.Errorf(
			"%w: %s (supported: %s)", pipeline.ErrUnsupportedFormat, ext, supportedList())
	}
}

func supportedList() string {
	return ".ai .eps .pdf .svg .cdr .xcf .dst .pes .exp .jef .vp3 .xxx .u01"
}
