// Package extract implements the declared-color extraction stage.
//
// Extraction is best effort by contract: any failure here degrades to
// "no colors found" and never fails the preview request.
package extract

import (
	"context"

	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/swatch"
)

// proberExts are the formats worth running the ink coverage probe on.
// The probe renders the file, so it only makes sense for PostScript
// family inputs Ghostscript can open.
var proberExts = map[string]bool{
	".pdf": true,
	".eps": true,
	".ai":  true,
}

// Stage scans the original source bytes for declared color usage.
type Stage struct {
	fs     ports.FileSystem
	prober ports.SpotColorProber
	logger ports.Logger
}

// NewStage creates an extract stage. prober may be nil.
func NewStage(fs ports.FileSystem, prober ports.SpotColorProber, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		prober: prober,
		logger: logger.WithComponent("extract"),
	}
}

// Execute scans input.Path. The returned Colors is nil when the format
// is not scannable or nothing was found; callers fall back to sampling
// the rendered raster in that case.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{}

	if !swatch.Scannable(input.Ext) {
		s.logger.Debug("Extension %s is not color-scannable", input.Ext)
		return result, nil
	}

	raw, err := s.fs.ReadFile(input.Path)
	if err != nil {
		s.logger.Warn("Color extraction skipped: %v", err)
		return result, nil
	}

	// The ink coverage probe reports which spot plates are actually
	// painted with. When it answers, its answer overrides the textual
	// scan, which also picks up swatches that are defined but unused.
	var usedSpots []string
	if s.prober != nil && s.prober.Available() && proberExts[input.Ext] {
		usedSpots, err = s.prober.UsedSpotColors(ctx, input.Path)
		if err != nil {
			s.logger.Warn("Spot color probe failed: %v", err)
			usedSpots = nil
		}
	}

	result.Colors = swatch.Extract(raw, input.Ext, usedSpots)
	if result.Colors == nil {
		s.logger.Debug("No declared colors found in %s", input.Ext)
	}
	return result, nil
}
