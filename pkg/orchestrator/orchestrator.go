// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/artproof/pkg/colormath"
	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
)

// sampledPaletteSize caps the dominant-color fallback list.
const sampledPaletteSize = 6

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputPath  string
	OutputPath string

	// Rendering
	DPI                int
	MaxWidth           int
	MaxHeight          int
	StitchCanvasWidth  int
	StitchCanvasHeight int
	TimeoutMs          int

	// Post-processing
	Background pipeline.BackgroundMode

	// Companion PDF
	ExportPDF bool
	PDFPath   string // defaults to OutputPath with a .pdf extension
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DPI:                300,
		MaxWidth:           1200,
		MaxHeight:          1200,
		StitchCanvasWidth:  pipeline.DefaultStitchCanvas.Width,
		StitchCanvasHeight: pipeline.DefaultStitchCanvas.Height,
		TimeoutMs:          60000,
		Background:         pipeline.BackgroundAuto,
	}
}

// VectorStage is the vectorize stage contract: rasterization plus the
// companion PDF export that rides alongside it.
type VectorStage interface {
	pipeline.Stage[pipeline.VectorRenderInput, pipeline.VectorRenderResult]
	ExportCompanionPDF(ctx context.Context, inputPath, ext, outputPath string) (string, error)
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	dispatchStage pipeline.Stage[pipeline.DispatchInput, pipeline.DispatchResult]
	vectorStage   VectorStage
	stitchStage   pipeline.Stage[pipeline.StitchRenderInput, pipeline.StitchRenderResult]
	extractStage  pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	finishStage   pipeline.Stage[pipeline.FinishInput, pipeline.FinishResult]
	fs            ports.FileSystem
	renderer      ports.Renderer
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	dispatchStage pipeline.Stage[pipeline.DispatchInput, pipeline.DispatchResult],
	vectorStage VectorStage,
	stitchStage pipeline.Stage[pipeline.StitchRenderInput, pipeline.StitchRenderResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	finishStage pipeline.Stage[pipeline.FinishInput, pipeline.FinishResult],
	fs ports.FileSystem,
	renderer ports.Renderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		dispatchStage: dispatchStage,
		vectorStage:   vectorStage,
		stitchStage:   stitchStage,
		extractStage:  extractStage,
		finishStage:   finishStage,
		fs:            fs,
		renderer:      renderer,
		sink:          sink,
		logger:        logger,
	}
}

// Run executes the complete preview pipeline for one file.
func (o *Orchestrator) Run(ctx context.Context, config Config) (pipeline.PreviewResult, error) {
	o.logger.Info(l10n.F("Generating preview for %s", filepath.Base(config.InputPath)))

	dispatch, err := o.dispatchStage.Execute(ctx, pipeline.DispatchInput{Path: config.InputPath})
	if err != nil {
		o.logger.Error(l10n.F("Cannot route file: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("dispatch stage: %w", err)
	}
	o.logger.Info(l10n.F("Routing %s as %s", dispatch.Ext, dispatch.FileType))

	var result pipeline.PreviewResult
	switch dispatch.FileType {
	case pipeline.FileTypeVector:
		result, err = o.runVector(ctx, config, dispatch)
	case pipeline.FileTypeEmbroidery:
		result, err = o.runEmbroidery(ctx, config, dispatch)
	default:
		err = fmt.Errorf("%w: %s", pipeline.ErrUnsupportedFormat, dispatch.Ext)
	}
	if err != nil {
		return pipeline.PreviewResult{}, err
	}

	if err := o.fs.WriteFile(config.OutputPath, result.PNG); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("write output: %w", err)
	}
	result.ByteSize = int64(len(result.PNG))
	o.logger.Info(l10n.F("Preview written: %s (%d bytes)", config.OutputPath, result.ByteSize))

	return result, nil
}

func (o *Orchestrator) runVector(ctx context.Context, config Config, dispatch pipeline.DispatchResult) (pipeline.PreviewResult, error) {
	render, err := o.vectorStage.Execute(ctx, pipeline.VectorRenderInput{
		Path: config.InputPath,
		Ext:  dispatch.Ext,
		DPI:  config.DPI,
	})
	if err != nil {
		o.logger.Error(l10n.F("Rasterization failed: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("vectorize stage: %w", err)
	}
	defer o.fs.Remove(render.RasterPath)
	o.logger.Info(l10n.F("Rasterized with %s", render.Backend))

	rasterData, err := o.fs.ReadFile(render.RasterPath)
	if err != nil {
		return pipeline.PreviewResult{}, fmt.Errorf("read raster: %w", err)
	}
	if o.sink.Enabled() {
		o.sink.SaveRawRaster(rasterData)
	}

	rasterImg, err := o.renderer.DecodeImage(rasterData, ports.FormatPNG)
	if err != nil {
		return pipeline.PreviewResult{}, fmt.Errorf("decode raster: %w", err)
	}

	// Best effort; a nil Colors falls back to sampling below.
	extract, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{
		Path: config.InputPath,
		Ext:  dispatch.Ext,
	})
	if err != nil {
		o.logger.Warn(l10n.F("Color extraction failed: %s", err))
		extract = pipeline.ExtractResult{}
	}
	if o.sink.Enabled() && extract.Colors != nil {
		if data, jsonErr := json.MarshalIndent(extract.Colors, "", "  "); jsonErr == nil {
			o.sink.SaveColorSetJSON(data)
		}
	}

	finish, err := o.finishStage.Execute(ctx, pipeline.FinishInput{
		Image:      rasterImg,
		FileType:   pipeline.FileTypeVector,
		Background: config.Background,
		DPI:        config.DPI,
	})
	if err != nil {
		o.logger.Error(l10n.F("Post-processing failed: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("finish stage: %w", err)
	}

	if o.sink.Enabled() {
		o.sink.SaveFinalImage(finish.Image)
	}

	result := pipeline.PreviewResult{
		FileType:   pipeline.FileTypeVector,
		Width:      finish.Width,
		Height:     finish.Height,
		Brightness: finish.Brightness,
		PNG:        finish.PNG,
		Physical:   finish.Physical,
		Colors:     extract.Colors,
		Backend:    render.Backend,
	}

	if extract.Colors == nil {
		o.logger.Info(l10n.T("No declared colors found, sampling rendered image"))
		result.Sampled = sampleColors(rasterImg)
	}

	if config.ExportPDF {
		pdfPath := config.PDFPath
		if pdfPath == "" {
			pdfPath = strings.TrimSuffix(config.OutputPath, filepath.Ext(config.OutputPath)) + ".pdf"
		}
		exported, err := o.vectorStage.ExportCompanionPDF(ctx, config.InputPath, dispatch.Ext, pdfPath)
		if err != nil {
			o.logger.Warn(l10n.F("Companion PDF export failed: %s", err))
		} else if exported == "" {
			o.logger.Warn(l10n.F("Companion PDF not available for %s", dispatch.Ext))
		} else {
			result.PDFPath = exported
			if size, sizeErr := o.fs.Size(exported); sizeErr == nil {
				result.PDFSize = size
			}
			o.logger.Info(l10n.F("Companion PDF written: %s", exported))
		}
	}

	return result, nil
}

func (o *Orchestrator) runEmbroidery(ctx context.Context, config Config, dispatch pipeline.DispatchResult) (pipeline.PreviewResult, error) {
	render, err := o.stitchStage.Execute(ctx, pipeline.StitchRenderInput{
		Path:         config.InputPath,
		Ext:          dispatch.Ext,
		CanvasWidth:  config.StitchCanvasWidth,
		CanvasHeight: config.StitchCanvasHeight,
	})
	if err != nil {
		o.logger.Error(l10n.F("Stitch rendering failed: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("stitch stage: %w", err)
	}
	o.logger.Info(l10n.F("Rendered %d stitches, %d thread changes",
		render.Stats.StitchCount, render.Stats.ThreadChanges))

	if o.sink.Enabled() {
		if data, jsonErr := json.MarshalIndent(render.Stats, "", "  "); jsonErr == nil {
			o.sink.SaveStitchJSON(data)
		}
	}

	finish, err := o.finishStage.Execute(ctx, pipeline.FinishInput{
		Image:      render.Image,
		FileType:   pipeline.FileTypeEmbroidery,
		Background: config.Background,
		DPI:        config.DPI,
	})
	if err != nil {
		o.logger.Error(l10n.F("Post-processing failed: %s", err))
		return pipeline.PreviewResult{}, fmt.Errorf("finish stage: %w", err)
	}

	if o.sink.Enabled() {
		o.sink.SaveFinalImage(finish.Image)
	}

	stats := render.Stats
	return pipeline.PreviewResult{
		FileType:   pipeline.FileTypeEmbroidery,
		Width:      finish.Width,
		Height:     finish.Height,
		Brightness: finish.Brightness,
		PNG:        finish.PNG,
		Stitch:     &stats,
	}, nil
}

// sampleColors converts the dominant-color palette of the raster into
// the result's fallback color list.
func sampleColors(img image.Image) []pipeline.SampledColor {
	entries := colormath.SamplePalette(img, sampledPaletteSize)
	if len(entries) == 0 {
		return nil
	}
	sampled := make([]pipeline.SampledColor, len(entries))
	for i, e := range entries {
		sampled[i] = pipeline.SampledColor{
			R: e.R, G: e.G, B: e.B,
			Hex: e.Hex,
			C:   e.C, M: e.M, Y: e.Y, K: e.K,
			Name:       e.Name,
			Proportion: e.Proportion,
		}
	}
	return sampled
}
