// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/artproof/pkg/orchestrator"
	"github.com/user/artproof/pkg/pipeline"
)

// Config represents the full configuration for artproof.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Rendering
	DPI                int    `yaml:"dpi"`
	MaxWidth           int    `yaml:"max_width"`
	MaxHeight          int    `yaml:"max_height"`
	StitchCanvasWidth  int    `yaml:"stitch_canvas_width"`
	StitchCanvasHeight int    `yaml:"stitch_canvas_height"`
	TimeoutMs          int    `yaml:"timeout_ms"`
	FontPath           string `yaml:"font_path"`

	// Post-processing
	Background string `yaml:"background"`

	// Companion PDF
	ExportPDF bool   `yaml:"export_pdf"`
	PDFPath   string `yaml:"pdf_output"`

	// External tools. Empty means automatic discovery.
	InkscapePath    string `yaml:"inkscape_path"`
	ImageMagickPath string `yaml:"imagemagick_path"`
	GhostscriptPath string `yaml:"ghostscript_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		DPI:                300,
		MaxWidth:           1200,
		MaxHeight:          1200,
		StitchCanvasWidth:  pipeline.DefaultStitchCanvas.Width,
		StitchCanvasHeight: pipeline.DefaultStitchCanvas.Height,
		TimeoutMs:          60000,
		Background:         string(pipeline.BackgroundAuto),
		DebugDir:           "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// BackgroundMode validates and converts the background setting.
func (c Config) BackgroundMode() (pipeline.BackgroundMode, error) {
	switch pipeline.BackgroundMode(c.Background) {
	case pipeline.BackgroundAuto, pipeline.BackgroundLight, pipeline.BackgroundDark, pipeline.BackgroundTransparent:
		return pipeline.BackgroundMode(c.Background), nil
	default:
		return "", fmt.Errorf("invalid background %q (auto, light, dark, transparent)", c.Background)
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config. The
// background string must have been validated beforehand.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputPath:  c.InputPath,
		OutputPath: c.OutputPath,

		DPI:                c.DPI,
		MaxWidth:           c.MaxWidth,
		MaxHeight:          c.MaxHeight,
		StitchCanvasWidth:  c.StitchCanvasWidth,
		StitchCanvasHeight: c.StitchCanvasHeight,
		TimeoutMs:          c.TimeoutMs,

		Background: pipeline.BackgroundMode(c.Background),

		ExportPDF: c.ExportPDF,
		PDFPath:   c.PDFPath,
	}
}
