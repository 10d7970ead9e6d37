// Package main provides the CLI entry point for artproof.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/artproof/pkg/adapters/filesink"
	"github.com/user/artproof/pkg/adapters/fitzraster"
	"github.com/user/artproof/pkg/adapters/ggrenderer"
	"github.com/user/artproof/pkg/adapters/ghostscript"
	"github.com/user/artproof/pkg/adapters/imagemagick"
	"github.com/user/artproof/pkg/adapters/inkscape"
	"github.com/user/artproof/pkg/adapters/logger"
	"github.com/user/artproof/pkg/adapters/nullsink"
	"github.com/user/artproof/pkg/adapters/oksvgraster"
	"github.com/user/artproof/pkg/adapters/osfilesystem"
	"github.com/user/artproof/pkg/adapters/stitchio"
	"github.com/user/artproof/pkg/config"
	"github.com/user/artproof/pkg/orchestrator"
	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/stages/dispatch"
	"github.com/user/artproof/pkg/stages/extract"
	"github.com/user/artproof/pkg/stages/finish"
	"github.com/user/artproof/pkg/stages/stitchrender"
	"github.com/user/artproof/pkg/stages/vectorize"
	"github.com/user/artproof/pkg/summarizer"
)

var version = "dev"

func main() {
	// Tool paths may come from a local .env (INKSCAPE_PATH etc.).
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "artproof",
		Usage:   l10n.T("Generate production previews from design and embroidery files"),
		Version: version,
		Commands: []*cli.Command{
			previewCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     l10n.T("Render a preview PNG for a design file"),
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output PNG file path"),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "bg",
				Value: "auto",
				Usage: l10n.T("Background mode (auto, light, dark, transparent)"),
			},
			&cli.IntFlag{
				Name:  "dpi",
				Value: 0,
				Usage: l10n.T("Rasterization density for vector files (default: 300)"),
			},
			&cli.BoolFlag{
				Name:  "pdf",
				Usage: l10n.T("Also export a companion vector PDF"),
			},
			&cli.StringFlag{
				Name:  "pdf-output",
				Usage: l10n.T("Companion PDF path (default: output path with .pdf extension)"),
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: l10n.T("Write a markdown summary report to this path"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Load settings from a YAML config file"),
			},
			&cli.IntFlag{
				Name:  "timeout",
				Value: 0,
				Usage: l10n.T("Per-backend conversion timeout in milliseconds (default: 60000)"),
			},
			&cli.StringFlag{
				Name:  "inkscape-path",
				Usage: l10n.T("Path to the Inkscape binary (falls back to INKSCAPE_PATH env)"),
			},
			&cli.StringFlag{
				Name:  "imagemagick-path",
				Usage: l10n.T("Path to the ImageMagick binary (falls back to MAGICK_PATH env)"),
			},
			&cli.StringFlag{
				Name:  "ghostscript-path",
				Usage: l10n.T("Path to the Ghostscript binary (falls back to GS_PATH env)"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   l10n.T("Save intermediate artifacts for debugging"),
			},
			&cli.StringFlag{
				Name:  "debug-dir",
				Value: "./debug",
				Usage: l10n.T("Directory for debug output"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Action: runPreview,
	}
}

func runPreview(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", c.NArg())
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	ink := inkscape.New(cfg.InkscapePath)
	magick := imagemagick.New(cfg.ImageMagickPath)
	gs := ghostscript.New(cfg.GhostscriptPath)

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// External tools first; the in-process backends are narrow
	// fallbacks so a bare host still previews SVG and PDF.
	backends := []ports.RasterBackend{
		ink,
		magick,
		oksvgraster.New(),
		fitzraster.New(),
	}
	exporters := []ports.VectorExporter{
		gs,
		ink,
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond

	// Stages
	dispatchStage := dispatch.NewStage()
	vectorStage := vectorize.NewStage(backends, exporters, fs, log, timeout)
	stitchStage := stitchrender.NewStage(stitchio.New(), renderer, log)
	extractStage := extract.NewStage(fs, gs, log)
	finishStage := finish.NewStage(renderer, log, cfg.MaxWidth, cfg.MaxHeight, cfg.FontPath)

	orch := orchestrator.New(
		dispatchStage,
		vectorStage,
		stitchStage,
		extractStage,
		finishStage,
		fs,
		renderer,
		sink,
		log,
	)

	orchConfig := cfg.ToOrchestratorConfig()

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	if reportPath := c.String("report"); reportPath != "" {
		summary := summarizer.FromResult(result, cfg.InputPath, cfg.OutputPath, orchConfig.Background)
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter())
		if err := writer.Write(reportPath, summary); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info(l10n.F("Report written to %s", reportPath))
	}

	return nil
}

// buildConfig merges defaults, an optional config file and CLI flags,
// in that order of precedence.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.InputPath = c.Args().First()
	cfg.OutputPath = c.String("output")

	if c.IsSet("bg") || cfg.Background == "" {
		cfg.Background = c.String("bg")
	}
	if dpi := c.Int("dpi"); dpi > 0 {
		cfg.DPI = dpi
	}
	if timeout := c.Int("timeout"); timeout > 0 {
		cfg.TimeoutMs = timeout
	}
	if c.Bool("pdf") {
		cfg.ExportPDF = true
	}
	if path := c.String("pdf-output"); path != "" {
		cfg.PDFPath = path
		cfg.ExportPDF = true
	}
	if path := c.String("inkscape-path"); path != "" {
		cfg.InkscapePath = path
	}
	if path := c.String("imagemagick-path"); path != "" {
		cfg.ImageMagickPath = path
	}
	if path := c.String("ghostscript-path"); path != "" {
		cfg.GhostscriptPath = path
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if dir := c.String("debug-dir"); c.IsSet("debug-dir") {
		cfg.DebugDir = dir
	}

	if _, err := cfg.BackgroundMode(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
