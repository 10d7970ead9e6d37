package vectorize

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/user/artproof/pkg/adapters/logger"
	"github.com/user/artproof/pkg/mocks"
	"github.com/user/artproof/pkg/pipeline"
	"github.com/user/artproof/pkg/ports"
)

func newStage(fs *mocks.FileSystem, backends []ports.RasterBackend, exporters []ports.VectorExporter) *Stage {
	return NewStage(backends, exporters, fs, logger.NewNoop(), 5*time.Second)
}

func TestExecute_FirstBackendWins(t *testing.T) {
	fs := mocks.NewFileSystem()
	first := &mocks.RasterBackend{
		NameValue:      "first",
		AvailableValue: true,
		ConvertFunc: func(ctx context.Context, in, out string, dpi int) error {
			return fs.WriteFile(out, []byte("png data"))
		},
	}
	second := &mocks.RasterBackend{NameValue: "second", AvailableValue: true}

	stage := newStage(fs, []ports.RasterBackend{first, second}, nil)
	result, err := stage.Execute(context.Background(), pipeline.VectorRenderInput{
		Path: "in.svg", Ext: ".svg", DPI: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Backend != "first" {
		t.Errorf("backend: expected first, got %s", result.Backend)
	}
	if second.ConvertCalls != 0 {
		t.Errorf("second backend should not run, got %d calls", second.ConvertCalls)
	}
	if data, ok := fs.GetFile(result.RasterPath); !ok || len(data) == 0 {
		t.Error("expected raster output file")
	}
}

func TestExecute_FallsThroughOnFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	first := &mocks.RasterBackend{
		NameValue:      "first",
		AvailableValue: true,
		ConvertFunc: func(ctx context.Context, in, out string, dpi int) error {
			return fmt.Errorf("broken pipe")
		},
	}
	second := &mocks.RasterBackend{
		NameValue:      "second",
		AvailableValue: true,
		ConvertFunc: func(ctx context.Context, in, out string, dpi int) error {
			return fs.WriteFile(out, []byte("png data"))
		},
	}

	stage := newStage(fs, []ports.RasterBackend{first, second}, nil)
	result, err := stage.Execute(context.Background(), pipeline.VectorRenderInput{
		Path: "in.eps", Ext: ".eps", DPI: 300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Backend != "second" {
		t.Errorf("backend: expected second, got %s", result.Backend)
	}
}

func TestExecute_EmptyOutputIsFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	// Exits zero but writes nothing; the pre-created temp file stays
	// empty.
	liar := &mocks.RasterBackend{NameValue: "liar", AvailableValue: true}

	stage := newStage(fs, []ports.RasterBackend{liar}, nil)
	_, err := stage.Execute(context.Background(), pipeline.VectorRenderInput{
		Path: "in.svg", Ext: ".svg", DPI: 300,
	})
	if !errors.Is(err, pipeline.ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}
}

func TestExecute_SkipsUnavailableAndUnsupported(t *testing.T) {
	fs := mocks.NewFileSystem()
	offline := &mocks.RasterBackend{NameValue: "offline", AvailableValue: false}
	wrongFormat := &mocks.RasterBackend{
		NameValue:      "wrong",
		AvailableValue: true,
		SupportsFunc:   func(ext string) bool { return ext == ".pdf" },
	}

	stage := newStage(fs, []ports.RasterBackend{offline, wrongFormat}, nil)
	_, err := stage.Execute(context.Background(), pipeline.VectorRenderInput{
		Path: "in.svg", Ext: ".svg", DPI: 300,
	})
	if !errors.Is(err, pipeline.ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}
	if offline.ConvertCalls != 0 || wrongFormat.ConvertCalls != 0 {
		t.Error("skipped backends must not be invoked")
	}
}

func TestExecute_TruncatesDiagnostics(t *testing.T) {
	fs := mocks.NewFileSystem()
	noisy := &mocks.RasterBackend{
		NameValue:      "noisy",
		AvailableValue: true,
		ConvertFunc: func(ctx context.Context, in, out string, dpi int) error {
			long := make([]byte, 1000)
			for i := range long {
				long[i] = 'x'
			}
			return errors.New(string(long))
		},
	}

	stage := newStage(fs, []ports.RasterBackend{noisy}, nil)
	_, err := stage.Execute(context.Background(), pipeline.VectorRenderInput{
		Path: "in.svg", Ext: ".svg", DPI: 300,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 250 {
		t.Errorf("diagnostic not truncated: %d chars", len(err.Error()))
	}
}

func TestExportCompanionPDF_CopiesSourcePDF(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("in.pdf", []byte("%PDF-1.5 content"))

	stage := newStage(fs, nil, nil)
	path, err := stage.ExportCompanionPDF(context.Background(), "in.pdf", ".pdf", "out.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "out.pdf" {
		t.Errorf("path: expected out.pdf, got %s", path)
	}
	data, ok := fs.GetFile("out.pdf")
	if !ok || string(data) != "%PDF-1.5 content" {
		t.Error("expected byte-identical copy of the source PDF")
	}
}

func TestExportCompanionPDF_UsesFirstWorkingExporter(t *testing.T) {
	fs := mocks.NewFileSystem()
	failing := &mocks.VectorExporter{
		NameValue:      "failing",
		AvailableValue: true,
		ExportPDFFunc: func(ctx context.Context, in, out string) error {
			return errors.New("no dice")
		},
	}
	working := &mocks.VectorExporter{
		NameValue:      "working",
		AvailableValue: true,
		ExportPDFFunc: func(ctx context.Context, in, out string) error {
			return fs.WriteFile(out, []byte("pdf"))
		},
	}

	stage := newStage(fs, nil, []ports.VectorExporter{failing, working})
	path, err := stage.ExportCompanionPDF(context.Background(), "in.svg", ".svg", "out.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "out.pdf" {
		t.Errorf("expected out.pdf, got %q", path)
	}
}

func TestExportCompanionPDF_NoExporter(t *testing.T) {
	fs := mocks.NewFileSystem()
	stage := newStage(fs, nil, nil)

	// XCF has no vector PDF path; empty result, no error.
	path, err := stage.ExportCompanionPDF(context.Background(), "in.xcf", ".xcf", "out.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path, got %q", path)
	}
}
