package mocks

import (
	"context"

	"github.com/user/artproof/pkg/ports"
)

// RasterBackend is a mock implementation of ports.RasterBackend.
type RasterBackend struct {
	NameValue      string
	AvailableValue bool
	SupportsFunc   func(ext string) bool
	ConvertFunc    func(ctx context.Context, inputPath, outputPath string, dpi int) error

	ConvertCalls int
}

func (m *RasterBackend) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *RasterBackend) Available() bool {
	return m.AvailableValue
}

func (m *RasterBackend) Supports(ext string) bool {
	if m.SupportsFunc != nil {
		return m.SupportsFunc(ext)
	}
	return true
}

func (m *RasterBackend) Convert(ctx context.Context, inputPath, outputPath string, dpi int) error {
	m.ConvertCalls++
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, inputPath, outputPath, dpi)
	}
	return nil
}

var _ ports.RasterBackend = (*RasterBackend)(nil)

// VectorExporter is a mock implementation of ports.VectorExporter.
type VectorExporter struct {
	NameValue          string
	AvailableValue     bool
	SupportsExportFunc func(ext string) bool
	ExportPDFFunc      func(ctx context.Context, inputPath, outputPath string) error

	ExportCalls int
}

func (m *VectorExporter) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *VectorExporter) Available() bool {
	return m.AvailableValue
}

func (m *VectorExporter) SupportsExport(ext string) bool {
	if m.SupportsExportFunc != nil {
		return m.SupportsExportFunc(ext)
	}
	return true
}

func (m *VectorExporter) ExportPDF(ctx context.Context, inputPath, outputPath string) error {
	m.ExportCalls++
	if m.ExportPDFFunc != nil {
		return m.ExportPDFFunc(ctx, inputPath, outputPath)
	}
	return nil
}

var _ ports.VectorExporter = (*VectorExporter)(nil)

// SpotColorProber is a mock implementation of ports.SpotColorProber.
type SpotColorProber struct {
	AvailableValue     bool
	UsedSpotColorsFunc func(ctx context.Context, path string) ([]string, error)
}

func (m *SpotColorProber) Available() bool {
	return m.AvailableValue
}

func (m *SpotColorProber) UsedSpotColors(ctx context.Context, path string) ([]string, error) {
	if m.UsedSpotColorsFunc != nil {
		return m.UsedSpotColorsFunc(ctx, path)
	}
	return nil, nil
}

var _ ports.SpotColorProber = (*SpotColorProber)(nil)
