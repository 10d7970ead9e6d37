package mocks

import (
	"image"
	"image/color"

	"github.com/user/artproof/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height, bg)
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte("png"), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// LineCall records one DrawLine invocation (for test verification).
type LineCall struct {
	X1, Y1, X2, Y2 float64
	Color          color.Color
	Width          float64
}

// TextCall records one DrawText invocation (for test verification).
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// RectCall records one DrawRoundedRect invocation (for test verification).
type RectCall struct {
	X, Y, W, H, Radius int
	Color              color.Color
}

// Canvas is a mock implementation of ports.Canvas that records drawing
// operations.
type Canvas struct {
	Width      int
	Height     int
	Background color.Color
	Lines      []LineCall
	Texts      []TextCall
	Rects      []RectCall
	Images     int

	img *image.RGBA
}

// NewCanvas creates a recording mock canvas.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{Width: width, Height: height, Background: bg}
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Images++
}

func (m *Canvas) DrawImageOver(img image.Image, x, y int) {
	m.Images++
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawRoundedRect(x, y, w, h, radius int, c color.Color) {
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Radius: radius, Color: c})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	// Rough monospace estimate, deterministic for assertions.
	return float64(len(text)) * style.FontSize * 0.6, style.FontSize
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	m.Lines = append(m.Lines, LineCall{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

func (m *Canvas) ToImage() image.Image {
	if m.img != nil {
		return m.img
	}
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
