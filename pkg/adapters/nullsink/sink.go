// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/artproof/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveRawRaster does nothing.
func (s *Sink) SaveRawRaster(data []byte) error {
	return nil
}

// SaveColorSetJSON does nothing.
func (s *Sink) SaveColorSetJSON(data []byte) error {
	return nil
}

// SaveStitchJSON does nothing.
func (s *Sink) SaveStitchJSON(data []byte) error {
	return nil
}

// SaveFinalImage does nothing.
func (s *Sink) SaveFinalImage(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
