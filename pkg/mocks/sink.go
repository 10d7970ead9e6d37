package mocks

import (
	"image"

	"github.com/user/artproof/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// what was saved.
type DebugSink struct {
	EnabledValue bool

	RawRasters  [][]byte
	ColorSets   [][]byte
	StitchJSONs [][]byte
	FinalImages []image.Image
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveRawRaster(data []byte) error {
	m.RawRasters = append(m.RawRasters, data)
	return nil
}

func (m *DebugSink) SaveColorSetJSON(data []byte) error {
	m.ColorSets = append(m.ColorSets, data)
	return nil
}

func (m *DebugSink) SaveStitchJSON(data []byte) error {
	m.StitchJSONs = append(m.StitchJSONs, data)
	return nil
}

func (m *DebugSink) SaveFinalImage(img image.Image) error {
	m.FinalImages = append(m.FinalImages, img)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
