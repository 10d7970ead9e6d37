package mocks

import (
	"fmt"

	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/stitch"
)

// StitchParser is a mock implementation of ports.StitchParser.
type StitchParser struct {
	SupportsFunc func(ext string) bool
	ParseFunc    func(path string) (*stitch.Pattern, error)
}

func (m *StitchParser) Supports(ext string) bool {
	if m.SupportsFunc != nil {
		return m.SupportsFunc(ext)
	}
	return true
}

func (m *StitchParser) Parse(path string) (*stitch.Pattern, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(path)
	}
	return nil, fmt.Errorf("no ParseFunc configured for %s", path)
}

var _ ports.StitchParser = (*StitchParser)(nil)
