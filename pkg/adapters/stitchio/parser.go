// Package stitchio adapts the stitch format readers to the parser
// port.
package stitchio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/artproof/pkg/ports"
	"github.com/user/artproof/pkg/stitch"
)

// Parser decodes embroidery files through the native format readers.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Supports reports whether a native reader exists for the extension.
func (p *Parser) Supports(ext string) bool {
	return stitch.ReaderFor(ext) != nil
}

// Parse opens the file and decodes it with the reader matching its
// extension.
func (p *Parser) Parse(path string) (*stitch.Pattern, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader := stitch.ReaderFor(ext)
	if reader == nil {
		return nil, fmt.Errorf("%w: %s", stitch.ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stitch file: %w", err)
	}
	defer f.Close()

	return reader(f)
}

var _ ports.StitchParser = (*Parser)(nil)
