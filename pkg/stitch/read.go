package stitch

import (
	"fmt"
	"io"
)

// Reader decodes one embroidery file format into a Pattern.
type Reader func(r io.Reader) (*Pattern, error)

// readers maps a lowercased extension to its decoder. Formats without a
// bundled decoder (.pes, .vp3, .xxx, .u01) are still dispatched as
// embroidery files upstream; parsing them reports ErrUnknownFormat so
// the failure surfaces with an actionable message.
var readers = map[string]Reader{
	".dst": ReadDST,
	".exp": ReadEXP,
	".jef": ReadJEF,
}

// ReaderFor returns the decoder for ext, or nil if the format has no
// bundled decoder.
func ReaderFor(ext string) Reader {
	return readers[ext]
}

// Read decodes the stream using the decoder registered for ext.
func Read(r io.Reader, ext string) (*Pattern, error) {
	reader := ReaderFor(ext)
	if reader == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	return reader(r)
}
