package stitch

import "errors"

// ErrUnknownFormat indicates a stitch file extension without a bundled
// decoder. Such files are valid embroidery uploads but cannot be
// rendered by this build.
var ErrUnknownFormat = errors.New("no stitch decoder for format")
