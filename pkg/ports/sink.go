package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRawRaster saves the raster produced by a conversion backend
	// before post-processing.
	SaveRawRaster(data []byte) error

	// SaveColorSetJSON saves the extracted color classification as JSON.
	SaveColorSetJSON(data []byte) error

	// SaveStitchJSON saves the stitch statistics as JSON.
	SaveStitchJSON(data []byte) error

	// SaveFinalImage saves the fully post-processed preview image.
	SaveFinalImage(img image.Image) error
}
