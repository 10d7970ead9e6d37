package pipeline

import "errors"

// Error taxonomy for the preview pipeline. All are fatal for the
// request except extraction failures, which degrade to "no colors
// found" inside the extract stage and never reach the caller.
var (
	// ErrUnsupportedFormat indicates an extension outside both the
	// vector and embroidery sets. The wrapped message carries
	// user-facing guidance on what to export instead.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConversionFailed indicates every eligible backend failed or
	// was unavailable. The wrapped message carries the last backend's
	// diagnostic, truncated.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrDegeneratePattern indicates stitch bounds with zero width or
	// height.
	ErrDegeneratePattern = errors.New("degenerate stitch pattern")

	// ErrPostProcess indicates resize, compositing or encoding failed.
	ErrPostProcess = errors.New("post-processing failed")
)
