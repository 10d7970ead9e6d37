package ports

import "github.com/user/artproof/pkg/stitch"

// StitchParser abstracts decoding of embroidery stitch data files.
type StitchParser interface {
	// Supports reports whether the parser can decode the given
	// lowercased file extension.
	Supports(ext string) bool

	// Parse reads the file at path and returns its stitch pattern.
	Parse(path string) (*stitch.Pattern, error)
}
