// Package swatch scans raw vector file bytes for embedded color
// declarations and classifies them.
//
// The scan is heuristic by design: AI/EPS/PDF/SVG internals mix binary
// data with ASCII-range PostScript operators, so the extractor pattern
// matches known textual encodings rather than parsing the format. It is
// a best-effort auxiliary signal, not a guaranteed-correct parser.
package swatch

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// List caps, matching print-shop reporting conventions.
const (
	maxPantone   = 15
	maxCMYK      = 15
	maxRGB       = 15
	maxGrayscale = 10
	maxSpotOther = 5
)

// CMYK is a process color with each component in 0-100.
type CMYK struct {
	C, M, Y, K int
}

// RGB is a screen color with each component in 0-255.
type RGB struct {
	R, G, B int
}

// ColorSet holds the classified colors found in one source file. Each
// list is de-duplicated and capped. An all-empty set is represented as
// a nil *ColorSet by Extract, distinguishing "no colors found" from
// "extraction not attempted".
type ColorSet struct {
	Pantone   []string // canonical "PANTONE <number> <variant>" strings, sorted
	CMYK      []CMYK   // sorted by (K, C, M, Y) ascending
	RGB       []RGB    // sorted ascending
	Grayscale []int    // 0-100 percent, 0=black, sorted descending (white first)
	SpotOther []string // named separations, order undefined
}

// Empty reports whether every list is empty.
func (s *ColorSet) Empty() bool {
	return len(s.Pantone) == 0 && len(s.CMYK) == 0 && len(s.RGB) == 0 &&
		len(s.Grayscale) == 0 && len(s.SpotOther) == 0
}

// scannableExts are the vector formats with text-based or partially
// text-based internals. CDR and XCF are opaque for this purpose.
var scannableExts = map[string]bool{
	".ai":  true,
	".eps": true,
	".pdf": true,
	".svg": true,
}

// Scannable reports whether byte scanning is attempted for ext.
func Scannable(ext string) bool {
	return scannableExts[ext]
}

var pantonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)PANTONE\s+(\d+(?:-\d+)?)\s*([A-Z]{1,3})`),
	regexp.MustCompile(`(?i)/\(PANTONE\s+(\d+(?:-\d+)?)\s*([A-Z]{1,3})\)`),
	regexp.MustCompile(`(?i)%%CMYKCustomColor:.*PANTONE\s+(\d+(?:-\d+)?)\s*([A-Z]{1,3})`),
}

var cmykPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+(?:setcmykcolor|k)`),
	regexp.MustCompile(`/DeviceCMYK\s+.*?\[([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\]`),
}

var grayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([\d.]+)\s+(?:setgray|g)\s`),
	regexp.MustCompile(`/DeviceGray\s+.*?\[([\d.]+)\]`),
}

var whiteSwatchPattern = regexp.MustCompile(`(?i)/White[\s\)]|"White"|'White'|\(White\)`)

var rgbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+(?:setrgbcolor|rg|RG)\s`),
	regexp.MustCompile(`/DeviceRGB\s+.*?\[([\d.]+)\s+([\d.]+)\s+([\d.]+)\]`),
}

var separationPattern = regexp.MustCompile(`/Separation\s*/\(([^)]+)\)`)

// Extract scans raw file bytes for color declarations. usedSpots, when
// non-empty, is the authoritative spot color list from an ink-coverage
// analysis and replaces the textual Pantone scan entirely. Returns nil
// when nothing was found or the extension is not scannable.
func Extract(raw []byte, ext string, usedSpots []string) *ColorSet {
	if !Scannable(ext) {
		return nil
	}

	// Decode permissively: every byte becomes its own rune, so binary
	// runs cannot abort the scan.
	text := decodeLatin1(raw)

	set := &ColorSet{
		Pantone:   extractPantone(text, usedSpots),
		CMYK:      extractCMYK(text),
		Grayscale: extractGrayscale(text),
		RGB:       extractRGB(text),
		SpotOther: extractSpotOther(text),
	}

	if set.Empty() {
		return nil
	}
	return set
}

func decodeLatin1(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// CanonicalPantone normalizes a Pantone reference to
// "PANTONE <number> <VARIANT>" form, or returns ok=false when the
// string does not name a Pantone color.
func CanonicalPantone(name string) (string, bool) {
	m := pantonePatterns[0].FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("PANTONE %s %s", m[1], strings.ToUpper(m[2])), true
}

func extractPantone(text string, usedSpots []string) []string {
	found := make(map[string]bool)

	if len(usedSpots) > 0 {
		// Authoritative path: only colors present in rendered output.
		for _, name := range usedSpots {
			if canonical, ok := CanonicalPantone(name); ok {
				found[canonical] = true
			}
		}
	} else {
		for _, re := range pantonePatterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				found[fmt.Sprintf("PANTONE %s %s", m[1], strings.ToUpper(m[2]))] = true
			}
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > maxPantone {
		names = names[:maxPantone]
	}
	return names
}

// scale100 maps an operator operand into the 0-100 range. Values at or
// below 1.0 are treated as normalized fractions and scaled; anything
// larger passes through. A deliberately specified integer value of 1
// (1% ink) is therefore misread as 100% — a known limitation of the
// heuristic, preserved as documented behavior.
func scale100(v float64) int {
	if v <= 1.0 {
		return int(v * 100)
	}
	return int(v)
}

func extractCMYK(text string) []CMYK {
	found := make(map[CMYK]bool)
	for _, re := range cmykPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			c, errC := strconv.ParseFloat(m[1], 64)
			mv, errM := strconv.ParseFloat(m[2], 64)
			y, errY := strconv.ParseFloat(m[3], 64)
			k, errK := strconv.ParseFloat(m[4], 64)
			if errC != nil || errM != nil || errY != nil || errK != nil {
				continue
			}
			// The first operand decides whether the whole tuple is
			// normalized, mirroring how these operators are emitted.
			if c <= 1.0 {
				found[CMYK{int(c * 100), int(mv * 100), int(y * 100), int(k * 100)}] = true
			} else {
				found[CMYK{int(c), int(mv), int(y), int(k)}] = true
			}
		}
	}

	colors := make([]CMYK, 0, len(found))
	for c := range found {
		colors = append(colors, c)
	}
	// K first surfaces black and dark inks, matching print-shop
	// convention.
	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if a.K != b.K {
			return a.K < b.K
		}
		if a.C != b.C {
			return a.C < b.C
		}
		if a.M != b.M {
			return a.M < b.M
		}
		return a.Y < b.Y
	})
	if len(colors) > maxCMYK {
		colors = colors[:maxCMYK]
	}
	return colors
}

func extractGrayscale(text string) []int {
	found := make(map[int]bool)

	// An explicit "White" swatch name forces 100%.
	if whiteSwatchPattern.MatchString(text) {
		found[100] = true
	}

	for _, re := range grayPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			found[scale100(v)] = true
		}
	}

	grays := make([]int, 0, len(found))
	for g := range found {
		grays = append(grays, g)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(grays)))
	if len(grays) > maxGrayscale {
		grays = grays[:maxGrayscale]
	}
	return grays
}

func extractRGB(text string) []RGB {
	found := make(map[RGB]bool)
	for _, re := range rgbPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			r, errR := strconv.ParseFloat(m[1], 64)
			g, errG := strconv.ParseFloat(m[2], 64)
			b, errB := strconv.ParseFloat(m[3], 64)
			if errR != nil || errG != nil || errB != nil {
				continue
			}
			if r <= 1.0 {
				found[RGB{int(r * 255), int(g * 255), int(b * 255)}] = true
			} else {
				found[RGB{int(r), int(g), int(b)}] = true
			}
		}
	}

	colors := make([]RGB, 0, len(found))
	for c := range found {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})
	if len(colors) > maxRGB {
		colors = colors[:maxRGB]
	}
	return colors
}

func extractSpotOther(text string) []string {
	found := make(map[string]bool)
	for _, m := range separationPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		// Pantone separations are already counted by the Pantone scan.
		if strings.Contains(strings.ToUpper(name), "PANTONE") {
			continue
		}
		found[name] = true
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
		if len(names) >= maxSpotOther {
			break
		}
	}
	return names
}
