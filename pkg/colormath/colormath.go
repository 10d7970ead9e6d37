// Package colormath provides color-space conversions and naming
// heuristics for print workflows.
package colormath

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBToCMYK converts an 8-bit RGB color to process ink percentages
// (each 0-100). Pure black maps to K:100 with no chromatic ink.
func RGBToCMYK(r, g, b int) (c, m, y, k int) {
	if r == 0 && g == 0 && b == 0 {
		return 0, 0, 0, 100
	}

	cf := 1 - float64(r)/255.0
	mf := 1 - float64(g)/255.0
	yf := 1 - float64(b)/255.0

	kf := math.Min(cf, math.Min(mf, yf))
	if kf == 1 {
		return 0, 0, 0, 100
	}

	c = int(math.Round((cf - kf) / (1 - kf) * 100))
	m = int(math.Round((mf - kf) / (1 - kf) * 100))
	y = int(math.Round((yf - kf) / (1 - kf) * 100))
	k = int(math.Round(kf * 100))
	return c, m, y, k
}

// CMYKToRGB approximates an RGB preview of process ink percentages.
// CMYK covers a narrower gamut than RGB; this is for on-screen swatches
// only.
func CMYKToRGB(c, m, y, k int) (r, g, b int) {
	r = int(255 * (1 - float64(c)/100) * (1 - float64(k)/100))
	g = int(255 * (1 - float64(m)/100) * (1 - float64(k)/100))
	b = int(255 * (1 - float64(y)/100) * (1 - float64(k)/100))
	return r, g, b
}

// namedColor anchors a human color name in Lab space.
type namedColor struct {
	name string
	c    colorful.Color
}

var referencePalette = []namedColor{
	{"White", colorful.Color{R: 1, G: 1, B: 1}},
	{"Black", colorful.Color{R: 0, G: 0, B: 0}},
	{"Gray", colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	{"Red", colorful.Color{R: 0.85, G: 0.1, B: 0.1}},
	{"Orange/Gold", colorful.Color{R: 0.95, G: 0.6, B: 0.1}},
	{"Yellow", colorful.Color{R: 0.95, G: 0.9, B: 0.1}},
	{"Green", colorful.Color{R: 0.1, G: 0.7, B: 0.2}},
	{"Blue", colorful.Color{R: 0.1, G: 0.25, B: 0.8}},
	{"Purple", colorful.Color{R: 0.55, G: 0.15, B: 0.65}},
}

// ColorName returns the nearest basic color name for an 8-bit RGB
// value, by Lab distance against a small reference palette.
func ColorName(r, g, b int) string {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := referencePalette[0].name
	bestDist := math.Inf(1)
	for _, ref := range referencePalette {
		if d := c.DistanceLab(ref.c); d < bestDist {
			bestDist = d
			best = ref.name
		}
	}
	return best
}

// ShiftRisk reports whether an RGB color is likely to shift visibly
// when reproduced in CMYK: bright saturated colors fall outside the
// process ink gamut, while near-whites reproduce fine.
func ShiftRisk(r, g, b int) bool {
	bright := r > 200 || g > 200 || b > 200
	nearWhite := r > 200 && g > 200 && b > 200
	return bright && !nearWhite
}
