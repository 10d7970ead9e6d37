package colormath

import (
	"fmt"
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one dominant color sampled from a raster.
type PaletteEntry struct {
	R, G, B    int
	Hex        string
	C, M, Y, K int
	Name       string
	Proportion float64
}

// mergeDistance is the Lab distance under which two buckets are
// considered the same perceived color.
const mergeDistance = 0.12

// SamplePalette approximates the dominant colors of an image by
// quantizing opaque pixels into coarse RGB buckets, merging universally
// close buckets in Lab space, and returning the top n by pixel share.
// Fully transparent pixels are ignored so the artwork, not the canvas,
// drives the result.
func SamplePalette(img image.Image, n int) []PaletteEntry {
	if img == nil || n <= 0 {
		return nil
	}

	bounds := img.Bounds()
	// 4 bits per channel keeps the bucket space small regardless of
	// image size.
	counts := make(map[uint16]int)
	total := 0

	// Stride large images instead of visiting every pixel.
	step := 1
	if px := bounds.Dx() * bounds.Dy(); px > 500_000 {
		step = 4
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			key := uint16(r>>12)<<8 | uint16(g>>12)<<4 | uint16(b>>12)
			counts[key]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	type bucket struct {
		key   uint16
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, bucket{k, c})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].count > buckets[j].count })

	entries := make([]PaletteEntry, 0, n)
	for _, bk := range buckets {
		r := int(bk.key>>8&0xF) * 17
		g := int(bk.key>>4&0xF) * 17
		b := int(bk.key&0xF) * 17

		// Merge buckets that are perceptually the same color.
		cc := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		merged := false
		for i := range entries {
			e := colorful.Color{
				R: float64(entries[i].R) / 255,
				G: float64(entries[i].G) / 255,
				B: float64(entries[i].B) / 255,
			}
			if cc.DistanceLab(e) < mergeDistance {
				entries[i].Proportion += float64(bk.count) / float64(total)
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		if len(entries) >= n {
			continue
		}

		c, m, y, k := RGBToCMYK(r, g, b)
		entries = append(entries, PaletteEntry{
			R: r, G: g, B: b,
			Hex:        fmt.Sprintf("#%02x%02x%02x", r, g, b),
			C:          c,
			M:          m,
			Y:          y,
			K:          k,
			Name:       ColorName(r, g, b),
			Proportion: float64(bk.count) / float64(total),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Proportion > entries[j].Proportion })
	return entries
}
