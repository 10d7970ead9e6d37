package summarizer

import (
	"fmt"
	"strings"

	"github.com/user/artproof/pkg/colormath"
)

// MarkdownFormatter renders a Summary as a markdown report for the
// order record.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the summary.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Preview Summary\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	b.WriteString("## Input\n\n")
	b.WriteString(fmt.Sprintf("- File: %s\n", summary.Input.Path))
	b.WriteString(fmt.Sprintf("- Type: %s\n\n", summary.Input.FileType))

	b.WriteString("## Preview\n\n")
	b.WriteString(fmt.Sprintf("- Output: %s\n", summary.Preview.Path))
	b.WriteString(fmt.Sprintf("- Dimensions: %dx%d px\n", summary.Preview.Width, summary.Preview.Height))
	b.WriteString(fmt.Sprintf("- Brightness: %.1f / 255\n", summary.Preview.Brightness))
	b.WriteString(fmt.Sprintf("- Background: %s\n", summary.Preview.Background))
	b.WriteString(fmt.Sprintf("- File size: %s\n", formatBytes(summary.Preview.FileSize)))
	if summary.Preview.Backend != "" {
		b.WriteString(fmt.Sprintf("- Rendered by: %s\n", summary.Preview.Backend))
	}
	b.WriteString("\n")

	if summary.Physical != nil {
		b.WriteString("## Physical Size\n\n")
		b.WriteString(fmt.Sprintf("- %.2f x %.2f in at %d DPI\n\n",
			summary.Physical.WidthInches, summary.Physical.HeightInches, summary.Physical.DPI))
	}

	if summary.Colors != nil {
		b.WriteString("## Declared Colors\n\n")
		if len(summary.Colors.Pantone) > 0 {
			b.WriteString(fmt.Sprintf("- Pantone: %s\n", strings.Join(summary.Colors.Pantone, ", ")))
		}
		for _, c := range summary.Colors.CMYK {
			b.WriteString(fmt.Sprintf("- CMYK: %d/%d/%d/%d\n", c.C, c.M, c.Y, c.K))
		}
		for _, c := range summary.Colors.RGB {
			if colormath.ShiftRisk(c.R, c.G, c.B) {
				b.WriteString(fmt.Sprintf("- RGB: %d,%d,%d (may shift in print)\n", c.R, c.G, c.B))
			} else {
				b.WriteString(fmt.Sprintf("- RGB: %d,%d,%d\n", c.R, c.G, c.B))
			}
		}
		for _, g := range summary.Colors.Grayscale {
			b.WriteString(fmt.Sprintf("- Gray: %d%%\n", g))
		}
		if len(summary.Colors.SpotOther) > 0 {
			b.WriteString(fmt.Sprintf("- Other spot: %s\n", strings.Join(summary.Colors.SpotOther, ", ")))
		}
		b.WriteString("\n")
	} else if len(summary.Sampled) > 0 {
		b.WriteString("## Sampled Colors\n\n")
		b.WriteString("No declared colors were found; these are dominant colors sampled from the rendered preview.\n\n")
		for _, c := range summary.Sampled {
			b.WriteString(fmt.Sprintf("- %s %s (%.0f%%) CMYK %d/%d/%d/%d\n",
				c.Hex, c.Name, c.Proportion*100, c.C, c.M, c.Y, c.K))
		}
		b.WriteString("\n")
	}

	if summary.Stitch != nil {
		b.WriteString("## Stitch Data\n\n")
		b.WriteString(fmt.Sprintf("- Stitches: %d\n", summary.Stitch.StitchCount))
		b.WriteString(fmt.Sprintf("- Thread changes: %d\n", summary.Stitch.ThreadChanges))
		b.WriteString(fmt.Sprintf("- Design size: %.1f x %.1f mm\n\n", summary.Stitch.WidthMM, summary.Stitch.HeightMM))
	}

	if summary.PDF != nil {
		b.WriteString("## Companion PDF\n\n")
		b.WriteString(fmt.Sprintf("- %s (%s)\n\n", summary.PDF.Path, formatBytes(summary.PDF.FileSize)))
	}

	return b.String()
}

var _ Formatter = (*MarkdownFormatter)(nil)

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
