package progress

import (
	"math"
	"strings"
)

const (
	// DefaultBarWidth is the number of glyphs in a rendered bar.
	DefaultBarWidth = 14

	glyphFilled = "█"
	glyphEmpty  = "░"
)

// Bar renders percent as width glyphs, floor(percent/100*width) of them
// filled. The filled count is clamped to [0, width], so out-of-range
// percentages still produce a bar of exactly width glyphs. A non-positive
// width yields an empty string.
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if !math.IsNaN(percent) {
		f := math.Floor(percent / 100 * float64(width))
		filled = int(math.Max(0, math.Min(f, float64(width))))
	}
	return strings.Repeat(glyphFilled, filled) + strings.Repeat(glyphEmpty, width-filled)
}
