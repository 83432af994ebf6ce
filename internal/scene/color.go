package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Hex converts 0xRRGGBB to an opaque color.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	v = strings.TrimPrefix(v, "#")
	v = strings.TrimPrefix(v, "0x")
	if len(v) != 6 {
		return color.RGBA{}, fmt.Errorf("scene: color %q: want 6 hex digits", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("scene: color %q: %w", s, err)
	}
	return Hex(uint32(n)), nil
}

// Linear returns c as normalized floats.
func Linear(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
