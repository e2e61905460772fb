// Package palette provides piece coloring for rendering. It implements
// HSV-based color assignment per piece kind with optional per-piece jitter.
package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/tangram/internal/piece"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func hsv(h, s, v float64) color.RGBA {
	c := colorful.Hsv(h, clamp(s, 0, 1), clamp(v, 0, 1))
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hues are spread so adjacent catalog kinds contrast; the two small triangles
// and the two large triangles intentionally share a hue family.
var kindColors = map[piece.Kind]color.RGBA{
	piece.SmallTriangleA: hsv(205, 0.75, 0.85),
	piece.SmallTriangleB: hsv(215, 0.70, 0.75),
	piece.MediumTriangle: hsv(145, 0.65, 0.70),
	piece.LargeTriangleA: hsv(10, 0.75, 0.85),
	piece.LargeTriangleB: hsv(25, 0.80, 0.80),
	piece.Square:         hsv(50, 0.85, 0.90),
	piece.Parallelogram:  hsv(285, 0.55, 0.75),
}

// ForKind returns the base color for a piece kind. Unknown kinds get a
// neutral gray rather than a zero value.
func ForKind(k piece.Kind) color.RGBA {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

// Jittered applies a deterministic brightness jitter to a piece's base color,
// seeded per piece so colors are stable frame to frame.
func Jittered(base color.RGBA, seed int64) color.RGBA {
	r := rand.New(rand.NewSource(seed))

	c := colorful.Color{R: float64(base.R) / 255, G: float64(base.G) / 255, B: float64(base.B) / 255}
	h, s, v := c.Hsv()
	v = clamp(v+(r.Float64()-0.5)*0.1, 0, 1)

	jittered := colorful.Hsv(h, s, v)
	red, green, blue := jittered.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: base.A}
}
