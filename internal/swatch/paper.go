package swatch

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

const paperScale = 24.0

// paper fills a w×h canvas with an off-white sheet whose brightness follows
// Perlin noise. grain scales the variation; 1 spans about ±20 levels.
func paper(w, h int, grain float32, seed int64) *image.NRGBA {
	p := perlin.NewPerlin(2.0, 2.0, 3, seed)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := p.Noise2D(float64(x)/paperScale, float64(y)/paperScale)
			v := 236 + float64(grain)*20*n
			v = math.Max(0, math.Min(255, math.Round(v)))
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(v), G: uint8(v), B: uint8(math.Max(0, v-6)), A: 255})
		}
	}
	return img
}
