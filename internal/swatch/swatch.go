// Package swatch paints colors as rounded cards for the "color" format.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/gift"
	"golang.org/x/image/vector"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
)

// Options controls swatch geometry.
type Options struct {
	Size   int     // edge length of the card in pixels
	Radius float32 // corner radius
	Shadow float32 // blur sigma of the drop shadow, 0 disables it
	Gap    int     // spacing between cards in a grid
	Paper  float32 // grain of the paper behind a grid, 0 leaves it transparent
	Seed   int64   // paper noise seed
}

// DefaultOptions returns 96px cards with a soft shadow.
func DefaultOptions() Options {
	return Options{Size: 96, Radius: 12, Shadow: 3, Gap: 8}
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = DefaultOptions().Size
	}
	half := float32(o.Size) / 2
	o.Radius = min(max(o.Radius, 0), half)
	o.Shadow = max(o.Shadow, 0)
	o.Gap = max(o.Gap, 0)
	o.Paper = min(max(o.Paper, 0), 1)
	return o
}

// padding is the margin left around the card for the shadow to fade out.
func (o Options) padding() int {
	if o.Shadow == 0 {
		return 0
	}
	return int(math.Ceil(float64(o.Shadow) * 3))
}

// CellSize returns the side of the canvas Render produces.
func (o Options) CellSize() int {
	o = o.normalized()
	return o.Size + 2*o.padding()
}

// Render paints one color card.
func Render(c colormodel.Color, opts Options) *image.NRGBA {
	opts = opts.normalized()
	pad := opts.padding()
	side := opts.Size + 2*pad
	canvas := image.NewNRGBA(image.Rect(0, 0, side, side))

	if opts.Shadow > 0 {
		shadow := image.NewNRGBA(canvas.Bounds())
		offset := opts.Shadow / 2
		fillRoundedRect(shadow, float32(pad), float32(pad)+offset, float32(opts.Size), opts.Radius,
			color.NRGBA{A: 90})

		g := gift.New(gift.GaussianBlur(opts.Shadow))
		g.Draw(canvas, shadow)
	}

	rgb := c.RGB()
	fillRoundedRect(canvas, float32(pad), float32(pad), float32(opts.Size), opts.Radius,
		color.NRGBA{R: uint8(rgb.R), G: uint8(rgb.G), B: uint8(rgb.B), A: 255})
	return canvas
}

// Grid paints the nine options of a question in reading order, 3 per row.
func Grid(q options.Question, opts Options) *image.NRGBA {
	opts = opts.normalized()
	cell := opts.CellSize()
	side := 3*cell + 2*opts.Gap
	canvas := image.NewNRGBA(image.Rect(0, 0, side, side))
	if opts.Paper > 0 {
		draw.Draw(canvas, canvas.Bounds(), paper(side, side, opts.Paper, opts.Seed), image.Point{}, draw.Src)
	}

	for i, c := range q.Options {
		x := (i % 3) * (cell + opts.Gap)
		y := (i / 3) * (cell + opts.Gap)
		card := Render(c, opts)
		draw.Draw(canvas, card.Bounds().Add(image.Pt(x, y)), card, image.Point{}, draw.Over)
	}
	return canvas
}

func fillRoundedRect(dst draw.Image, x, y, size, r float32, c color.NRGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	x1, y1 := x+size, y+size
	z.MoveTo(x+r, y)
	z.LineTo(x1-r, y)
	z.QuadTo(x1, y, x1, y+r)
	z.LineTo(x1, y1-r)
	z.QuadTo(x1, y1, x1-r, y1)
	z.LineTo(x+r, y1)
	z.QuadTo(x, y1, x, y1-r)
	z.LineTo(x, y+r)
	z.QuadTo(x, y, x+r, y)
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// ParseCompression maps "default", "speed", "best" and "none" to PNG levels.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch s {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	}
	return 0, fmt.Errorf("invalid png compression %q: must be default, speed, best or none", s)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
