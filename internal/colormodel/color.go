// Package colormodel converts colors between the RGB, HSL and hex representations
// used by the quiz and renders each of them as a canonical display string.
package colormodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrMalformedInput is returned when a color string cannot be parsed.
	ErrMalformedInput = errors.New("malformed color input")
	// ErrOutOfRange is returned when a component lies outside its domain.
	ErrOutOfRange = errors.New("color component out of range")
)

// RGB holds three channels in [0, 255].
type RGB struct {
	R, G, B int
}

// String returns the canonical form "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Validate reports ErrOutOfRange if any channel is outside [0, 255].
func (c RGB) Validate() error {
	for _, v := range [3]int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: rgb channel %d not in [0, 255]", ErrOutOfRange, v)
		}
	}
	return nil
}

// Channels returns the channels as an array, in R, G, B order.
func (c RGB) Channels() [3]int {
	return [3]int{c.R, c.G, c.B}
}

// HSL holds a hue in degrees [0, 360) and saturation/lightness in percent [0, 100].
type HSL struct {
	H, S, L int
}

// String returns the canonical form "hsl(h, s%, l%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Validate reports ErrOutOfRange if any component is outside its domain.
func (c HSL) Validate() error {
	if c.H < 0 || c.H >= 360 {
		return fmt.Errorf("%w: hue %d not in [0, 360)", ErrOutOfRange, c.H)
	}
	if c.S < 0 || c.S > 100 {
		return fmt.Errorf("%w: saturation %d not in [0, 100]", ErrOutOfRange, c.S)
	}
	if c.L < 0 || c.L > 100 {
		return fmt.Errorf("%w: lightness %d not in [0, 100]", ErrOutOfRange, c.L)
	}
	return nil
}

// Hex is six lowercase hexadecimal digits without the leading '#'.
type Hex string

// String returns the canonical form "#rrggbb".
func (h Hex) String() string {
	return "#" + string(h)
}

// Color is an immutable color carrying all three representations.
// The zero value is black.
type Color struct {
	rgb RGB
	hsl HSL
	hex Hex
}

// FromRGB builds a Color from three channels.
func FromRGB(r, g, b int) (Color, error) {
	return FromRGBValue(RGB{R: r, G: g, B: b})
}

// FromRGBValue builds a Color from an RGB triple.
func FromRGBValue(c RGB) (Color, error) {
	if err := c.Validate(); err != nil {
		return Color{}, err
	}
	return newColor(c), nil
}

// FromHex builds a Color from a hex string in any of the accepted forms.
func FromHex(s string) (Color, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return Color{}, err
	}
	return newColor(rgb), nil
}

// FromHSL builds a Color from an "hsl(h, s%, l%)" string.
func FromHSL(s string) (Color, error) {
	hsl, err := ParseHSL(s)
	if err != nil {
		return Color{}, err
	}
	return FromHSLValue(hsl)
}

// FromHSLValue builds a Color from an HSL triple. The stored HSL is derived
// back from the resulting RGB, so it may differ from the input by rounding.
func FromHSLValue(c HSL) (Color, error) {
	if err := c.Validate(); err != nil {
		return Color{}, err
	}
	return newColor(HSLToRGB(c)), nil
}

// Parse builds a Color from any canonical string: rgb(...), hsl(...) or hex.
func Parse(s string) (Color, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(t, "rgb("):
		rgb, err := ParseRGB(t)
		if err != nil {
			return Color{}, err
		}
		return FromRGBValue(rgb)
	case strings.HasPrefix(t, "hsl("):
		return FromHSL(t)
	default:
		return FromHex(t)
	}
}

func newColor(c RGB) Color {
	return Color{rgb: c, hsl: RGBToHSL(c), hex: RGBToHex(c)}
}

func (c Color) RGB() RGB { return c.rgb }
func (c Color) HSL() HSL { return c.hsl }
func (c Color) Hex() Hex { return c.hex }

// RGBString returns "rgb(r, g, b)".
func (c Color) RGBString() string { return c.rgb.String() }

// HSLString returns "hsl(h, s%, l%)".
func (c Color) HSLString() string { return c.hsl.String() }

// HexString returns "#rrggbb".
func (c Color) HexString() string { return c.hex.String() }

// String returns the hex form.
func (c Color) String() string { return c.HexString() }

// Display returns the canonical string for the given format. Swatches are
// painted from the hex form, so FormatSwatch displays as hex.
func (c Color) Display(f Format) string {
	switch f {
	case FormatRGB:
		return c.RGBString()
	case FormatHSL:
		return c.HSLString()
	default:
		return c.HexString()
	}
}

// Distance returns the CIEDE2000 perceptual distance between two colors.
func (c Color) Distance(other Color) float64 {
	return toColorful(c.rgb).DistanceCIEDE2000(toColorful(other.rgb))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Format names a representation a color can be shown in.
type Format string

const (
	FormatHex    Format = "hex"
	FormatRGB    Format = "rgb"
	FormatHSL    Format = "hsl"
	FormatSwatch Format = "color"
)

// ParseFormat accepts "hex", "rgb", "hsl" and "color" (or "swatch").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex":
		return FormatHex, nil
	case "rgb":
		return FormatRGB, nil
	case "hsl":
		return FormatHSL, nil
	case "color", "swatch":
		return FormatSwatch, nil
	}
	return "", fmt.Errorf("%w: unknown color format %q", ErrMalformedInput, s)
}
