package colormodel

import (
	"fmt"
	"math"
	"strconv"
)

// RGBToHex converts validated channels to two zero-padded lowercase digits each.
func RGBToHex(c RGB) Hex {
	return Hex(fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B))
}

// HexToRGB parses a hex string (see ParseHex) and decodes its channels.
func HexToRGB(s string) (RGB, error) {
	h, err := ParseHex(s)
	if err != nil {
		return RGB{}, err
	}
	return h.RGB(), nil
}

// RGB decodes the channels of a hex value produced by ParseHex or RGBToHex.
func (h Hex) RGB() RGB {
	return RGB{R: hexByte(h, 0), G: hexByte(h, 2), B: hexByte(h, 4)}
}

func hexByte(h Hex, i int) int {
	if len(h) < i+2 {
		return 0
	}
	v, err := strconv.ParseUint(string(h[i:i+2]), 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

// RGBToHSL derives hue, saturation and lightness, each rounded to the nearest
// integer. A hue that rounds up to 360 is reported as 0.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	minv, maxv := min(r, g, b), max(r, g, b)
	lum := (minv + maxv) / 2

	out := HSL{L: roundInt(lum * 100)}
	if minv == maxv {
		return out
	}

	delta := maxv - minv
	if lum < 0.5 {
		out.S = roundInt(delta / (maxv + minv) * 100)
	} else {
		out.S = roundInt(delta / (2 - (maxv + minv)) * 100)
	}

	var h float64
	switch maxv {
	case r:
		h = (g - b) / delta
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	out.H = roundInt(h) % 360
	return out
}

// HSLToRGB converts a validated HSL triple back to channels.
func HSLToRGB(c HSL) RGB {
	h := float64(c.H) / 360
	s := float64(c.S) / 100
	l := float64(c.L) / 100

	if s == 0 {
		v := roundInt(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var t1 float64
	if l < 0.5 {
		t1 = l * (1 + s)
	} else {
		t1 = l + s - l*s
	}
	t2 := 2*l - t1

	return RGB{
		R: hueChannel(t1, t2, h+1.0/3),
		G: hueChannel(t1, t2, h),
		B: hueChannel(t1, t2, h-1.0/3),
	}
}

// hueChannel blends t1 and t2 for one channel at hue position v (in turns).
func hueChannel(t1, t2, v float64) int {
	if v < 0 {
		v++
	}
	v = math.Mod(v, 1)

	switch {
	case 6*v < 1:
		v = t2 + (t1-t2)*6*v
	case 2*v < 1:
		v = t1
	case 3*v < 2:
		v = t2 + (t1-t2)*6*(2.0/3-v)
	default:
		v = t2
	}
	return roundInt(v * 255)
}

// HexToHSL is HexToRGB followed by RGBToHSL.
func HexToHSL(s string) (HSL, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HSLToHex is HSLToRGB followed by RGBToHex.
func HSLToHex(c HSL) Hex {
	return RGBToHex(HSLToRGB(c))
}

// roundInt rounds half away from zero.
func roundInt(x float64) int {
	return int(math.Round(x))
}
