package colormodel

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHex normalizes a hex color. The leading '#' is optional and digits are
// case-insensitive. One digit is repeated six times ("a" -> "aaaaaa"), three
// digits are doubled ("f0c" -> "ff00cc"), six digits are taken as-is. Any other
// length is rejected.
func ParseHex(s string) (Hex, error) {
	t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))

	switch len(t) {
	case 1:
		t = strings.Repeat(t, 6)
	case 3:
		t = string([]byte{t[0], t[0], t[1], t[1], t[2], t[2]})
	case 6:
	default:
		return "", fmt.Errorf("%w: hex %q must have 1, 3 or 6 digits", ErrMalformedInput, s)
	}

	for i := 0; i < len(t); i++ {
		if !isHexDigit(t[i]) {
			return "", fmt.Errorf("%w: hex %q contains %q", ErrMalformedInput, s, t[i])
		}
	}
	return Hex(t), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// ParseRGB parses "rgb(r, g, b)" and validates the channel range.
func ParseRGB(s string) (RGB, error) {
	parts, err := splitFunc(s, "rgb")
	if err != nil {
		return RGB{}, err
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: rgb component %q", ErrMalformedInput, p)
		}
		v[i] = n
	}

	c := RGB{R: v[0], G: v[1], B: v[2]}
	if err := c.Validate(); err != nil {
		return RGB{}, err
	}
	return c, nil
}

// ParseHSL parses "hsl(h, s%, l%)". The percent signs are optional.
func ParseHSL(s string) (HSL, error) {
	parts, err := splitFunc(s, "hsl")
	if err != nil {
		return HSL{}, err
	}

	var v [3]int
	for i, p := range parts {
		if i > 0 {
			p = strings.TrimSpace(strings.TrimSuffix(p, "%"))
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: hsl component %q", ErrMalformedInput, parts[i])
		}
		v[i] = n
	}

	c := HSL{H: v[0], S: v[1], L: v[2]}
	if err := c.Validate(); err != nil {
		return HSL{}, err
	}
	return c, nil
}

// splitFunc splits "name(a, b, c)" into its three trimmed arguments.
func splitFunc(s, name string) ([3]string, error) {
	var out [3]string

	t := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(t, name+"(") || !strings.HasSuffix(t, ")") {
		return out, fmt.Errorf("%w: expected %s(...), got %q", ErrMalformedInput, name, s)
	}

	args := strings.Split(t[len(name)+1:len(t)-1], ",")
	if len(args) != 3 {
		return out, fmt.Errorf("%w: %s needs 3 components, got %d", ErrMalformedInput, name, len(args))
	}
	for i, a := range args {
		out[i] = strings.TrimSpace(a)
	}
	return out, nil
}
