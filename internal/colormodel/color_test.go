package colormodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRGB(t *testing.T) {
	c, err := FromRGB(255, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, RGB{255, 0, 0}, c.RGB())
	assert.Equal(t, HSL{0, 100, 50}, c.HSL())
	assert.Equal(t, Hex("ff0000"), c.Hex())
	assert.Equal(t, "rgb(255, 0, 0)", c.RGBString())
	assert.Equal(t, "hsl(0, 100%, 50%)", c.HSLString())
	assert.Equal(t, "#ff0000", c.HexString())
	assert.Equal(t, "#ff0000", c.String())
}

func TestFromRGBRejectsOutOfRange(t *testing.T) {
	_, err := FromRGB(0, 256, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = FromRGB(-1, 0, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestFromHexAndHSLAgree(t *testing.T) {
	a, err := FromHex("#F00")
	require.NoError(t, err)
	b, err := FromHSL("hsl(0, 100%, 50%)")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFromHSLValueStoresDerivedHSL(t *testing.T) {
	c, err := FromHSLValue(HSL{181, 98, 45})
	require.NoError(t, err)

	assert.Equal(t, RGB{2, 223, 227}, c.RGB())
	// The stored HSL is recomputed from the rounded channels.
	assert.Equal(t, RGBToHSL(c.RGB()), c.HSL())
}

func TestParse(t *testing.T) {
	for _, s := range []string{"#0cc863", "0CC863", "rgb(12, 200, 99)", " RGB(12,200,99) "} {
		c, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, RGB{12, 200, 99}, c.RGB(), s)
	}

	c, err := Parse("hsl(120, 100%, 25%)")
	require.NoError(t, err)
	assert.Equal(t, "#008000", c.HexString())

	_, err = Parse("rgb(300, 0, 0)")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Parse("not a color")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestDisplay(t *testing.T) {
	c, err := FromRGB(12, 200, 99)
	require.NoError(t, err)

	assert.Equal(t, "#0cc863", c.Display(FormatHex))
	assert.Equal(t, "rgb(12, 200, 99)", c.Display(FormatRGB))
	assert.Equal(t, "hsl(148, 89%, 42%)", c.Display(FormatHSL))
	assert.Equal(t, "#0cc863", c.Display(FormatSwatch))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"hex":    FormatHex,
		"RGB":    FormatRGB,
		"hsl":    FormatHSL,
		"color":  FormatSwatch,
		"swatch": FormatSwatch,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("cmyk")
	assert.Error(t, err)
}

func TestDistance(t *testing.T) {
	black, err := FromRGB(0, 0, 0)
	require.NoError(t, err)
	white, err := FromRGB(255, 255, 255)
	require.NoError(t, err)
	nearBlack, err := FromRGB(3, 3, 3)
	require.NoError(t, err)

	assert.InDelta(t, 0, black.Distance(black), 1e-9)
	assert.Greater(t, black.Distance(white), 0.5)
	assert.Less(t, black.Distance(nearBlack), black.Distance(white))
}
