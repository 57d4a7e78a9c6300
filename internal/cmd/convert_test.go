package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertColors_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convertColors(&buf, []string{"#0cc863", "rgb(255, 0, 0)"}, false))

	out := buf.String()
	assert.Contains(t, out, "INPUT")
	assert.Contains(t, out, "#0cc863")
	assert.Contains(t, out, "rgb(12, 200, 99)")
	assert.Contains(t, out, "hsl(148, 89%, 42%)")
	assert.Contains(t, out, "#ff0000")
	assert.Contains(t, out, "hsl(0, 100%, 50%)")
}

func TestConvertColors_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, convertColors(&buf, []string{"fff"}, true))

	var got []colorRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, colorRecord{Hex: "#ffffff", RGB: "rgb(255, 255, 255)", HSL: "hsl(0, 0%, 100%)"}, got[0])
}

func TestConvertColors_RejectsBadInput(t *testing.T) {
	tests := []string{"#12345", "rgb(256, 0, 0)", "hsl(360, 0%, 0%)", "banana"}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			var buf bytes.Buffer
			err := convertColors(&buf, []string{in}, false)
			require.Error(t, err)
			assert.True(t,
				errors.Is(err, colormodel.ErrMalformedInput) || errors.Is(err, colormodel.ErrOutOfRange),
				"unexpected error: %v", err)
			assert.Empty(t, buf.String())
		})
	}
}
