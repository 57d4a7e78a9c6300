package options

import (
	"errors"
	"testing"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed draws so decoy arithmetic can be checked exactly.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func TestDifficultyRange(t *testing.T) {
	tests := []struct {
		selected, max, want int
	}{
		{1, 10, 260},
		{5, 10, 156},
		{10, 10, 26},
		{1, 5, 255},
		{5, 5, 51},
		{1, 1, 255},
		{1, 2, 256},
	}
	for _, tt := range tests {
		got, err := DifficultyRange(tt.selected, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "DifficultyRange(%d, %d)", tt.selected, tt.max)
	}
}

func TestDifficultyRangeIsStrictlyDecreasing(t *testing.T) {
	for maxDif := 1; maxDif <= 20; maxDif++ {
		prev := -1
		for sel := maxDif; sel >= 1; sel-- {
			r, err := DifficultyRange(sel, maxDif)
			require.NoError(t, err)
			assert.Greater(t, r, prev, "max=%d selected=%d", maxDif, sel)
			assert.LessOrEqual(t, r, MaxRange)
			prev = r
		}
	}
}

func TestDifficultyRangeRejectsInvalid(t *testing.T) {
	for _, args := range [][2]int{{0, 10}, {11, 10}, {1, 0}, {-1, -1}} {
		_, err := DifficultyRange(args[0], args[1])
		assert.True(t, errors.Is(err, ErrOutOfRange), "DifficultyRange(%d, %d)", args[0], args[1])
	}
}

func TestWrapChannel(t *testing.T) {
	assert.Equal(t, 107, WrapChannel(2, -150))
	assert.Equal(t, 157, WrapChannel(2, -100))
	assert.Equal(t, 0, WrapChannel(255, 0))
	assert.Equal(t, 50, WrapChannel(250, 55))
	assert.Equal(t, 0, WrapChannel(0, -255))
	assert.Equal(t, 1, WrapChannel(0, 256))
}

func TestDecoyWrapsAroundLowChannel(t *testing.T) {
	// Heads with U=0 moves a channel of 2 down by 100 and wraps to 157.
	src := &scriptedSource{
		ints:   []int{0, 1, 1},
		floats: []float64{0, 0, 0.5},
	}
	g := NewGenerator(src)

	got := g.Decoy(colormodel.RGB{R: 2, G: 2, B: 250}, 200)

	assert.Equal(t, 157, got.R)
	assert.Equal(t, 12, got.G)
	assert.Equal(t, 50, got.B)
}

func TestDecoyUpperBoundOfTails(t *testing.T) {
	src := &scriptedSource{
		ints:   []int{1, 1, 1},
		floats: []float64{0.9999, 0.9999, 0.9999},
	}
	g := NewGenerator(src)

	got := g.Decoy(colormodel.RGB{R: 2, G: 100, B: 200}, 200)

	assert.Equal(t, colormodel.RGB{R: 102, G: 200, B: 45}, got)
}

func TestGeneratePlacesAnswer(t *testing.T) {
	src := &scriptedSource{ints: []int{4}}
	g := NewGenerator(src)

	q, err := g.Generate(colormodel.RGB{R: 10, G: 20, B: 30}, 100)
	require.NoError(t, err)

	assert.Equal(t, 5, q.CorrectPosition)
	assert.True(t, q.IsCorrect(5))
	assert.False(t, q.IsCorrect(4))

	c, ok := q.Option(5)
	require.True(t, ok)
	assert.Equal(t, q.Answer, c)
	assert.Equal(t, "#0a141e", c.HexString())

	_, ok = q.Option(0)
	assert.False(t, ok)
	_, ok = q.Option(10)
	assert.False(t, ok)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	g := NewGenerator(NewSource(1))

	_, err := g.Generate(colormodel.RGB{}, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = g.Generate(colormodel.RGB{}, MaxRange+1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = g.Generate(colormodel.RGB{R: 256}, 100)
	assert.ErrorIs(t, err, colormodel.ErrOutOfRange)
}

func TestGenerateInvariants(t *testing.T) {
	g := NewGenerator(NewSource(42))
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		q, err := g.Next(260)
		require.NoError(t, err)

		require.GreaterOrEqual(t, q.CorrectPosition, 1)
		require.LessOrEqual(t, q.CorrectPosition, Slots)
		seen[q.CorrectPosition] = true

		for _, v := range q.Answer.RGB().Channels() {
			require.GreaterOrEqual(t, v, 0)
			require.LessOrEqual(t, v, 255)
		}

		for pos := 1; pos <= Slots; pos++ {
			c, _ := q.Option(pos)
			if pos == q.CorrectPosition {
				require.Equal(t, q.Answer, c)
				continue
			}
			// A range of 260 never yields a zero delta, so every channel moves.
			for ch, v := range c.RGB().Channels() {
				require.GreaterOrEqual(t, v, 0)
				require.Less(t, v, 255)
				require.NotEqual(t, q.Answer.RGB().Channels()[ch], v)
			}
		}

		assert.Greater(t, q.Spread().Min, 0.0)
	}

	assert.Len(t, seen, Slots, "every position should be drawn in 1000 questions")
}

func TestZeroRangeDecoysMatchAnswer(t *testing.T) {
	g := NewGenerator(NewSource(7))

	q, err := g.Generate(colormodel.RGB{R: 1, G: 2, B: 3}, 0)
	require.NoError(t, err)

	for _, c := range q.Options {
		assert.Equal(t, q.Answer, c)
	}
	assert.InDelta(t, 0, q.Spread().Max, 1e-9)
}

func TestSameSeedSameQuestions(t *testing.T) {
	a := NewGenerator(NewSource(99))
	b := NewGenerator(NewSource(99))

	for i := 0; i < 20; i++ {
		qa, err := a.Next(130)
		require.NoError(t, err)
		qb, err := b.Next(130)
		require.NoError(t, err)
		assert.Equal(t, qa, qb)
	}
}
