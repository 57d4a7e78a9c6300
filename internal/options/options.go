// Package options builds quiz questions: one true color hidden among eight
// decoys whose channels stray from it by a difficulty-controlled margin.
package options

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
)

const (
	// Slots is the number of options in a question.
	Slots = 9
	// MaxRange is the largest accepted difficulty range.
	MaxRange = 2 * 255
)

// ErrOutOfRange is returned for difficulty values outside their domain.
var ErrOutOfRange = errors.New("difficulty out of range")

// Source supplies the randomness for question generation.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a deterministic PCG-backed source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DifficultyRange returns how far decoy channels may stray from the true
// value: (1 + max - selected) * round(255 / max). Lower difficulty gives a
// larger range and easier questions.
func DifficultyRange(selected, maxDifficulty int) (int, error) {
	if maxDifficulty < 1 {
		return 0, fmt.Errorf("%w: max difficulty %d must be at least 1", ErrOutOfRange, maxDifficulty)
	}
	if selected < 1 || selected > maxDifficulty {
		return 0, fmt.Errorf("%w: difficulty %d not in [1, %d]", ErrOutOfRange, selected, maxDifficulty)
	}
	step := int(math.Round(255 / float64(maxDifficulty)))
	return (1 + maxDifficulty - selected) * step, nil
}

// WrapChannel applies delta to a channel value, wrapping cyclically modulo
// 255 instead of clamping. delta must not be below -255-v.
func WrapChannel(v, delta int) int {
	r := v + delta
	if r < 0 {
		r += 255
	}
	return r % 255
}

// Question is a true color placed at CorrectPosition among nine options.
type Question struct {
	Answer          colormodel.Color
	CorrectPosition int
	Options         [Slots]colormodel.Color
}

// Option returns the color at a 1-based position.
func (q Question) Option(pos int) (colormodel.Color, bool) {
	if pos < 1 || pos > Slots {
		return colormodel.Color{}, false
	}
	return q.Options[pos-1], true
}

// IsCorrect reports whether pos is the position of the true color.
func (q Question) IsCorrect(pos int) bool {
	return pos == q.CorrectPosition
}

// Spread summarizes how far the decoys are from the answer (CIEDE2000).
type Spread struct {
	Min  float64
	Mean float64
	Max  float64
}

// Spread measures the perceptual distance of every decoy from the answer.
func (q Question) Spread() Spread {
	var s Spread
	n := 0
	for i, c := range q.Options {
		if i+1 == q.CorrectPosition {
			continue
		}
		d := q.Answer.Distance(c)
		if n == 0 || d < s.Min {
			s.Min = d
		}
		s.Max = max(s.Max, d)
		s.Mean += d
		n++
	}
	if n > 0 {
		s.Mean /= float64(n)
	}
	return s
}

// Generator produces questions from an injected Source. It is not safe for
// concurrent use unless the Source is.
type Generator struct {
	src Source
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// RandomRGB draws a true color with each channel round(U * 255).
func (g *Generator) RandomRGB() colormodel.RGB {
	return colormodel.RGB{R: g.channel(), G: g.channel(), B: g.channel()}
}

func (g *Generator) channel() int {
	return int(math.Round(g.src.Float64() * 255))
}

// Decoy derives one wrong answer from the true value. Every channel gets its
// own coin flip: heads moves it down by between 10% and 100% of half the
// range, tails moves it up by the same amount.
func (g *Generator) Decoy(v colormodel.RGB, difRange int) colormodel.RGB {
	return colormodel.RGB{
		R: g.decoyChannel(v.R, difRange),
		G: g.decoyChannel(v.G, difRange),
		B: g.decoyChannel(v.B, difRange),
	}
}

func (g *Generator) decoyChannel(v, difRange int) int {
	half := float64(difRange) / 2
	heads := g.src.IntN(2) == 0
	jitter := int(math.Round(0.9 * half * g.src.Float64()))

	if heads {
		return WrapChannel(v, -int(math.Round(half))+jitter)
	}
	return WrapChannel(v, int(math.Round(0.1*half))+jitter)
}

// Generate hides the true color at a uniformly drawn position and fills the
// other eight slots with independent decoys.
func (g *Generator) Generate(v colormodel.RGB, difRange int) (Question, error) {
	if difRange < 0 || difRange > MaxRange {
		return Question{}, fmt.Errorf("%w: range %d not in [0, %d]", ErrOutOfRange, difRange, MaxRange)
	}
	answer, err := colormodel.FromRGBValue(v)
	if err != nil {
		return Question{}, err
	}

	q := Question{
		Answer:          answer,
		CorrectPosition: g.src.IntN(Slots) + 1,
	}
	for i := range q.Options {
		if i+1 == q.CorrectPosition {
			q.Options[i] = answer
			continue
		}
		// Decoy channels are in [0, 255) so construction cannot fail.
		decoy, err := colormodel.FromRGBValue(g.Decoy(v, difRange))
		if err != nil {
			return Question{}, err
		}
		q.Options[i] = decoy
	}
	return q, nil
}

// Next draws a fresh true color and builds a question around it.
func (g *Generator) Next(difRange int) (Question, error) {
	return g.Generate(g.RandomRGB(), difRange)
}
