// Package quiz holds the state of one game: the mode, the running score and
// the question currently on the board.
package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
)

// Mode selects how a game ends.
type Mode string

const (
	// ModeTimed ends after a fixed number of questions and reports the time taken.
	ModeTimed Mode = "timed"
	// ModeSpeed ends when the countdown runs out.
	ModeSpeed Mode = "speed"
	// ModeZen ends after a fixed number of questions, with no clock.
	ModeZen Mode = "zen"
	// ModeEndless never ends on its own.
	ModeEndless Mode = "endless"
)

// DefaultTimeLimit applies to speed games configured with a zero limit.
const DefaultTimeLimit = time.Minute

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid quiz settings")

// ParseMode accepts the four mode names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTimed, ModeSpeed, ModeZen, ModeEndless:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s)
}

// Counted reports whether the mode stops after a fixed number of questions.
func (m Mode) Counted() bool {
	return m == ModeTimed || m == ModeZen
}

// Settings configures a game.
type Settings struct {
	Mode          Mode
	Given         colormodel.Format
	Guess         colormodel.Format
	Difficulty    int
	MaxDifficulty int
	Questions     int
	TimeLimit     time.Duration
}

// DefaultSettings returns a ten-question zen game matching hex codes to swatches.
func DefaultSettings() Settings {
	return Settings{
		Mode:          ModeZen,
		Given:         colormodel.FormatHex,
		Guess:         colormodel.FormatSwatch,
		Difficulty:    5,
		MaxDifficulty: 10,
		Questions:     10,
		TimeLimit:     DefaultTimeLimit,
	}
}

// Validate checks the settings and returns a copy with defaults applied.
func (s Settings) Validate() (Settings, error) {
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return s, err
	}
	if _, err := colormodel.ParseFormat(string(s.Given)); err != nil {
		return s, fmt.Errorf("%w: given: %v", ErrInvalidSettings, err)
	}
	if _, err := colormodel.ParseFormat(string(s.Guess)); err != nil {
		return s, fmt.Errorf("%w: guess: %v", ErrInvalidSettings, err)
	}
	if s.MaxDifficulty < 1 {
		return s, fmt.Errorf("%w: max difficulty must be at least 1", ErrInvalidSettings)
	}
	if s.Difficulty < 1 || s.Difficulty > s.MaxDifficulty {
		return s, fmt.Errorf("%w: difficulty %d not in [1, %d]", ErrInvalidSettings, s.Difficulty, s.MaxDifficulty)
	}
	if s.Mode.Counted() && s.Questions < 1 {
		return s, fmt.Errorf("%w: %s mode needs at least one question", ErrInvalidSettings, s.Mode)
	}
	if s.TimeLimit < 0 {
		return s, fmt.Errorf("%w: negative time limit", ErrInvalidSettings)
	}
	if s.Mode == ModeSpeed && s.TimeLimit == 0 {
		s.TimeLimit = DefaultTimeLimit
	}
	return s, nil
}
