// Package scores persists finished games in a SQLite database.
package scores

import (
	"time"

	"github.com/MeKo-Tech/huequiz/internal/quiz"
)

// Result is one finished (or abandoned) game.
type Result struct {
	PlayedAt      time.Time
	Player        string
	Mode          quiz.Mode
	Given         string
	Guess         string
	ID            int64
	Elapsed       time.Duration
	Difficulty    int
	MaxDifficulty int
	Right         int
	Wrong         int
	Answered      int
}

// Accuracy returns the share of right answers in [0, 1].
func (r Result) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Right) / float64(r.Answered)
}

// FromSession captures the current state of a game.
func FromSession(player string, s *quiz.Session, at time.Time) Result {
	settings := s.Settings()
	score := s.Score()
	return Result{
		PlayedAt:      at,
		Player:        player,
		Mode:          settings.Mode,
		Given:         string(settings.Given),
		Guess:         string(settings.Guess),
		Elapsed:       s.Elapsed(),
		Difficulty:    settings.Difficulty,
		MaxDifficulty: settings.MaxDifficulty,
		Right:         score.Right,
		Wrong:         score.Wrong,
		Answered:      score.Answered,
	}
}
