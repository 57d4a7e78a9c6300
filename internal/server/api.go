package server

import (
	"time"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/quiz"
	"github.com/MeKo-Tech/huequiz/internal/scores"
)

type createSessionRequest struct {
	Player           string `json:"player"`
	Mode             string `json:"mode"`
	Given            string `json:"given"`
	Guess            string `json:"guess"`
	Difficulty       int    `json:"difficulty"`
	MaxDifficulty    int    `json:"max_difficulty"`
	Questions        int    `json:"questions"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
}

// settings overlays the request onto the defaults; zero fields keep the default.
func (r createSessionRequest) settings() (quiz.Settings, error) {
	s := quiz.DefaultSettings()

	if r.Mode != "" {
		m, err := quiz.ParseMode(r.Mode)
		if err != nil {
			return s, err
		}
		s.Mode = m
	}
	if r.Given != "" {
		f, err := colormodel.ParseFormat(r.Given)
		if err != nil {
			return s, err
		}
		s.Given = f
	}
	if r.Guess != "" {
		f, err := colormodel.ParseFormat(r.Guess)
		if err != nil {
			return s, err
		}
		s.Guess = f
	}
	if r.MaxDifficulty != 0 {
		s.MaxDifficulty = r.MaxDifficulty
	}
	if r.Difficulty != 0 {
		s.Difficulty = r.Difficulty
	}
	if r.Questions != 0 {
		s.Questions = r.Questions
	}
	if r.TimeLimitSeconds != 0 {
		s.TimeLimit = time.Duration(r.TimeLimitSeconds) * time.Second
	}
	return s, nil
}

type answerRequest struct {
	Position int `json:"position"`
}

type scoreJSON struct {
	Right    int `json:"right"`
	Wrong    int `json:"wrong"`
	Answered int `json:"answered"`
}

type questionJSON struct {
	Number      int       `json:"number"`
	Total       int       `json:"total"`
	Given       string    `json:"given"`
	GivenFormat string    `json:"given_format"`
	GuessFormat string    `json:"guess_format"`
	Options     [9]string `json:"options"`
}

type sessionJSON struct {
	ID          string        `json:"id"`
	Player      string        `json:"player,omitempty"`
	Mode        string        `json:"mode"`
	Difficulty  int           `json:"difficulty"`
	Over        bool          `json:"over"`
	Score       scoreJSON     `json:"score"`
	Question    *questionJSON `json:"question,omitempty"`
	ElapsedMS   int64         `json:"elapsed_ms"`
	RemainingMS int64         `json:"remaining_ms,omitempty"`
	Summary     string        `json:"summary,omitempty"`
}

type answerJSON struct {
	Chosen          int         `json:"chosen"`
	CorrectPosition int         `json:"correct_position"`
	Correct         bool        `json:"correct"`
	Session         sessionJSON `json:"session"`
}

type colorJSON struct {
	Hex      string         `json:"hex"`
	RGB      string         `json:"rgb"`
	HSL      string         `json:"hsl"`
	R        int            `json:"r"`
	G        int            `json:"g"`
	B        int            `json:"b"`
	HSLValue map[string]int `json:"hsl_value"`
}

func newColorJSON(c colormodel.Color) colorJSON {
	rgb, hsl := c.RGB(), c.HSL()
	return colorJSON{
		Hex:      c.HexString(),
		RGB:      c.RGBString(),
		HSL:      c.HSLString(),
		R:        rgb.R,
		G:        rgb.G,
		B:        rgb.B,
		HSLValue: map[string]int{"h": hsl.H, "s": hsl.S, "l": hsl.L},
	}
}

type resultJSON struct {
	ID         int64   `json:"id"`
	PlayedAt   string  `json:"played_at"`
	Player     string  `json:"player"`
	Mode       string  `json:"mode"`
	Given      string  `json:"given"`
	Guess      string  `json:"guess"`
	Difficulty int     `json:"difficulty"`
	Right      int     `json:"right"`
	Wrong      int     `json:"wrong"`
	Answered   int     `json:"answered"`
	ElapsedMS  int64   `json:"elapsed_ms"`
	Accuracy   float64 `json:"accuracy"`
}

func newResultJSON(r scores.Result) resultJSON {
	return resultJSON{
		ID:         r.ID,
		PlayedAt:   r.PlayedAt.UTC().Format(time.RFC3339),
		Player:     r.Player,
		Mode:       string(r.Mode),
		Given:      r.Given,
		Guess:      r.Guess,
		Difficulty: r.Difficulty,
		Right:      r.Right,
		Wrong:      r.Wrong,
		Answered:   r.Answered,
		ElapsedMS:  r.Elapsed.Milliseconds(),
		Accuracy:   r.Accuracy(),
	}
}

// Status reports server activity.
type Status struct {
	ActiveSessions int   `json:"active_sessions"`
	GamesStarted   int64 `json:"games_started"`
	GamesFinished  int64 `json:"games_finished"`
	ScoresEnabled  bool  `json:"scores_enabled"`
}
