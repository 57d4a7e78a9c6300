package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
)

var (
	ErrNotStarted      = errors.New("game has not started")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPosition = errors.New("option position out of range")
)

// QuestionSource produces the next question for a difficulty range.
// *options.Generator satisfies it.
type QuestionSource interface {
	Next(difRange int) (options.Question, error)
}

// Score is the running tally of a game.
type Score struct {
	Right    int
	Wrong    int
	Answered int
}

// View is what the player sees for the current question.
type View struct {
	Number  int
	Total   int // 0 when the game has no question limit
	Given   string
	Options [options.Slots]string
}

// AnswerResult reports the outcome of one answer.
type AnswerResult struct {
	Chosen          int
	CorrectPosition int
	Correct         bool
	Over            bool
}

// Session is one game. It is not safe for concurrent use.
type Session struct {
	settings   Settings
	source     QuestionSource
	now        func() time.Time
	difRange   int
	started    bool
	over       bool
	startedAt  time.Time
	finishedAt time.Time
	score      Score
	current    options.Question
}

// New validates settings and prepares a session. now defaults to time.Now.
func New(settings Settings, source QuestionSource, now func() time.Time) (*Session, error) {
	settings, err := settings.Validate()
	if err != nil {
		return nil, err
	}
	difRange, err := options.DifficultyRange(settings.Difficulty, settings.MaxDifficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Session{
		settings: settings,
		source:   source,
		now:      now,
		difRange: difRange,
	}, nil
}

// Settings returns the validated settings.
func (s *Session) Settings() Settings { return s.settings }

// DifficultyRange returns the range used for the next question.
func (s *Session) DifficultyRange() int { return s.difRange }

// SetDifficulty changes the difficulty from the next question on.
func (s *Session) SetDifficulty(selected int) error {
	r, err := options.DifficultyRange(selected, s.settings.MaxDifficulty)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.settings.Difficulty = selected
	s.difRange = r
	return nil
}

// Start resets the score, starts the clock and draws the first question.
func (s *Session) Start() error {
	s.score = Score{}
	s.over = false
	s.finishedAt = time.Time{}
	s.startedAt = s.now()
	s.started = true
	return s.next()
}

func (s *Session) next() error {
	q, err := s.source.Next(s.difRange)
	if err != nil {
		return fmt.Errorf("failed to generate question: %w", err)
	}
	s.current = q
	return nil
}

// Question returns the question currently on the board.
func (s *Session) Question() (options.Question, error) {
	if !s.started {
		return options.Question{}, ErrNotStarted
	}
	return s.current, nil
}

// Current renders the current question in the configured formats.
func (s *Session) Current() (View, error) {
	if !s.started {
		return View{}, ErrNotStarted
	}
	v := View{
		Number: s.score.Answered + 1,
		Total:  s.Total(),
		Given:  GivenLabel(s.current.Answer, s.settings.Given),
	}
	for i, c := range s.current.Options {
		v.Options[i] = OptionLabel(c, s.settings.Guess)
	}
	return v, nil
}

// Answer records the player's pick (1-based) and moves to the next question
// unless the game has ended.
func (s *Session) Answer(pos int) (AnswerResult, error) {
	if !s.started {
		return AnswerResult{}, ErrNotStarted
	}
	if s.Over() {
		return AnswerResult{}, ErrGameOver
	}
	if pos < 1 || pos > options.Slots {
		return AnswerResult{}, fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}

	res := AnswerResult{
		Chosen:          pos,
		CorrectPosition: s.current.CorrectPosition,
		Correct:         s.current.IsCorrect(pos),
	}
	if res.Correct {
		s.score.Right++
	} else {
		s.score.Wrong++
	}
	s.score.Answered++

	if s.settings.Mode.Counted() && s.score.Answered >= s.settings.Questions {
		s.finish(s.now())
	}
	if res.Over = s.Over(); !res.Over {
		if err := s.next(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Over reports whether the game has ended. Speed games end once the time
// limit has passed, even between answers.
func (s *Session) Over() bool {
	if !s.started {
		return false
	}
	if !s.over && s.settings.Mode == ModeSpeed && s.now().Sub(s.startedAt) >= s.settings.TimeLimit {
		s.finish(s.startedAt.Add(s.settings.TimeLimit))
	}
	return s.over
}

func (s *Session) finish(at time.Time) {
	s.over = true
	s.finishedAt = at
}

// Score returns the running tally.
func (s *Session) Score() Score { return s.score }

// Total returns the question limit, or 0 for unlimited modes.
func (s *Session) Total() int {
	if s.settings.Mode.Counted() {
		return s.settings.Questions
	}
	return 0
}

// Elapsed returns the time since Start, frozen once the game is over.
func (s *Session) Elapsed() time.Duration {
	if !s.started {
		return 0
	}
	if s.Over() {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// Remaining returns the countdown left in a speed game, or 0 in other modes.
func (s *Session) Remaining() time.Duration {
	if s.settings.Mode != ModeSpeed || !s.started {
		return 0
	}
	return max(s.settings.TimeLimit-s.Elapsed(), 0)
}

// Summary returns the game-over message.
func (s *Session) Summary() string {
	var b strings.Builder
	b.WriteString("GAME OVER!\n")

	switch s.settings.Mode {
	case ModeTimed:
		d := s.Elapsed()
		fmt.Fprintf(&b, "It took you %dm %d.%ds to answer %d questions",
			int(d.Minutes()), int(d.Seconds())%60, (d.Milliseconds()%1000)/100, s.score.Answered)
	case ModeSpeed:
		d := s.settings.TimeLimit
		fmt.Fprintf(&b, "In %dm %ds you answered %d questions",
			int(d.Minutes()), int(d.Seconds())%60, s.score.Answered)
	default:
		fmt.Fprintf(&b, "You answered %d questions", s.score.Answered)
	}

	fmt.Fprintf(&b, ", out of which you got:\n%d right\n%d wrong", s.score.Right, s.score.Wrong)
	return b.String()
}

// GivenLabel renders the color the player has to find. Hex codes are shown
// upper-case; a swatch has no text and is painted from the hex code.
func GivenLabel(c colormodel.Color, f colormodel.Format) string {
	if f == colormodel.FormatHex {
		return strings.ToUpper(c.HexString())
	}
	return c.Display(f)
}

// OptionLabel renders one option button. Text options are upper-case;
// swatches carry the hex code that paints them.
func OptionLabel(c colormodel.Color, f colormodel.Format) string {
	if f == colormodel.FormatSwatch {
		return c.HexString()
	}
	return strings.ToUpper(c.Display(f))
}
