package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
	"github.com/MeKo-Tech/huequiz/internal/quiz"
	"github.com/MeKo-Tech/huequiz/internal/scores"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in the terminal",
	Long: `Play the quiz on stdin/stdout. Answer with the number of the option (1-9),
or "q" to stop. Swatches are painted with 24-bit ANSI colors.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	defaults := quiz.DefaultSettings()
	playCmd.Flags().String("mode", string(defaults.Mode), "Game mode (timed, speed, zen, endless)")
	playCmd.Flags().String("given", string(colormodel.FormatHex), "Format of the color to find (hex, rgb, hsl, color)")
	playCmd.Flags().String("guess", string(colormodel.FormatRGB), "Format of the options (hex, rgb, hsl, color)")
	playCmd.Flags().Int("difficulty", defaults.Difficulty, "Selected difficulty (1..max-difficulty)")
	playCmd.Flags().Int("max-difficulty", defaults.MaxDifficulty, "Highest selectable difficulty")
	playCmd.Flags().Int("questions", defaults.Questions, "Questions per game in timed and zen mode")
	playCmd.Flags().Duration("time-limit", defaults.TimeLimit, "Countdown for speed mode")
	playCmd.Flags().String("player", "", "Name recorded with the score")
	playCmd.Flags().Uint64("seed", 0, "Seed for the question stream (0 picks a random one)")

	bindFlags(playCmd, "play",
		"mode", "given", "guess", "difficulty", "max-difficulty",
		"questions", "time-limit", "player", "seed")
}

func playSettings() (quiz.Settings, error) {
	s := quiz.DefaultSettings()

	mode, err := quiz.ParseMode(viper.GetString("play.mode"))
	if err != nil {
		return s, err
	}
	given, err := colormodel.ParseFormat(viper.GetString("play.given"))
	if err != nil {
		return s, err
	}
	guess, err := colormodel.ParseFormat(viper.GetString("play.guess"))
	if err != nil {
		return s, err
	}

	s.Mode = mode
	s.Given = given
	s.Guess = guess
	s.Difficulty = viper.GetInt("play.difficulty")
	s.MaxDifficulty = viper.GetInt("play.max_difficulty")
	s.Questions = viper.GetInt("play.questions")
	s.TimeLimit = viper.GetDuration("play.time_limit")
	return s.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	settings, err := playSettings()
	if err != nil {
		return err
	}

	seed := viper.GetUint64("play.seed")
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("starting game", "mode", settings.Mode, "seed", seed)

	sess, err := quiz.New(settings, options.NewGenerator(options.NewSource(seed)), nil)
	if err != nil {
		return err
	}

	if err := playGame(cmd.InOrStdin(), cmd.OutOrStdout(), sess, isTerminal(cmd.OutOrStdout())); err != nil {
		return err
	}

	if sess.Score().Answered == 0 {
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), scores.FromSession(viper.GetString("play.player"), sess, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	logger.Info("Score recorded", "id", id, "path", store.Path())
	return nil
}

// playGame runs sess against a line-oriented player. It returns when the game
// is over, the player types "q" or the input ends. With ansi set, swatches are
// painted as colored blocks; otherwise their hex code is printed.
func playGame(in io.Reader, out io.Writer, sess *quiz.Session, ansi bool) error {
	if err := sess.Start(); err != nil {
		return err
	}

	settings := sess.Settings()
	scanner := bufio.NewScanner(in)

	for !sess.Over() {
		view, err := sess.Current()
		if err != nil {
			return err
		}
		printQuestion(out, view, settings, ansi)

		pos, quit := readPosition(scanner, out)
		if quit {
			break
		}

		res, err := sess.Answer(pos)
		if errors.Is(err, quiz.ErrGameOver) {
			fmt.Fprintln(out, "Time is up!")
			break
		}
		if err != nil {
			return err
		}

		if res.Correct {
			fmt.Fprintln(out, "Right!")
		} else {
			fmt.Fprintf(out, "Wrong, it was %d.\n", res.CorrectPosition)
		}
		fmt.Fprintln(out)
	}

	if sess.Over() {
		fmt.Fprintln(out, sess.Summary())
	} else {
		score := sess.Score()
		fmt.Fprintf(out, "Stopped after %d questions: %d right, %d wrong\n", score.Answered, score.Right, score.Wrong)
	}
	return scanner.Err()
}

func printQuestion(out io.Writer, view quiz.View, settings quiz.Settings, ansi bool) {
	if view.Total > 0 {
		fmt.Fprintf(out, "Question %d/%d\n", view.Number, view.Total)
	} else {
		fmt.Fprintf(out, "Question %d\n", view.Number)
	}
	fmt.Fprintf(out, "Find: %s\n", paint(view.Given, settings.Given, ansi))

	for i, label := range view.Options {
		fmt.Fprintf(out, "%d) %-22s", i+1, paint(label, settings.Guess, ansi))
		if i%3 == 2 {
			fmt.Fprintln(out)
		}
	}
}

// readPosition prompts until the player enters 1-9 or quits.
func readPosition(scanner *bufio.Scanner, out io.Writer) (int, bool) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return 0, true
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			return 0, true
		}
		pos, err := strconv.Atoi(line)
		if err == nil && pos >= 1 && pos <= options.Slots {
			return pos, false
		}
		fmt.Fprintf(out, "Enter a number from 1 to %d, or q to quit.\n", options.Slots)
	}
}

// paint renders a swatch label as a block of background color.
func paint(label string, f colormodel.Format, ansi bool) string {
	if !ansi || f != colormodel.FormatSwatch {
		return label
	}
	c, err := colormodel.FromHex(label)
	if err != nil {
		return label
	}
	rgb := c.RGB()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm      \x1b[0m", rgb.R, rgb.G, rgb.B)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
