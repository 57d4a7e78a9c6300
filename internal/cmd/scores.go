package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/quiz"
	"github.com/MeKo-Tech/huequiz/internal/scores"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "List recorded games",
	Long: `List recorded games, newest first. With --mode, list the best games of
that mode instead (most right answers, then fastest).`,
	RunE: runScores,
}

func init() {
	rootCmd.AddCommand(scoresCmd)

	scoresCmd.Flags().String("mode", "", "List the best games of this mode (timed, speed, zen, endless)")
	scoresCmd.Flags().Int("limit", scores.DefaultLimit, "Maximum number of rows")

	bindFlags(scoresCmd, "scores", "mode", "limit")
}

func runScores(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("scores are disabled (empty --scores-db)")
	}
	defer store.Close()

	limit := viper.GetInt("scores.limit")

	var results []scores.Result
	if m := viper.GetString("scores.mode"); m != "" {
		mode, err := quiz.ParseMode(m)
		if err != nil {
			return err
		}
		results, err = store.Best(cmd.Context(), mode, limit)
		if err != nil {
			return err
		}
	} else {
		results, err = store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
	}

	return printScores(cmd.OutOrStdout(), results)
}

func printScores(w io.Writer, results []scores.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No games recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAYED\tPLAYER\tMODE\tGIVEN→GUESS\tLEVEL\tRIGHT\tWRONG\tACCURACY\tTIME")
	for _, r := range results {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s→%s\t%d/%d\t%d\t%d\t%.0f%%\t%s\n",
			r.ID,
			r.PlayedAt.Local().Format("2006-01-02 15:04"),
			player,
			r.Mode,
			r.Given, r.Guess,
			r.Difficulty, r.MaxDifficulty,
			r.Right, r.Wrong,
			r.Accuracy()*100,
			r.Elapsed.Round(100*time.Millisecond),
		)
	}
	return tw.Flush()
}
