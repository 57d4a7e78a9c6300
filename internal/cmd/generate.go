package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
	"github.com/MeKo-Tech/huequiz/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of questions as JSON",
	Long: `Generate quiz questions in parallel and write them as a JSON array.

Each question carries its own seed, so the same --seed always yields the
same batch regardless of --workers.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("count", "n", 10, "Number of questions to generate")
	generateCmd.Flags().Int("difficulty", 5, "Selected difficulty (1..max-difficulty)")
	generateCmd.Flags().Int("max-difficulty", 10, "Highest selectable difficulty")
	generateCmd.Flags().Uint64("seed", 0, "Base seed (0 picks a random one)")
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress bar on stderr")
	generateCmd.Flags().Bool("allow-failures", false, "Write the successful questions even if some fail")
	generateCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	bindFlags(generateCmd, "generate",
		"count", "difficulty", "max-difficulty", "seed", "workers",
		"progress", "allow-failures", "output")
}

type generatedQuestion struct {
	Index           int          `json:"index"`
	Seed            uint64       `json:"seed"`
	DifficultyRange int          `json:"difficulty_range"`
	Answer          colorRecord  `json:"answer"`
	CorrectPosition int          `json:"correct_position"`
	Options         [9]string    `json:"options"`
	Spread          spreadRecord `json:"spread"`
}

type colorRecord struct {
	Hex string `json:"hex"`
	RGB string `json:"rgb"`
	HSL string `json:"hsl"`
}

type spreadRecord struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

func newColorRecord(c colormodel.Color) colorRecord {
	return colorRecord{Hex: c.HexString(), RGB: c.RGBString(), HSL: c.HSLString()}
}

func newGeneratedQuestion(r worker.Result) generatedQuestion {
	q := r.Question
	out := generatedQuestion{
		Index:           r.Task.Index,
		Seed:            r.Task.Seed,
		DifficultyRange: r.Task.DifficultyRange,
		Answer:          newColorRecord(q.Answer),
		CorrectPosition: q.CorrectPosition,
	}
	for i, c := range q.Options {
		out.Options[i] = c.HexString()
	}
	sp := q.Spread()
	out.Spread = spreadRecord{Min: sp.Min, Mean: sp.Mean, Max: sp.Max}
	return out
}

type batchConfig struct {
	Count         int
	Difficulty    int
	MaxDifficulty int
	Seed          uint64
	Workers       int
	Progress      io.Writer
}

// generateBatch runs the worker pool and returns the successful questions in
// task order together with the failed results.
func generateBatch(ctx context.Context, cfg batchConfig) ([]generatedQuestion, []worker.Result, error) {
	if cfg.Count < 1 {
		return nil, nil, fmt.Errorf("--count must be at least 1, got %d", cfg.Count)
	}
	difRange, err := options.DifficultyRange(cfg.Difficulty, cfg.MaxDifficulty)
	if err != nil {
		return nil, nil, err
	}

	tasks := worker.Tasks(cfg.Count, cfg.Seed, difRange)
	progress := worker.NewProgress(len(tasks), cfg.Progress)

	pool := worker.New(worker.Config{
		Workers:    cfg.Workers,
		Generator:  worker.SeededGenerator{},
		OnProgress: progress.Callback(),
	})
	results := pool.Run(ctx, tasks)
	progress.Done()

	questions := make([]generatedQuestion, 0, len(results))
	var failed []worker.Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		questions = append(questions, newGeneratedQuestion(r))
	}

	if logger != nil {
		logger.Info(progress.Summary())
	}
	return questions, failed, nil
}

func writeQuestions(w io.Writer, questions []generatedQuestion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg := batchConfig{
		Count:         viper.GetInt("generate.count"),
		Difficulty:    viper.GetInt("generate.difficulty"),
		MaxDifficulty: viper.GetInt("generate.max_difficulty"),
		Seed:          viper.GetUint64("generate.seed"),
		Workers:       viper.GetInt("generate.workers"),
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if viper.GetBool("generate.progress") && isTerminal(os.Stderr) {
		cfg.Progress = os.Stderr
	}
	allowFailures := viper.GetBool("generate.allow_failures")
	outputFile := viper.GetString("generate.output")

	logger.Info("Starting question generation",
		"count", cfg.Count,
		"difficulty", cfg.Difficulty,
		"max_difficulty", cfg.MaxDifficulty,
		"seed", cfg.Seed,
		"workers", cfg.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	questions, failed, err := generateBatch(ctx, cfg)
	if err != nil {
		return err
	}

	for _, r := range failed {
		logger.Error("Question generation failed", "index", r.Task.Index, "seed", r.Task.Seed, "error", r.Err)
	}
	if len(failed) > 0 {
		if !allowFailures {
			return fmt.Errorf("%d questions failed to generate", len(failed))
		}
		logger.Warn("Some questions failed to generate, but continuing due to --allow-failures flag", "failed_count", len(failed))
	}

	out := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeQuestions(out, questions); err != nil {
		return fmt.Errorf("failed to write questions: %w", err)
	}
	if outputFile != "" {
		logger.Info("Questions written", "path", outputFile, "count", len(questions))
	}
	return nil
}
