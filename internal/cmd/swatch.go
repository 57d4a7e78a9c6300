package cmd

import (
	"fmt"
	"image"
	"math/rand/v2"
	"os"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
	"github.com/MeKo-Tech/huequiz/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch [color]",
	Short: "Render a color swatch (or a question board) as PNG",
	Long: `Render a single color card to PNG. Without a color argument, a random
question is drawn and its 3x3 option board is rendered instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSwatch,
}

func init() {
	rootCmd.AddCommand(swatchCmd)

	swatchCmd.Flags().StringP("output", "o", "swatch.png", "Output PNG file")
	swatchCmd.Flags().Int("size", 96, "Card edge in pixels")
	swatchCmd.Flags().Float32("radius", 12, "Corner radius in pixels")
	swatchCmd.Flags().Float32("shadow", 3, "Drop shadow blur sigma (0 disables the shadow)")
	swatchCmd.Flags().Int("gap", 8, "Spacing between cards on a board")
	swatchCmd.Flags().Float32("paper", 0, "Paper grain behind a board, 0..1 (0 leaves it transparent)")
	swatchCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	swatchCmd.Flags().Int("difficulty", 5, "Selected difficulty for a board")
	swatchCmd.Flags().Int("max-difficulty", 10, "Highest selectable difficulty for a board")
	swatchCmd.Flags().Uint64("seed", 0, "Seed for a board (0 picks a random one)")

	bindFlags(swatchCmd, "swatch",
		"output", "size", "radius", "shadow", "gap", "paper", "png-compression",
		"difficulty", "max-difficulty", "seed")
}

type swatchConfig struct {
	Options       swatch.Options
	Difficulty    int
	MaxDifficulty int
	Seed          uint64
}

// renderSwatch renders value as one card, or a question board when value is
// empty. The board's question is returned for logging.
func renderSwatch(value string, cfg swatchConfig) (image.Image, *options.Question, error) {
	if value != "" {
		c, err := colormodel.Parse(value)
		if err != nil {
			return nil, nil, err
		}
		return swatch.Render(c, cfg.Options), nil, nil
	}

	difRange, err := options.DifficultyRange(cfg.Difficulty, cfg.MaxDifficulty)
	if err != nil {
		return nil, nil, err
	}
	q, err := options.NewGenerator(options.NewSource(cfg.Seed)).Next(difRange)
	if err != nil {
		return nil, nil, err
	}
	return swatch.Grid(q, cfg.Options), &q, nil
}

func runSwatch(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg := swatchConfig{
		Options: swatch.Options{
			Size:   viper.GetInt("swatch.size"),
			Radius: float32(viper.GetFloat64("swatch.radius")),
			Shadow: float32(viper.GetFloat64("swatch.shadow")),
			Gap:    viper.GetInt("swatch.gap"),
			Paper:  float32(viper.GetFloat64("swatch.paper")),
		},
		Difficulty:    viper.GetInt("swatch.difficulty"),
		MaxDifficulty: viper.GetInt("swatch.max_difficulty"),
		Seed:          viper.GetUint64("swatch.seed"),
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	cfg.Options.Seed = int64(cfg.Seed)
	output := viper.GetString("swatch.output")

	level, err := swatch.ParseCompression(viper.GetString("swatch.png_compression"))
	if err != nil {
		return err
	}

	var value string
	if len(args) == 1 {
		value = args[0]
	}

	img, q, err := renderSwatch(value, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := swatch.EncodePNG(f, img, level); err != nil {
		return err
	}

	fields := []any{"path", output, "width", img.Bounds().Dx(), "height", img.Bounds().Dy()}
	if q != nil {
		fields = append(fields, "seed", cfg.Seed, "answer", q.Answer.HexString(), "position", q.CorrectPosition)
	}
	logger.Info("Swatch written", fields...)
	return nil
}
