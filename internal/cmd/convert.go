package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert <color>...",
	Short: "Print a color as hex, rgb() and hsl()",
	Long: `Convert colors between representations.

Accepts hex codes (#fff, #ffffff, ffffff), rgb(r, g, b) and hsl(h, s%, l%).`,
	Example: `  huequiz convert '#0cc863'
  huequiz convert 'rgb(12, 200, 99)' 'hsl(148, 89%, 42%)'
  huequiz convert --json fff`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Bool("json", false, "Print JSON instead of a table")

	bindFlags(convertCmd, "convert", "json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}
	return convertColors(cmd.OutOrStdout(), args, viper.GetBool("convert.json"))
}

func convertColors(w io.Writer, values []string, asJSON bool) error {
	colors := make([]colormodel.Color, 0, len(values))
	for _, v := range values {
		c, err := colormodel.Parse(v)
		if err != nil {
			return fmt.Errorf("convert %q: %w", v, err)
		}
		colors = append(colors, c)
	}

	if asJSON {
		records := make([]colorRecord, len(colors))
		for i, c := range colors {
			records[i] = newColorRecord(c)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tHEX\tRGB\tHSL")
	for i, c := range colors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", values[i], c.HexString(), c.RGBString(), c.HSLString())
	}
	return tw.Flush()
}
