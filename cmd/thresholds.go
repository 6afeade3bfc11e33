package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/foodscope/foodscope/internal/render"
)

// thresholdsCmd represents the thresholds command
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Print the nutrient classification reference table",
	Long: `Print the low/high classification bands used to bucket nutrients into
low, moderate and high levels. Bands can be overridden per nutrient in the
config file, e.g.:

  thresholds:
    sugars:
      low: 4
      high: 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		thresholds := loadThresholds()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(thresholds)
		}
		return render.Thresholds(os.Stdout, thresholds)
	},
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
	thresholdsCmd.Flags().BoolP("json", "j", false, "Print the table as JSON")
}
