package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/foodscope/foodscope/internal/render"
	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/openfoodfacts"
	"github.com/foodscope/foodscope/pkg/scan"
)

// scoreFlags maps flag names to nutrient keys. Flags are strings rather
// than floats so that a flag the user never set stays "absent" instead of
// becoming a fabricated zero.
var scoreFlags = []struct {
	flag string
	key  nutrition.NutrientKey
}{
	{"calories", nutrition.KeyCalories},
	{"fat", nutrition.KeyFat},
	{"saturated-fat", nutrition.KeySaturatedFat},
	{"carbohydrates", nutrition.KeyCarbohydrates},
	{"sugars", nutrition.KeySugars},
	{"added-sugars", nutrition.KeyAddedSugars},
	{"protein", nutrition.KeyProtein},
	{"salt", nutrition.KeySalt},
	{"sodium", nutrition.KeySodium},
	{"fiber", nutrition.KeyFiber},
}

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a hand-entered nutrition label without a barcode lookup",
	Long: `Score a nutrition label entered by hand, per 100g of product.
Only pass the nutrients the label actually lists; missing values are
treated as unknown, not as zero.

Example:
  foodscope score --calories 250 --saturated-fat 8 --sugars 20 --salt 1.8 --fiber 2 --protein 12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var profile nutrition.Profile

		for _, sf := range scoreFlags {
			if !cmd.Flags().Changed(sf.flag) {
				continue
			}
			raw, _ := cmd.Flags().GetString(sf.flag)
			m := nutrition.ParseMeasurement(raw)
			if m == nil {
				utils.Log.Warn("Ignoring unparseable value for --", sf.flag, ": ", raw)
				continue
			}
			switch sf.key {
			case nutrition.KeyCalories:
				profile.Calories = m
			case nutrition.KeyFat:
				profile.Fat = m
			case nutrition.KeySaturatedFat:
				profile.SaturatedFat = m
			case nutrition.KeyCarbohydrates:
				profile.Carbohydrates = m
			case nutrition.KeySugars:
				profile.Sugars = m
			case nutrition.KeyAddedSugars:
				profile.AddedSugars = m
			case nutrition.KeyProtein:
				profile.Protein = m
			case nutrition.KeySalt:
				profile.Salt = m
			case nutrition.KeySodium:
				profile.Sodium = m
			case nutrition.KeyFiber:
				profile.Fiber = m
			}
		}

		report := scan.BuildReport(&openfoodfacts.Product{
			Code:    "-",
			Name:    "Manual entry",
			Profile: profile,
		}, loadThresholds())

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		return render.Report(os.Stdout, report)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	for _, sf := range scoreFlags {
		scoreCmd.Flags().String(sf.flag, "", "Per-100g value for "+string(sf.key))
	}
	scoreCmd.Flags().BoolP("json", "j", false, "Print the full report as JSON")
}
