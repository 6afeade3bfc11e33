package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foodscope/foodscope/internal/render"
	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/openfoodfacts"
	"github.com/foodscope/foodscope/pkg/scan"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <barcode> [barcode...]",
	Short: "Look up products by barcode and grade their nutrition",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		refresh, _ := cmd.Flags().GetBool("refresh")

		db := openDB()
		defer db.Close()
		scanner := newScanner(db)
		thresholds := loadThresholds()

		var failed int
		for i, barcode := range args {
			p, cached, err := scanner.Lookup(context.Background(), barcode, refresh)
			if errors.Is(err, openfoodfacts.ErrNotFound) {
				utils.Log.Error("No product found for barcode ", barcode)
				failed++
				continue
			}
			if err != nil {
				utils.Log.Error("Lookup failed for barcode ", barcode, ": ", err)
				failed++
				continue
			}
			if cached {
				utils.Log.Debug("Served from local cache")
			}

			report := scan.BuildReport(p, thresholds)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
				continue
			}
			if i > 0 {
				fmt.Println()
			}
			if err := render.Report(os.Stdout, report); err != nil {
				return err
			}
		}

		if failed == len(args) {
			return fmt.Errorf("no products found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolP("json", "j", false, "Print the full report as JSON")
	lookupCmd.Flags().BoolP("refresh", "r", false, "Skip the local cache and refetch from Open Food Facts")
}
