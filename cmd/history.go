package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foodscope/foodscope/internal/render"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the scan history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		db := openDB()
		if db == nil {
			return fmt.Errorf("no local database available")
		}
		defer db.Close()

		entries, err := db.ListHistory(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No scans recorded yet.")
			return nil
		}
		render.History(os.Stdout, entries)
		return nil
	},
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole scan history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		if db == nil {
			return fmt.Errorf("no local database available")
		}
		defer db.Close()

		if err := db.ClearHistory(context.Background()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of entries to show")
}
