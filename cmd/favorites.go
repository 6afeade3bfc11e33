package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foodscope/foodscope/internal/render"
)

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List bookmarked products",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		if db == nil {
			return fmt.Errorf("no local database available")
		}
		defer db.Close()

		entries, err := db.ListFavorites(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No favorites yet. Add one with: foodscope favorites add <barcode>")
			return nil
		}
		render.Favorites(os.Stdout, entries)
		return nil
	},
}

// favoritesAddCmd represents the favorites add command
var favoritesAddCmd = &cobra.Command{
	Use:   "add <barcode>",
	Short: "Bookmark a product by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		if db == nil {
			return fmt.Errorf("no local database available")
		}
		defer db.Close()

		// Fetch (or read from cache) so the favorite carries a name.
		p, _, err := newScanner(db).Lookup(context.Background(), args[0], false)
		if err != nil {
			return err
		}
		if err := db.AddFavorite(context.Background(), p.Code, p.Name); err != nil {
			return err
		}
		fmt.Printf("Added %s (%s) to favorites.\n", p.Name, p.Code)
		return nil
	},
}

// favoritesRemoveCmd represents the favorites remove command
var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <barcode>",
	Short: "Remove a bookmarked product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := openDB()
		if db == nil {
			return fmt.Errorf("no local database available")
		}
		defer db.Close()

		removed, err := db.RemoveFavorite(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("barcode %s is not in favorites", args[0])
		}
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}
