package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foodscope/foodscope/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the foodscope proxy server",
	Long: `Run an HTTP server that fronts Open Food Facts with the local cache and
returns fully scored product reports, so thin clients don't need to talk to
the upstream database or reimplement the scoring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		if listenAddr == "" {
			listenAddr = viper.GetString("server.listen")
		}
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = viper.GetString("server.username")
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = viper.GetString("server.password")
		}

		db := openDB()
		defer db.Close()

		srv := server.New(newScanner(db), db, loadThresholds(), username, password)
		return srv.Start(listenAddr, viper.GetFloat64("server.rps"), viper.GetInt("server.burst"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default :8080)")
	serveCmd.Flags().String("username", "", "Basic auth username (empty disables auth)")
	serveCmd.Flags().String("password", "", "Basic auth password")
}
