package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/foodscope/foodscope/internal/utils"
	"github.com/foodscope/foodscope/pkg/nutrition"
	"github.com/foodscope/foodscope/pkg/openfoodfacts"
	"github.com/foodscope/foodscope/pkg/scan"
	"github.com/foodscope/foodscope/pkg/storage"
)

var cfgFile string

const (
	LOGO = `  __                _
 / _| ___   ___   __| |___  ___ ___  _ __   ___
| |_ / _ \ / _ \ / _` + "`" + ` / __|/ __/ _ \| '_ \ / _ \
|  _| (_) | (_) | (_| \__ \ (_| (_) | |_) |  __/
|_|  \___/ \___/ \__,_|___/\___\___/| .__/ \___|
                                    |_|
`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "foodscope",
	Short: "Barcode food lookup with Nutri-Score style grading.",
	Long: LOGO + `foodscope looks up food products by barcode against the Open Food Facts
database, caches them locally, and grades their nutritional quality with a
Nutri-Score style score, traffic-light nutrient levels and a plain-language
summary.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foodscope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "Path to SQLite DB file (default is $HOME/.foodscope.sqlite)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".foodscope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.foodscope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("cache.ttl_days", 7)
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")
	viper.SetDefault("server.rps", 5.0)
	viper.SetDefault("server.burst", 10)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// defaultDBPath resolves the SQLite location: --dbpath flag, then config,
// then $HOME/.foodscope.sqlite.
func defaultDBPath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("dbpath"); p != "" {
		return p
	}
	if p := viper.GetString("dbpath"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return ".foodscope.sqlite"
	}
	return home + "/.foodscope.sqlite"
}

// openDB opens the local database, or returns nil when it cannot be
// opened: the cache and history are conveniences, not requirements.
func openDB() *storage.DB {
	db, err := storage.Open(defaultDBPath())
	if err != nil {
		utils.Log.Warn("Could not open local database, continuing without cache: ", err)
		return nil
	}
	return db
}

// newScanner wires the lookup pipeline used by the CLI commands.
func newScanner(db *storage.DB) *scan.Service {
	svc := scan.NewService(openfoodfacts.NewClient(), db)
	if days := viper.GetInt("cache.ttl_days"); days > 0 {
		svc.CacheTTL = time.Duration(days) * 24 * time.Hour
	}
	return svc
}

// loadThresholds merges config-file overrides over the built-in
// classification table. Bands with low >= high are rejected.
func loadThresholds() nutrition.Thresholds {
	t := nutrition.DefaultThresholds()

	raw := map[string]nutrition.Band{}
	if err := viper.UnmarshalKey("thresholds", &raw); err != nil {
		utils.Log.Warn("Ignoring malformed thresholds config: ", err)
		return t
	}
	for key, band := range raw {
		if band.Low >= band.High {
			utils.Log.Warn("Ignoring threshold override for ", key, ": low must be below high")
			continue
		}
		t[nutrition.NutrientKey(key)] = band
	}
	return t
}
