package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cppla/pixmarket/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "pixmarket",
	Short: "Image posts with a built-in auction market",
	Long: `pixmarket serves the social feed and the auction market API.

Commands:
  serve    - Run the HTTP server and the auction sweeper
  migrate  - Create or update database tables and exit`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetPath(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config.json (default config/config.json)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
