package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ndexcontent/signorloader/internal/signor"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	signorURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "signorloader",
	Short: "Loads SIGNOR pathway data into NDEx",
	Long: `signorloader downloads pathway and interaction data from the SIGNOR
web service (https://signor.uniroma2.it), builds one network per pathway plus
the full species interactomes, and uploads them to NDEx (https://www.ndexbio.org).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&signorURL, "signorurl", signor.DefaultURL, "Base URL of the SIGNOR web service")
}
