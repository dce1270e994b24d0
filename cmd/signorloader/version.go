package main

import (
	"fmt"

	"github.com/ndexcontent/signorloader"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of signorloader",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signorloader version %s\n", signorloader.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
