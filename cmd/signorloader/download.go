package main

import (
	"context"
	"fmt"

	"github.com/ndexcontent/signorloader"
	"github.com/ndexcontent/signorloader/internal/signor"
	"github.com/spf13/cobra"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <datadir>",
	Short: "Download SIGNOR data into a directory",
	Long: `Downloads the pathway listing, the protein family and complex exports,
every pathway's relations and description tables and the full species
interaction tables into <datadir>. Pathway and full species files already
present are kept, so an interrupted download can be resumed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := signor.NewClient(signorURL, signorloader.UserAgent())
		downloader := signor.NewDownloader(client, args[0])

		if err := downloader.DownloadAll(context.Background()); err != nil {
			fatal("Download failed", err)
		}
		fmt.Println("Download complete.")
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
