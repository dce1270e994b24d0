package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ndexcontent/signorloader"
	"github.com/ndexcontent/signorloader/internal/config"
	"github.com/ndexcontent/signorloader/internal/genesymbol"
	"github.com/ndexcontent/signorloader/internal/ndex"
	"github.com/ndexcontent/signorloader/internal/pipeline"
	"github.com/ndexcontent/signorloader/internal/report"
	"github.com/ndexcontent/signorloader/internal/signor"
	"github.com/spf13/cobra"
)

var (
	confPath     string
	profileName  string
	loadPlanPath string
	stylePath    string
	visibility   string
	iconURL      string
	pathwayGlob  string
	geneCache    string
	skipDownload bool
	edgeCollapse bool
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <datadir>",
	Short: "Load SIGNOR networks into NDEx",
	Long: `Downloads SIGNOR data into <datadir> (unless --skipdownload is set),
builds one network per pathway plus the full species interactomes and uploads
them to NDEx. Networks the account already owns under the same name are
updated in place.

NDEx credentials come from a YAML configuration file (default
~/.signorloader.yaml) keyed by profile:

  signorloader:
    user: <NDEx username>
    password: <NDEx password>
    server: public.ndexbio.org

NDEX_USER, NDEX_PASSWORD and NDEX_SERVER environment variables override the
file values.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		datadir := args[0]
		ctx := context.Background()

		path := confPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				fatal("Failed to locate configuration", err)
			}
		}
		profile, err := config.Load(path, profileName)
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		userAgent := signorloader.UserAgent()
		downloader := signor.NewDownloader(signor.NewClient(signorURL, userAgent), datadir)
		if !skipDownload {
			if err := downloader.DownloadAll(ctx); err != nil {
				fatal("Download failed", err)
			}
		}

		searcher, closeSearcher := newSearcher(datadir, userAgent)
		defer closeSearcher()

		ndexClient := ndex.NewClient(profile.Server, profile.User, profile.Password, userAgent)

		loader := pipeline.New(downloader, ndexClient, searcher, pipeline.Options{
			LoadPlanPath: loadPlanPath,
			StylePath:    stylePath,
			Visibility:   visibility,
			IconURL:      iconURL,
			EdgeCollapse: edgeCollapse,
			PathwayGlob:  pathwayGlob,
		})

		reports, err := loader.Run(ctx)
		if err != nil {
			fatal("Load failed", err)
		}

		printReports(reports)
	},
}

// newSearcher builds the gene symbol lookup, caching results in a SQLite
// file so repeated runs skip the mygene.info service. A broken cache file
// degrades to an in-memory cache.
func newSearcher(datadir, userAgent string) (genesymbol.Searcher, func()) {
	client := genesymbol.NewClient("", userAgent)

	path := geneCache
	if path == "" {
		path = filepath.Join(datadir, "genesymbols.db")
	}
	store, err := genesymbol.OpenSQLiteStore(path)
	if err != nil {
		slog.Warn("Gene symbol cache unavailable, caching in memory",
			"path", path, "error", err)
		return genesymbol.NewCached(client, genesymbol.NewMemoryStore()), func() {}
	}
	return genesymbol.NewCached(client, store), func() { _ = store.Close() }
}

func printReports(reports []*report.Report) {
	for _, rep := range reports {
		fmt.Print(rep.String())
	}
	fmt.Println("Node Types Found in all networks:")
	for _, nodeType := range report.CollectNodeTypes(reports) {
		fmt.Println("\t" + nodeType)
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&confPath, "conf", "", "Configuration file (default ~/.signorloader.yaml)")
	loadCmd.Flags().StringVar(&profileName, "profile", config.DefaultProfile, "Configuration profile holding the NDEx credentials")
	loadCmd.Flags().StringVar(&loadPlanPath, "loadplan", "", "Alternate load plan JSON file (default: bundled plan)")
	loadCmd.Flags().StringVar(&stylePath, "style", "", "CX file or NDEx network UUID supplying the visual style (default: bundled style)")
	loadCmd.Flags().StringVar(&visibility, "visibility", "PUBLIC", "Visibility of newly created networks (PUBLIC or PRIVATE)")
	loadCmd.Flags().StringVar(&iconURL, "iconurl", pipeline.DefaultIconURL, "Value of the __iconurl attribute on full species networks")
	loadCmd.Flags().StringVar(&pathwayGlob, "pathway", "", "Only process pathways whose id or name matches this glob")
	loadCmd.Flags().StringVar(&geneCache, "genecache", "", "SQLite gene symbol cache file (default <datadir>/genesymbols.db)")
	loadCmd.Flags().BoolVar(&skipDownload, "skipdownload", false, "Skip the download and reuse the data already in <datadir>")
	loadCmd.Flags().BoolVar(&edgeCollapse, "edgecollapse", false, "Collapse redundant edges, merging attributes into lists")
}
