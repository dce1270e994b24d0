package signor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// File names used inside the data directory.
const (
	PathwayListFile   = "pathway_list.txt"
	ProteinFamilyFile = "SIGNOR_PF.csv"
	ComplexesFile     = "SIGNOR_complexes.csv"
)

// SpeciesMapping maps NCBI taxonomy ids to the organism labels used in the
// full download file names.
var SpeciesMapping = map[string]string{
	"9606":  "Human",
	"10090": "Mouse",
	"10116": "Rat",
}

// FullFileColumns lists the columns of the full species downloads, which
// ship without a header row.
var FullFileColumns = []string{
	"entitya", "typea", "ida", "databasea",
	"entityb", "typeb", "idb", "databaseb",
	"effect", "mechanism", "residue", "sequence", "tax_id",
	"cell_data", "tissue_data", "modulator_complex", "target_complex",
	"modificationa", "modaseq", "modificationb", "modbseq",
	"pmid", "direct", "notes", "annotator", "sentence", "signor_id",
}

// Downloader fetches every SIGNOR file the loader needs into one directory.
// Pathway and full species files already on disk are kept, so an
// interrupted run can resume where it stopped.
type Downloader struct {
	client *Client
	outdir string
}

// NewDownloader creates a downloader writing into outdir.
func NewDownloader(client *Client, outdir string) *Downloader {
	return &Downloader{client: client, outdir: outdir}
}

func (d *Downloader) PathwayListPath() string {
	return filepath.Join(d.outdir, PathwayListFile)
}

func (d *Downloader) ProteinFamilyPath() string {
	return filepath.Join(d.outdir, ProteinFamilyFile)
}

func (d *Downloader) ComplexesPath() string {
	return filepath.Join(d.outdir, ComplexesFile)
}

// PathwayPath returns where the relations table of a pathway lives.
func (d *Downloader) PathwayPath(pathwayID string) string {
	return filepath.Join(d.outdir, pathwayID+".txt")
}

// PathwayDescriptionPath returns where the description table of a pathway
// lives.
func (d *Downloader) PathwayDescriptionPath(pathwayID string) string {
	return filepath.Join(d.outdir, pathwayID+"_desc.txt")
}

// FullSpeciesPath returns where the full interaction table of an organism
// lives.
func (d *Downloader) FullSpeciesPath(organism string) string {
	return filepath.Join(d.outdir, "full_"+organism+".txt")
}

// Pathways parses the downloaded pathway listing.
func (d *Downloader) Pathways() ([]Pathway, error) {
	return ParsePathwaysFile(d.PathwayListPath())
}

// ProteinFamilyMap parses the downloaded protein family export.
func (d *Downloader) ProteinFamilyMap() (EntityMap, error) {
	return ParseEntityMapFile(d.ProteinFamilyPath())
}

// ComplexesMap parses the downloaded complex export.
func (d *Downloader) ComplexesMap() (EntityMap, error) {
	return ParseEntityMapFile(d.ComplexesPath())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// downloadIfMissing skips files that already exist.
func downloadIfMissing(ctx context.Context, path string, fetch func(context.Context) ([]byte, error)) error {
	if _, err := os.Stat(path); err == nil {
		slog.Info("File exists. Skipping...", "path", path)
		return nil
	}
	data, err := fetch(ctx)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// DownloadAll fetches the pathway listing, the entity exports, every
// pathway and the full species tables.
func (d *Downloader) DownloadAll(ctx context.Context) error {
	if err := os.MkdirAll(d.outdir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.outdir, err)
	}

	// The listing and the entity exports are always refreshed since they
	// steer everything downloaded after them.
	slog.Info("Downloading pathways list")
	data, err := d.client.GetPathwayList(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(d.PathwayListPath(), data); err != nil {
		return err
	}

	slog.Info("Downloading protein family data")
	data, err = d.client.GetProteinFamilies(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(d.ProteinFamilyPath(), data); err != nil {
		return err
	}

	slog.Info("Downloading complex data")
	data, err = d.client.GetComplexes(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(d.ComplexesPath(), data); err != nil {
		return err
	}

	pathways, err := d.Pathways()
	if err != nil {
		return err
	}
	for _, p := range pathways {
		pathwayID := p.ID
		err := downloadIfMissing(ctx, d.PathwayPath(pathwayID), func(ctx context.Context) ([]byte, error) {
			slog.Info("Downloading pathway relations", "pathway", pathwayID)
			return d.client.GetPathwayData(ctx, pathwayID, true)
		})
		if err != nil {
			return err
		}
		err = downloadIfMissing(ctx, d.PathwayDescriptionPath(pathwayID), func(ctx context.Context) ([]byte, error) {
			slog.Info("Downloading pathway description", "pathway", pathwayID)
			return d.client.GetPathwayData(ctx, pathwayID, false)
		})
		if err != nil {
			return err
		}
	}

	// Map iteration is randomized, sort for a stable download order.
	taxonomyIDs := make([]string, 0, len(SpeciesMapping))
	for taxonomyID := range SpeciesMapping {
		taxonomyIDs = append(taxonomyIDs, taxonomyID)
	}
	sort.Strings(taxonomyIDs)

	for _, taxonomyID := range taxonomyIDs {
		organism := SpeciesMapping[taxonomyID]
		err := downloadIfMissing(ctx, d.FullSpeciesPath(organism), func(ctx context.Context) ([]byte, error) {
			slog.Info("Downloading full species interactions", "organism", organism)
			return d.client.GetFullSpecies(ctx, taxonomyID)
		})
		if err != nil {
			return err
		}
	}

	return nil
}
