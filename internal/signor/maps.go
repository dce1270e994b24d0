package signor

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Pathway is one entry of the SIGNOR pathway listing.
type Pathway struct {
	ID   string
	Name string
}

// EntityMap maps protein family or complex identifiers and names to their
// member entity lists.
type EntityMap map[string][]string

// ParsePathways reads the tab separated pathway listing, preserving file
// order. Slashes are stripped from ids because they double as file names.
func ParsePathways(r io.Reader) ([]Pathway, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var pathways []Pathway
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return pathways, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse pathway list: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		id := strings.ReplaceAll(strings.TrimSpace(record[0]), "/", "")
		if id == "" {
			continue
		}
		pathways = append(pathways, Pathway{ID: id, Name: strings.TrimSpace(record[1])})
	}
}

// ParsePathwaysFile reads the pathway listing from disk.
func ParsePathwaysFile(path string) ([]Pathway, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pathway list: %w", err)
	}
	defer f.Close()
	return ParsePathways(f)
}

// ParseEntityMap reads a semicolon separated protein family or complex
// export. Each row maps both its id (first column) and its name (second
// column) to the comma separated entity list in the third column.
func ParseEntityMap(r io.Reader) (EntityMap, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	entityMap := make(EntityMap)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return entityMap, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse entity file: %w", err)
		}
		if len(record) < 3 {
			continue
		}

		var entities []string
		for _, entry := range strings.Split(record[2], ",") {
			entities = append(entities, strings.TrimSpace(entry))
		}
		entityMap[record[1]] = entities
		entityMap[record[0]] = entities
	}
}

// ParseEntityMapFile reads a protein family or complex export from disk.
func ParseEntityMapFile(path string) (EntityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entity file: %w", err)
	}
	defer f.Close()
	return ParseEntityMap(f)
}
