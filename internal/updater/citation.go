package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndexcontent/signorloader/internal/network"
)

const (
	citationAttr = "citation"
	pubmedPrefix = "pubmed:"
)

// pmcMap rewrites PMC identifiers seen in the full networks to their pubmed
// equivalents. Signor carries exactly one such entry today; anything new
// would need the NCBI id converter service.
var pmcMap = map[string]string{
	"PMC3619734": "15109499",
}

// CitationCleaner drops invalid entries from the 'citation' edge attribute.
// Valid entries are numeric pubmed ids, optionally carrying the pubmed:
// prefix. Known PMC ids are rewritten to their pubmed form, everything else
// is removed with an issue.
type CitationCleaner struct{}

// NewCitationCleaner creates the pass.
func NewCitationCleaner() *CitationCleaner {
	return &CitationCleaner{}
}

func (u *CitationCleaner) Description() string {
	return "Removes any negative and non-numeric edge citations"
}

func (u *CitationCleaner) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	var issues []string
	for _, edge := range net.Edges() {
		attr, ok := net.EdgeAttribute(edge.ID, citationAttr)
		if !ok {
			continue
		}
		entries, ok := attr.Value.([]string)
		if !ok {
			continue
		}

		changed := false
		cleaned := make([]string, 0, len(entries))
		for _, entry := range entries {
			idOnly := strings.TrimPrefix(entry, pubmedPrefix)
			switch {
			case isDigits(idOnly):
				cleaned = append(cleaned, entry)
			case pmcMap[idOnly] != "":
				changed = true
				cleaned = append(cleaned, pubmedPrefix+pmcMap[idOnly])
				issues = append(issues, fmt.Sprintf(
					"Replacing %s with pubmed id: %s on edge id: %d",
					idOnly, pmcMap[idOnly], edge.ID))
			default:
				changed = true
				issues = append(issues, fmt.Sprintf(
					"Removing invalid citation id: %s on edge id: %d",
					entry, edge.ID))
			}
		}

		if changed {
			net.SetEdgeAttribute(edge.ID, citationAttr, cleaned, network.TypeListOfString)
		}
	}

	return issues
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
