package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ndexcontent/signorloader"
	"github.com/ndexcontent/signorloader/internal/loadplan"
	"github.com/ndexcontent/signorloader/internal/network"
	"github.com/ndexcontent/signorloader/internal/signor"
)

// DefaultIconURL is written to the __iconurl attribute of full species
// networks unless overridden.
const DefaultIconURL = "https://signor.uniroma2.it/img/signor_logo.png"

// Fixed attribution strings required by SIGNOR. The trailing space in the
// rights holder is intentional, it matches the published networks.
const (
	pathwayOrganism   = "Homo Sapiens (human)"
	organismHumanFull = "Homo sapiens (human)"
	organismMouse     = "Mus musculus (mouse)"
	organismRat       = "Rattus norvegicus (rat)"

	rightsHolder = "Prof. Gianni Cesareni "
	rights       = "Attribution-ShareAlike 4.0 International (CC BY-SA 4.0)"

	reference = `<div>Perfetto L., <i>et al.</i></div><div><b>SIGNOR: a database of causal relationships between biological entities</b><i>.</i></div><div>Nucleic Acids Res. 2016 Jan 4;44(D1):D548-54</div><div><span><a href="\&#34;https://doi.org/10.1093/nar/gkv1048\&#34;" target="\&#34;\&#34;">doi: 10.1093/nar/gkv1048</a></span></div>`

	collapseNotes = "Edges have been collapsed with attributes converted to lists with exception of direct attribute"

	normalizationVersion = "0.1"
)

// Pathway names whose networkType is Disease Pathway rather than
// Signalling Pathway, keyed by upper-cased network name.
var diseasePathways = map[string]bool{
	"ALZHEIMER DISEASE": true,
	"FSGS":              true,
	"NOONAN SYNDROME":   true,
	"PARKINSON DISEASE": true,
}

// Pathway names whose networkType is Cancer Pathway, keyed by upper-cased
// network name.
var cancerPathways = map[string]bool{
	"ACUTE MYELOID LEUKEMIA":  true,
	"COLORECTAL CARCINOMA":    true,
	"GLIOBLASTOMA MULTIFORME": true,
	"LUMINAL BREAST CANCER":   true,
	"MALIGNANT MELANOMA":      true,
	"PROSTATE CANCER":         true,
	"RHABDOMYOSARCOMA":        true,
	"THYROID CANCER":          true,
}

// writeNetworkAttributes decorates a freshly converted network with the
// attributes NDEx users see: name, description, organism, provenance,
// rights and typing.
func (l *Loader) writeNetworkAttributes(net *network.Network, pathwayID, pathwayName string, isFull bool) error {
	isHumanFull := false

	if isFull {
		net.SetName(pathwayName)

		organism := "Unknown"
		switch {
		case strings.Contains(pathwayID, "Human"):
			organism = "Human"
			net.SetNetworkAttribute("organism", organismHumanFull, network.TypeString)
			isHumanFull = true
		case strings.Contains(pathwayID, "Rat"):
			organism = "Rat"
			net.SetNetworkAttribute("organism", organismRat, network.TypeString)
		case strings.Contains(pathwayID, "Mouse"):
			organism = "Mouse"
			net.SetNetworkAttribute("organism", organismMouse, network.TypeString)
		default:
			slog.Error("No matching organism found", "pathway", pathwayID)
		}
		net.SetNetworkAttribute("description",
			"This network contains all the "+organism+
				" interactions currently available in SIGNOR", network.TypeString)
	} else {
		if err := l.writePathwayDescription(net, pathwayID); err != nil {
			return err
		}
		net.SetNetworkAttribute("organism", pathwayOrganism, network.TypeString)
	}

	net.SetNetworkAttribute("rightsHolder", rightsHolder, network.TypeString)
	net.SetNetworkAttribute("rights", rights, network.TypeString)
	net.SetNetworkAttribute("reference", reference, network.TypeString)
	net.SetNetworkAttribute("version", time.Now().Format("02-Jan-2006"), network.TypeString)

	net.SetNetworkAttribute("networkType", networkType(net.Name(), isHumanFull),
		network.TypeListOfString)

	if isFull {
		net.SetNetworkAttribute("__iconurl", l.opts.IconURL, network.TypeString)
	}

	net.SetNetworkAttribute("prov:wasGeneratedBy",
		`<a href="https://github.com/ndexcontent/signorloader">signorloader `+
			signorloader.Version+`</a>`, network.TypeString)
	net.SetNetworkAttribute("__normalizationversion", normalizationVersion, network.TypeString)

	derivedFrom := signor.DefaultURL
	if !isFull {
		derivedFrom += "/pathway_browser.php?organism=&pathway_list=" + pathwayID
	}
	net.SetNetworkAttribute("prov:wasDerivedFrom", derivedFrom, network.TypeString)

	if l.opts.EdgeCollapse {
		net.SetNetworkAttribute("notes", collapseNotes, network.TypeString)
	}
	return nil
}

// writePathwayDescription fills name, labels, author and description from
// the first data row of the pathway description table. The columns are
// positional: id, name, description, author.
func (l *Loader) writePathwayDescription(net *network.Network, pathwayID string) error {
	t, err := loadplan.ReadFile(l.downloader.PathwayDescriptionPath(pathwayID))
	if err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return fmt.Errorf("%s description table has no rows", pathwayID)
	}

	cell := func(i int) string {
		if i >= len(t.Rows[0]) {
			return ""
		}
		return strings.TrimSpace(t.Rows[0][i])
	}

	net.SetName(cell(1))
	if label := cell(0); label != "" {
		net.SetNetworkAttribute("labels", []string{label}, network.TypeListOfString)
	}
	if author := cell(3); author != "" {
		net.SetNetworkAttribute("author", author, network.TypeString)
	}
	net.SetNetworkAttribute("description", cell(2), network.TypeString)
	return nil
}

// networkType builds the networkType list: interactome for the full human
// network, always pathway, then the category keyed on the network name.
func networkType(name string, isHumanFull bool) []string {
	var types []string
	if isHumanFull {
		types = append(types, "interactome")
	}
	types = append(types, "pathway")

	switch upper := strings.ToUpper(name); {
	case diseasePathways[upper]:
		types = append(types, "Disease Pathway")
	case cancerPathways[upper]:
		types = append(types, "Cancer Pathway")
	default:
		types = append(types, "Signalling Pathway")
	}
	return types
}
