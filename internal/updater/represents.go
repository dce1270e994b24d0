package updater

import (
	"context"
	"strings"

	"github.com/ndexcontent/signorloader/internal/network"
)

const databaseAttr = "DATABASE"

// RepresentsPrefixer namespaces each node's represents field from the
// DATABASE attribute the loader carried over from the source table:
// UNIPROT ids gain a uniprot: prefix, SIGNOR ids a signor: prefix. Other
// databases ship identifiers that are already prefixed. The DATABASE
// attribute itself is removed in every case.
type RepresentsPrefixer struct{}

// NewRepresentsPrefixer creates the pass.
func NewRepresentsPrefixer() *RepresentsPrefixer {
	return &RepresentsPrefixer{}
}

func (u *RepresentsPrefixer) Description() string {
	return "Prefixes node represents from DATABASE attribute"
}

func (u *RepresentsPrefixer) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	for _, node := range net.Nodes() {
		var database string
		if attr, ok := net.NodeAttribute(node.ID, databaseAttr); ok {
			database, _ = attr.Value.(string)
		}

		switch database {
		case "UNIPROT":
			if !strings.Contains(node.Represents, "uniprot:") {
				node.Represents = "uniprot:" + node.Represents
			}
		case "SIGNOR":
			if !strings.Contains(node.Represents, "signor:") {
				node.Represents = "signor:" + node.Represents
			}
		}
		net.RemoveNodeAttribute(node.ID, databaseAttr)
	}

	return nil
}
