package updater

import (
	"context"

	"github.com/ndexcontent/signorloader/internal/network"
)

// Location attribute values with special meaning.
const (
	LocationAttr = "location"

	// DefaultLocation is assigned to nodes missing a location.
	DefaultLocation = "cytoplasm"

	// phenotypesList is a placeholder Signor emits for phenotype nodes,
	// canonicalized to an empty location.
	phenotypesList = "phenotypesList"
)

// LocationDefaulter fills in the 'location' node attribute: missing or
// empty values become cytoplasm, the phenotypesList placeholder becomes an
// empty string.
type LocationDefaulter struct{}

// NewLocationDefaulter creates the pass.
func NewLocationDefaulter() *LocationDefaulter {
	return &LocationDefaulter{}
}

func (u *LocationDefaulter) Description() string {
	return "Replace any empty node location attribute values with cytoplasm"
}

func (u *LocationDefaulter) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	for _, node := range net.Nodes() {
		attr, ok := net.NodeAttribute(node.ID, LocationAttr)
		if !ok {
			net.SetNodeAttribute(node.ID, LocationAttr, DefaultLocation, network.TypeString)
			continue
		}
		value, _ := attr.Value.(string)
		switch value {
		case "":
			attr.Value = DefaultLocation
		case phenotypesList:
			attr.Value = ""
		}
	}

	return nil
}
