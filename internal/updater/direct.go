package updater

import (
	"context"

	"github.com/ndexcontent/signorloader/internal/network"
)

const directAttr = "direct"

// DirectEdgeUpdater coerces the raw 'direct' edge attribute into a boolean:
// 't' becomes true, any other value false.
type DirectEdgeUpdater struct{}

// NewDirectEdgeUpdater creates the pass.
func NewDirectEdgeUpdater() *DirectEdgeUpdater {
	return &DirectEdgeUpdater{}
}

func (u *DirectEdgeUpdater) Description() string {
	return "Updates value of direct edge attribute to true and false"
}

// Update rewrites the 'direct' attribute on every edge that has one,
// re-declaring it boolean. Edges without the attribute are left alone.
func (u *DirectEdgeUpdater) Update(ctx context.Context, net *network.Network) []string {
	if net == nil {
		return []string{nilNetworkIssue}
	}

	for _, edge := range net.Edges() {
		attr, ok := net.EdgeAttribute(edge.ID, directAttr)
		if !ok {
			continue
		}
		value, _ := attr.Value.(string)
		net.SetEdgeAttribute(edge.ID, directAttr, value == "t", network.TypeBoolean)
	}

	return nil
}
